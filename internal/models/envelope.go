package models

import "encoding/json"

// Envelope wraps every backend response.
type Envelope struct {
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}
