package models

// Station is immutable reference data.
type Station struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Zone int    `json:"zone"`
}
