package models

// JourneyStatus is the lifecycle state of a journey.
type JourneyStatus string

const (
	JourneyInProgress JourneyStatus = "IN_PROGRESS"
	JourneyCompleted  JourneyStatus = "COMPLETED"
	JourneyCancelled  JourneyStatus = "CANCELLED"
)

// Journey is a single tap-in/tap-out trip.
type Journey struct {
	ID           int64         `json:"id"`
	EntryStation *Station      `json:"entryStation,omitempty"`
	ExitStation  *Station      `json:"exitStation,omitempty"`
	TapInTime    Timestamp     `json:"tapInTime"`
	TapOutTime   Timestamp     `json:"tapOutTime"`
	Status       JourneyStatus `json:"status"`
	Fare         *float64      `json:"fare,omitempty"`
}

// FareAmount returns the fare or zero when the backend has not priced the journey.
func (j Journey) FareAmount() float64 {
	if j.Fare == nil {
		return 0
	}
	return *j.Fare
}

// TapInRequest is the POST /journeys/tap-in body.
type TapInRequest struct {
	UserID         int64 `json:"userId"`
	CardID         int64 `json:"cardId"`
	EntryStationID int64 `json:"entryStationId"`
}
