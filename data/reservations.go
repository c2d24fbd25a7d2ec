package data

import "time"

// Reservation defines a guest's stay at a listed property.
type Reservation struct {
	ID        int64     `json:"id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Listing   Listing   `json:"property"`
}
