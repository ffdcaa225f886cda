// File: internal/model/reservation.go
package model

import "time"

type Reservation struct {
	ID         int       `db:"id" json:"id"`
	GuestID    int       `db:"guest_id" json:"guest_id"`
	PropertyID int       `db:"property_id" json:"property_id"`
	StartDate  time.Time `db:"start_date" json:"start_date"`
	EndDate    time.Time `db:"end_date" json:"end_date"`
}

// ReservationListing is a past reservation together with the reserved
// property and the average rating of that property.
type ReservationListing struct {
	Reservation
	Property      Property `json:"property"`
	AverageRating float64  `db:"average_rating" json:"average_rating"`
}
