package store

import (
	"context"
	"strings"

	"lightbnb/internal/model"
)

var pastReservationsSQL = `SELECT reservations.id, reservations.guest_id, reservations.property_id,
	reservations.start_date, reservations.end_date,
	` + strings.Join(qualified("properties"), ", ") + `,
	AVG(property_reviews.rating) AS average_rating
	FROM reservations
	JOIN properties ON reservations.property_id = properties.id
	JOIN property_reviews ON properties.id = property_reviews.property_id
	WHERE reservations.guest_id = $1
	AND reservations.end_date < now()::date
	GROUP BY properties.id, reservations.id
	ORDER BY reservations.start_date
	LIMIT $2`

// GetAllReservations lists the finished reservations of a guest, oldest
// first. Properties without any review are not listed.
func (g *Gateway) GetAllReservations(ctx context.Context, guestID, limit int) ([]model.ReservationListing, error) {
	rows, err := g.db.Query(ctx, pastReservationsSQL, guestID, g.limit(limit))
	if err != nil {
		return nil, g.fail("GetAllReservations", err)
	}
	defer rows.Close()

	listings := []model.ReservationListing{}
	for rows.Next() {
		var l model.ReservationListing
		dest := []any{
			&l.ID,
			&l.GuestID,
			&l.PropertyID,
			&l.StartDate,
			&l.EndDate,
		}
		dest = append(dest, propertyFields(&l.Property)...)
		dest = append(dest, &l.AverageRating)
		if err := rows.Scan(dest...); err != nil {
			return nil, g.fail("GetAllReservations", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, g.fail("GetAllReservations", err)
	}
	return listings, nil
}
