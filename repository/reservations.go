package repository

import (
	"context"

	"github.com/lightbnb/lightbnb/data"
)

type reservations interface {
	GetAllReservations(guestID int64, limit int) ([]*data.Reservation, error)
}

// GetAllReservations retrieves a guest's reservations with the reserved listing,
// earliest stay first. A non-positive limit means data.DefaultLimit.
func (r *repository) GetAllReservations(guestID int64, limit int) ([]*data.Reservation, error) {
	if limit <= 0 {
		limit = data.DefaultLimit
	}
	query := `
		SELECT reservations.id, reservations.start_date, reservations.end_date,
		` + propertyColumns + `, avg(property_reviews.rating) AS average_rating
		FROM reservations
		JOIN properties ON reservations.property_id = properties.id
		JOIN property_reviews ON property_reviews.property_id = properties.id
		WHERE reservations.guest_id = $1
		GROUP BY reservations.id, properties.id
		ORDER BY reservations.start_date
		LIMIT $2`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, guestID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reservations := []*data.Reservation{}
	for rows.Next() {
		var reservation data.Reservation
		dest := []any{&reservation.ID, &reservation.StartDate, &reservation.EndDate}
		dest = append(dest, propertyDest(&reservation.Listing.Property)...)
		dest = append(dest, &reservation.Listing.AverageRating)
		err := rows.Scan(dest...)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, &reservation)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return reservations, nil
}
