package service

import (
	"github.com/lightbnb/lightbnb/data"
	"github.com/lightbnb/lightbnb/internal/validator"
)

type reservations interface {
	ListReservations(guestID int64, limit int) ([]*data.Reservation, error)
}

// ListReservations service lists a guest's reservations, earliest stay first.
func (s *service) ListReservations(guestID int64, limit int) ([]*data.Reservation, error) {
	v := validator.New()
	if data.ValidateLimit(v, limit); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	return s.repo.GetAllReservations(guestID, limit)
}
