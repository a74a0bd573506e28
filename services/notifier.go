package services

import (
	"context"

	"carrental-server/models"
)

// Notifier tells a reservation owner that an admin changed its status.
type Notifier interface {
	ReservationStatusChanged(ctx context.Context, r *models.Reservation, owner *models.User) error
}

type NopNotifier struct{}

func (NopNotifier) ReservationStatusChanged(context.Context, *models.Reservation, *models.User) error {
	return nil
}
