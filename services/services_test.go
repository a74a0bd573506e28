package services

import (
	"context"
	"sync"
	"testing"

	"carrental-server/models"
	"carrental-server/storage"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := storage.InitializeDB("sqlite::memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close(db) })
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.User{FullName: email, Email: email, Password: string(hash), Phone: "555", Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedCar(t *testing.T, db *gorm.DB, name string, price float64) *models.Car {
	t.Helper()
	c := &models.Car{Name: name, ImageURL: "https://img.example/" + name, PricePerDay: price}
	require.NoError(t, db.Create(c).Error)
	return c
}

func seedReservation(t *testing.T, db *gorm.DB, userID, carID uint, status string) *models.Reservation {
	t.Helper()
	r := &models.Reservation{
		UserID:     userID,
		CarID:      carID,
		PickupDate: "2026-01-10",
		PickupTime: "09:00",
		ReturnDate: "2026-01-12",
		ReturnTime: "18:00",
		TotalPrice: 300,
		Status:     status,
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

func callerOf(u *models.User) Caller {
	return Caller{UserID: u.UserID, Role: u.Role}
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []models.Reservation
	err   error
}

func (n *recordingNotifier) ReservationStatusChanged(_ context.Context, r *models.Reservation, _ *models.User) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, *r)
	return n.err
}
