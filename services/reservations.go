package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"carrental-server/models"

	"github.com/kataras/golog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Caller is the verified identity behind a request.
type Caller struct {
	UserID uint
	Role   models.Role
}

func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

type CreateReservationInput struct {
	UserID     uint    `json:"user_id" validate:"required"`
	CarID      uint    `json:"car_id" validate:"required"`
	PickupDate string  `json:"pickup_date" validate:"required,datetime=2006-01-02"`
	PickupTime string  `json:"pickup_time" validate:"required,datetime=15:04"`
	ReturnDate string  `json:"return_date" validate:"required,datetime=2006-01-02"`
	ReturnTime string  `json:"return_time" validate:"required,datetime=15:04"`
	TotalPrice float64 `json:"total_price" validate:"gte=0"`
}

type ScheduleInput struct {
	PickupDate string `json:"pickup_date" validate:"required,datetime=2006-01-02"`
	PickupTime string `json:"pickup_time" validate:"required,datetime=15:04"`
	ReturnDate string `json:"return_date" validate:"required,datetime=2006-01-02"`
	ReturnTime string `json:"return_time" validate:"required,datetime=15:04"`
}

type AdminUpdateInput struct {
	Status    string `json:"status" validate:"required,max=32"`
	AdminNote string `json:"admin_note" validate:"max=2000"`
}

// Reservations enforces who may see and change a reservation:
//   - owners create, reschedule (pending only) and delete their own rows
//   - admins list everything and set status and admin note
//
// Every read-check-write sequence runs in one transaction holding a row lock
// on the reservation.
type Reservations struct {
	DB       *gorm.DB
	Notifier Notifier
}

func NewReservations(db *gorm.DB, notifier Notifier) *Reservations {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Reservations{DB: db, Notifier: notifier}
}

func (s *Reservations) ListForUser(ctx context.Context, caller Caller, userID uint) ([]models.ReservationView, error) {
	if caller.UserID != userID {
		return nil, ErrAccessDenied
	}

	views := []models.ReservationView{}
	if err := s.viewQuery(ctx, false).Where("r.user_id = ?", userID).Scan(&views).Error; err != nil {
		return nil, fmt.Errorf("list reservations for user %d: %w", userID, err)
	}
	return views, nil
}

func (s *Reservations) ListAll(ctx context.Context, caller Caller) ([]models.ReservationView, error) {
	if !caller.IsAdmin() {
		return nil, ErrAccessDenied
	}

	views := []models.ReservationView{}
	if err := s.viewQuery(ctx, true).Scan(&views).Error; err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return views, nil
}

func (s *Reservations) viewQuery(ctx context.Context, withEmail bool) *gorm.DB {
	cols := []string{
		"r.reservation_id", "r.user_id", "r.car_id",
		"r.pickup_date", "r.pickup_time", "r.return_date", "r.return_time",
		"r.status", "r.admin_note", "r.total_price", "r.created_at",
		"u.full_name", "u.phone",
		"c.name AS car_name", "c.image_url", "c.price_per_day",
	}
	if withEmail {
		cols = append(cols, "u.email")
	}

	return s.DB.WithContext(ctx).
		Table("reservations r").
		Select(strings.Join(cols, ", ")).
		Joins("JOIN users u ON r.user_id = u.user_id").
		Joins("JOIN cars c ON r.car_id = c.car_id").
		Order("r.created_at DESC, r.reservation_id DESC")
}

// Create always stores the reservation as pending with an empty admin note.
func (s *Reservations) Create(ctx context.Context, caller Caller, in CreateReservationInput) (*models.Reservation, error) {
	if caller.UserID != in.UserID {
		return nil, ErrUnauthorizedAction
	}

	db := s.DB.WithContext(ctx)

	var cars int64
	if err := db.Model(&models.Car{}).Where("car_id = ?", in.CarID).Count(&cars).Error; err != nil {
		return nil, fmt.Errorf("look up car %d: %w", in.CarID, err)
	}
	if cars == 0 {
		return nil, ErrCarNotFound
	}

	reservation := models.Reservation{
		UserID:     in.UserID,
		CarID:      in.CarID,
		PickupDate: in.PickupDate,
		PickupTime: in.PickupTime,
		ReturnDate: in.ReturnDate,
		ReturnTime: in.ReturnTime,
		TotalPrice: in.TotalPrice,
		Status:     models.StatusPending,
		AdminNote:  "",
	}
	if err := db.Create(&reservation).Error; err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}
	return &reservation, nil
}

// UpdateByAdmin overwrites status and admin note. The owner is notified after
// commit when the status value changed.
func (s *Reservations) UpdateByAdmin(ctx context.Context, caller Caller, id uint, in AdminUpdateInput) (*models.Reservation, error) {
	if !caller.IsAdmin() {
		return nil, ErrAccessDenied
	}

	var (
		updated       models.Reservation
		owner         models.User
		statusChanged bool
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := lockReservation(tx, id)
		if err != nil {
			return err
		}
		statusChanged = current.Status != in.Status

		if err := tx.Model(current).Updates(map[string]any{
			"status":     in.Status,
			"admin_note": in.AdminNote,
		}).Error; err != nil {
			return fmt.Errorf("update reservation %d: %w", id, err)
		}
		if err := tx.First(&updated, id).Error; err != nil {
			return fmt.Errorf("reload reservation %d: %w", id, err)
		}

		if statusChanged {
			if err := tx.First(&owner, current.UserID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("load owner of reservation %d: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if statusChanged && owner.UserID != 0 {
		if err := s.Notifier.ReservationStatusChanged(ctx, &updated, &owner); err != nil {
			golog.Warnf("reservation %d: status notification to user %d failed: %v", id, owner.UserID, err)
		}
	}
	return &updated, nil
}

// UpdateSchedule lets the owner move the pickup and return slots of a pending
// reservation. Checks run in order: existence, ownership, status.
func (s *Reservations) UpdateSchedule(ctx context.Context, caller Caller, id uint, in ScheduleInput) (*models.Reservation, error) {
	var updated models.Reservation
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := lockReservation(tx, id)
		if err != nil {
			return err
		}
		if current.UserID != caller.UserID {
			return ErrAccessDenied
		}
		if !current.IsPending() {
			return ErrNotPending
		}

		if err := tx.Model(current).Updates(map[string]any{
			"pickup_date": in.PickupDate,
			"pickup_time": in.PickupTime,
			"return_date": in.ReturnDate,
			"return_time": in.ReturnTime,
		}).Error; err != nil {
			return fmt.Errorf("update reservation %d: %w", id, err)
		}
		if err := tx.First(&updated, id).Error; err != nil {
			return fmt.Errorf("reload reservation %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the caller's reservation whatever its status.
func (s *Reservations) Delete(ctx context.Context, caller Caller, id uint) (*models.Reservation, error) {
	var deleted *models.Reservation
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := lockReservation(tx, id)
		if err != nil {
			return err
		}
		if current.UserID != caller.UserID {
			return ErrAccessDenied
		}
		if err := tx.Delete(current).Error; err != nil {
			return fmt.Errorf("delete reservation %d: %w", id, err)
		}
		deleted = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func lockReservation(tx *gorm.DB, id uint) (*models.Reservation, error) {
	q := tx
	// sqlite has no row locks; its write lock covers the transaction
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var r models.Reservation
	if err := q.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("get reservation %d: %w", id, err)
	}
	return &r, nil
}
