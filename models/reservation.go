// models/reservation.go
package models

import "time"

const StatusPending = "pending"

type Reservation struct {
	ReservationID uint      `json:"reservation_id" gorm:"column:reservation_id;primaryKey"`
	UserID        uint      `json:"user_id" gorm:"index;not null"`
	User          *User     `json:"-" gorm:"foreignKey:UserID;references:UserID"`
	CarID         uint      `json:"car_id" gorm:"index;not null"`
	Car           *Car      `json:"-" gorm:"foreignKey:CarID;references:CarID"`
	PickupDate    string    `json:"pickup_date" gorm:"type:varchar(10);not null"`
	PickupTime    string    `json:"pickup_time" gorm:"type:varchar(5);not null"`
	ReturnDate    string    `json:"return_date" gorm:"type:varchar(10);not null"`
	ReturnTime    string    `json:"return_time" gorm:"type:varchar(5);not null"`
	TotalPrice    float64   `json:"total_price" gorm:"type:numeric(10,2);not null"`
	Status        string    `json:"status" gorm:"type:varchar(32);not null;default:'pending'"` // "pending", then whatever an admin sets
	AdminNote     string    `json:"admin_note" gorm:"not null;default:''"`
	CreatedAt     time.Time `json:"created_at" gorm:"index"`
}

func (Reservation) TableName() string {
	return "reservations"
}

func (r *Reservation) IsPending() bool {
	return r.Status == StatusPending
}

// ReservationView is a reservation joined with its car and owner, as returned
// by the listing endpoints. Email is only selected for admins.
type ReservationView struct {
	ReservationID uint      `json:"reservation_id"`
	UserID        uint      `json:"user_id"`
	CarID         uint      `json:"car_id"`
	PickupDate    string    `json:"pickup_date"`
	PickupTime    string    `json:"pickup_time"`
	ReturnDate    string    `json:"return_date"`
	ReturnTime    string    `json:"return_time"`
	Status        string    `json:"status"`
	AdminNote     string    `json:"admin_note"`
	TotalPrice    float64   `json:"total_price"`
	CreatedAt     time.Time `json:"created_at"`

	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone"`

	CarName     string  `json:"car_name"`
	ImageURL    string  `json:"image_url"`
	PricePerDay float64 `json:"price_per_day"`
}
