package models

import (
	"time"

	"gorm.io/datatypes"
)

// Car is a catalog entry. Rows are maintained outside this service.
type Car struct {
	CarID       uint           `json:"car_id" gorm:"column:car_id;primaryKey"`
	Name        string         `json:"name" gorm:"not null"`
	ImageURL    string         `json:"image_url"`
	PricePerDay float64        `json:"price_per_day" gorm:"type:numeric(10,2);not null"`
	Specs       datatypes.JSON `json:"specs,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (Car) TableName() string {
	return "cars"
}
