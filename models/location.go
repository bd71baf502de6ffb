package models

import "time"

// Location is read-only reference data seeded at deploy time.
type Location struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	City      string    `json:"city"`
	Address   string    `json:"address"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
