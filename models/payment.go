package models

import "time"

// StubPaymentID is the placeholder payment every reservation links to
// until real payment processing lands.
const StubPaymentID uint = 1

type Payment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
