package models

import (
	"time"
)

type User struct {
	ID              uint          `json:"id" gorm:"primaryKey"`
	Name            string        `json:"name"`
	Email           string        `json:"email" gorm:"unique"`
	Phone           string        `json:"phone" gorm:"unique"`
	Address         string        `json:"address"`
	Age             int           `json:"age"`
	Image           *string       `json:"image"`
	Role            Role          `json:"role" gorm:"type:varchar(20);default:client"`
	Password        string        `json:"password,omitempty"`
	EmailVerifiedAt *time.Time    `json:"email_verified_at"`
	Reservations    []Reservation `json:"reservations,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
