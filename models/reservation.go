package models

import (
	"time"

	"gorm.io/gorm"
)

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

// Valid reports whether s is one of the four reservation statuses.
func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Reservation struct {
	ID                uint              `json:"id" gorm:"primaryKey"`
	StartDate         time.Time         `json:"startDate"`
	EndDate           time.Time         `json:"endDate"`
	TotalPrice        float64           `json:"totalPrice"`
	Status            ReservationStatus `json:"status" gorm:"type:varchar(20)"`
	StatusUpdatedBy   uint              `json:"statusUpdatedBy"`
	UserID            uint              `json:"user_id"`
	User              User              `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	VehicleID         uint              `json:"vehicle_id"`
	Car               Car               `json:"car,omitempty" gorm:"foreignKey:VehicleID"`
	CarType           string            `json:"car_type"`
	LocationID        uint              `json:"location_id"`
	Location          Location          `json:"location,omitempty" gorm:"foreignKey:LocationID"`
	DropoffLocationID *uint             `json:"dropoff_location_id"`
	DropoffLocation   *Location         `json:"dropoff_location,omitempty" gorm:"foreignKey:DropoffLocationID"`
	PaymentID         uint              `json:"payment_id"`
	Payment           Payment           `json:"payment,omitempty" gorm:"foreignKey:PaymentID"`
	SelectDriver      bool              `json:"selectDriver"`
	DriverID          *uint             `json:"driver_id"`
	Driver            *User             `json:"driver,omitempty" gorm:"foreignKey:DriverID;constraint:OnDelete:SET NULL"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.Status == "" {
		r.Status = StatusPending
	}
	return nil
}

// TransitionStatus writes a new status. Every transition is currently
// legal; keeping the write behind one function means a stricter state
// machine can be dropped in without touching call sites.
func (r *Reservation) TransitionStatus(tx *gorm.DB, newStatus ReservationStatus) error {
	r.Status = newStatus
	return tx.Save(r).Error
}
