package models

import "time"

// Listing projections. Endpoints return these flattened views instead of
// raw entities so the response shape stays stable when models grow.

type UserSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type CarSummary struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
	Image string `json:"image"`
}

type DriverSummary struct {
	Name string `json:"name"`
}

type PaymentSummary struct {
	ID     uint   `json:"id"`
	Status string `json:"status"`
}

type ReservationSummary struct {
	ID              uint              `json:"id"`
	User            UserSummary       `json:"user"`
	Car             *CarSummary       `json:"car"`
	CarType         string            `json:"car_type"`
	TotalPrice      float64           `json:"total_price"`
	Status          ReservationStatus `json:"status"`
	PickupLocation  string            `json:"pickup_location"`
	DropoffLocation string            `json:"dropoff_location"`
	PickupDate      string            `json:"pickup_date"`
	DropoffDate     string            `json:"dropoff_date"`
	SelectDriver    bool              `json:"selectDriver"`
	CreatedAt       time.Time         `json:"created_at"`
	Driver          *DriverSummary    `json:"driver"`
	Payment         *PaymentSummary   `json:"payment"`
}

// NewReservationSummary flattens a reservation with its preloaded
// associations. A deleted car leaves the nested car as null.
func NewReservationSummary(r Reservation) ReservationSummary {
	s := ReservationSummary{
		ID: r.ID,
		User: UserSummary{
			Name:  r.User.Name,
			Email: r.User.Email,
			Phone: r.User.Phone,
		},
		CarType:        r.CarType,
		TotalPrice:     r.TotalPrice,
		Status:         r.Status,
		PickupLocation: r.Location.City,
		PickupDate:     r.StartDate.Format("2006-01-02"),
		DropoffDate:    r.EndDate.Format("2006-01-02"),
		SelectDriver:   r.SelectDriver,
		CreatedAt:      r.CreatedAt,
	}
	if r.Car.ID != 0 {
		s.Car = &CarSummary{Brand: r.Car.Brand, Model: r.Car.Model, Image: r.Car.Image}
	}
	if r.DropoffLocation != nil {
		s.DropoffLocation = r.DropoffLocation.City
	}
	if r.Driver != nil && r.Driver.ID != 0 {
		s.Driver = &DriverSummary{Name: r.Driver.Name}
	}
	if r.Payment.ID != 0 {
		s.Payment = &PaymentSummary{ID: r.Payment.ID, Status: r.Payment.Status}
	}
	return s
}

// ReservationDocument is the flat record handed to the PDF renderer.
type ReservationDocument struct {
	ReservationID  uint
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	CustomerAge    int
	CarBrand       string
	CarModel       string
	PickupLocation string
	ReturnLocation string
	PickupDate     string
	ReturnDate     string
	Driver         string
	TotalCost      float64
	Status         string
}
