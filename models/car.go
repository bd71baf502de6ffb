package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList is stored as a JSON array in a text column so feature sets
// work the same on postgres and the sqlite test databases.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
}

// Contains reports whether every feature in want is present in the list.
func (l StringList) Contains(want []string) bool {
	for _, w := range want {
		found := false
		for _, f := range l {
			if f == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

type Car struct {
	ID                  uint       `json:"id" gorm:"primaryKey"`
	Category            string     `json:"category"`
	Brand               string     `json:"brand"`
	Model               string     `json:"model"`
	Seats               int        `json:"seats"`
	GearType            string     `json:"gearType"`
	Mileage             int        `json:"mileage"`
	PricePerDay         float64    `json:"pricePerDay"`
	Availability        bool       `json:"availability"`
	FuelType            string     `json:"fuelType"`
	Color               string     `json:"color"`
	Year                int        `json:"year"`
	Image               string     `json:"image"`
	InsuranceExpiryDate *time.Time `json:"insuranceExpiryDate"`
	ServiceDueDate      *time.Time `json:"serviceDueDate"`
	Features            StringList `json:"features" gorm:"type:text"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}
