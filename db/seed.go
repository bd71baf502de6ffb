package db

import (
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/driveazur/car-rental-app/models"
)

// Seed loads the reference data the API expects at runtime: pickup
// locations, the stub payment record, an admin account and two sample
// drivers. Safe to run more than once.
func Seed() {
	seedLocations()
	seedStubPayment()
	seedUsers()
	logrus.Info("Seed data applied")
}

func seedLocations() {
	var count int64
	DB.Model(&models.Location{}).Count(&count)
	if count > 0 {
		return
	}

	locations := []models.Location{
		{City: "Casablanca", Address: "Avenue Mohammed V, Casablanca", Latitude: 33.5899, Longitude: -7.6033},
		{City: "Marrakech", Address: "Pl. de la Liberté, Marrakech", Latitude: 31.6295, Longitude: -7.9811},
		{City: "Rabat", Address: "Boulevard Mohammed V, Rabat", Latitude: 34.0184, Longitude: -6.8426},
		{City: "Fes", Address: "Place R'cif, Fes", Latitude: 33.9417, Longitude: -5.0000},
		{City: "Tangier", Address: "Place de la Marine, Tangier", Latitude: 35.7553, Longitude: -5.8333},
		{City: "Agadir", Address: "Pl. Hassan II, Agadir", Latitude: 30.4395, Longitude: -9.5827},
	}
	if err := DB.Create(&locations).Error; err != nil {
		logrus.Error("Failed to seed locations: ", err)
	}
}

func seedStubPayment() {
	var payment models.Payment
	if DB.First(&payment, models.StubPaymentID).RowsAffected > 0 {
		return
	}
	payment = models.Payment{ID: models.StubPaymentID, Status: "pending"}
	if err := DB.Create(&payment).Error; err != nil {
		logrus.Error("Failed to seed stub payment: ", err)
	}
}

func seedUsers() {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		logrus.Error("Failed to hash seed password: ", err)
		return
	}
	now := time.Now()

	users := []models.User{
		{
			Name: "Admin User", Email: "admin@example.com", Phone: "1234567890",
			Address: "123 Admin Street", Age: 30, Role: models.RoleAdmin,
			EmailVerifiedAt: &now, Password: string(hash),
		},
		{
			Name: "John Driver", Email: "driver1@example.com", Phone: "1234567891",
			Address: "456 Driver Street", Age: 35, Role: models.RoleDriver,
			EmailVerifiedAt: &now, Password: string(hash),
		},
		{
			Name: "Sarah Driver", Email: "driver2@example.com", Phone: "1234567892",
			Address: "789 Driver Street", Age: 32, Role: models.RoleDriver,
			EmailVerifiedAt: &now, Password: string(hash),
		},
	}

	for _, user := range users {
		var existing models.User
		if DB.Where("email = ?", user.Email).First(&existing).RowsAffected == 0 {
			if err := DB.Create(&user).Error; err != nil {
				logrus.Error("Failed to seed user ", user.Email, ": ", err)
			}
		}
	}
}
