package db

import (
	"github.com/sirupsen/logrus"

	"github.com/driveazur/car-rental-app/models"
)

// Migrate runs AutoMigrate for every entity. Only invoked explicitly
// (server start does not touch the schema).
func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Location{},
		&models.Payment{},
		&models.Car{},
		&models.Reservation{},
	)
	if err != nil {
		logrus.Fatal("Failed to run migrations: ", err)
	}

	logrus.Info("Migrations applied")
}
