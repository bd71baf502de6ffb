package cron

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/driveazur/car-rental-app/db"
	"github.com/driveazur/car-rental-app/models"
)

// StartCronJobs schedules the nightly fleet maintenance sweep.
func StartCronJobs() {
	c := cron.New()
	_, err := c.AddFunc("0 2 * * *", func() {
		CompleteFinishedReservations()
		GroundUninsuredCars()
	})
	if err != nil {
		logrus.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	logrus.Info("Cron scheduler started for fleet maintenance")
}

// CompleteFinishedReservations moves confirmed reservations whose rental
// period has ended into the completed state.
func CompleteFinishedReservations() {
	var reservations []models.Reservation
	err := db.DB.
		Where("status = ? AND end_date < ?", models.StatusConfirmed, time.Now()).
		Find(&reservations).Error
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch finished reservations")
		return
	}

	for _, reservation := range reservations {
		if err := reservation.TransitionStatus(db.DB, models.StatusCompleted); err != nil {
			logrus.WithError(err).WithField("reservation_id", reservation.ID).
				Error("Failed to complete reservation")
			continue
		}
	}
	if len(reservations) > 0 {
		logrus.WithField("count", len(reservations)).Info("Completed finished reservations")
	}
}

// GroundUninsuredCars pulls cars with an expired insurance policy out of
// the bookable pool.
func GroundUninsuredCars() {
	result := db.DB.Model(&models.Car{}).
		Where("availability = ? AND insurance_expiry_date < ?", true, time.Now()).
		Update("availability", false)
	if result.Error != nil {
		logrus.WithError(result.Error).Error("Failed to ground uninsured cars")
		return
	}
	if result.RowsAffected > 0 {
		logrus.WithField("count", result.RowsAffected).Info("Grounded cars with expired insurance")
	}
}
