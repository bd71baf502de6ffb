package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/driveazur/car-rental-app/db"
	"github.com/driveazur/car-rental-app/models"
	"github.com/driveazur/car-rental-app/utils"
)

// GetAllReservations lists every reservation for staff/admin, newest
// first, flattened into summary projections.
func GetAllReservations(c *fiber.Ctx) error {
	var reservations []models.Reservation
	err := db.DB.
		Preload("User").
		Preload("Car").
		Preload("Location").
		Preload("DropoffLocation").
		Preload("Driver").
		Preload("Payment").
		Order("created_at desc").
		Find(&reservations).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch reservations",
			Error:   err.Error(),
		})
	}

	summaries := make([]models.ReservationSummary, len(reservations))
	for i, reservation := range reservations {
		summaries[i] = models.NewReservationSummary(reservation)
	}
	return c.JSON(summaries)
}

// GetUserReservations lists the caller's own reservations.
func GetUserReservations(c *fiber.Ctx) error {
	var reservations []models.Reservation
	err := db.DB.
		Preload("User").
		Preload("Car").
		Preload("Location").
		Preload("DropoffLocation").
		Preload("Driver").
		Preload("Payment").
		Where("user_id = ?", callerID(c)).
		Order("created_at desc").
		Find(&reservations).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch reservations",
			Error:   err.Error(),
		})
	}

	summaries := make([]models.ReservationSummary, len(reservations))
	for i, reservation := range reservations {
		summaries[i] = models.NewReservationSummary(reservation)
	}
	return c.JSON(summaries)
}

type reservationInput struct {
	PickupLocation  uint     `json:"pickup_location"`
	DropoffLocation uint     `json:"dropoff_location"`
	PickupDate      string   `json:"pickup_date"`
	DropoffDate     string   `json:"dropoff_date"`
	CarType         string   `json:"car_type"`
	TotalCost       *float64 `json:"total_cost"`
	VehicleID       uint     `json:"vehicle_id"`
	Driver          bool     `json:"driver"`
}

// CreateReservation books a car for the caller. The total cost comes from
// the client and is stored verbatim; recomputing it server-side from
// duration and rate is an open question inherited from the source system.
func CreateReservation(c *fiber.Ctx) error {
	var input reservationInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	errs := utils.ValidationErrors{}

	if input.PickupLocation == 0 {
		errs.Add("pickup_location", "The pickup_location field is required.")
	} else if db.DB.First(&models.Location{}, input.PickupLocation).RowsAffected == 0 {
		errs.Add("pickup_location", "The selected pickup_location is invalid.")
	}

	if input.DropoffLocation == 0 {
		errs.Add("dropoff_location", "The dropoff_location field is required.")
	} else if db.DB.First(&models.Location{}, input.DropoffLocation).RowsAffected == 0 {
		errs.Add("dropoff_location", "The selected dropoff_location is invalid.")
	}

	pickupDate, pickupErr := time.Parse("2006-01-02", input.PickupDate)
	if pickupErr != nil {
		errs.Add("pickup_date", "The pickup_date is not a valid date.")
	}
	dropoffDate, err := time.Parse("2006-01-02", input.DropoffDate)
	if err != nil {
		errs.Add("dropoff_date", "The dropoff_date is not a valid date.")
	} else if pickupErr == nil && !dropoffDate.After(pickupDate) {
		errs.Add("dropoff_date", "The dropoff_date must be a date after pickup_date.")
	}

	if input.CarType == "" {
		errs.Add("car_type", "The car_type field is required.")
	}
	if input.TotalCost == nil {
		errs.Add("total_cost", "The total_cost field is required.")
	} else if *input.TotalCost < 0 {
		errs.Add("total_cost", "The total_cost must be at least 0.")
	}

	if input.VehicleID == 0 {
		errs.Add("vehicle_id", "The vehicle_id field is required.")
	} else if db.DB.First(&models.Car{}, input.VehicleID).RowsAffected == 0 {
		errs.Add("vehicle_id", "The selected vehicle_id is invalid.")
	}

	if errs.Any() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
	}

	dropoffID := input.DropoffLocation
	reservation := models.Reservation{
		UserID:            callerID(c),
		StartDate:         pickupDate,
		EndDate:           dropoffDate,
		TotalPrice:        *input.TotalCost,
		Status:            models.StatusPending,
		StatusUpdatedBy:   callerID(c),
		SelectDriver:      input.Driver,
		VehicleID:         input.VehicleID,
		CarType:           input.CarType,
		LocationID:        input.PickupLocation,
		DropoffLocationID: &dropoffID,
		PaymentID:         models.StubPaymentID,
	}

	if err := db.DB.Create(&reservation).Error; err != nil {
		logrus.WithError(err).Error("Failed to create reservation")
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create reservation",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Reservation created successfully",
		"reservation": reservation,
	})
}

// GetReservation shows one of the caller's own reservations. The fetch
// stays owner-scoped for every role; oversight of other users' bookings
// goes through the listing endpoints.
func GetReservation(c *fiber.Ctx) error {
	var reservation models.Reservation
	err := db.DB.
		Where("id = ? AND user_id = ?", c.Params("id"), callerID(c)).
		First(&reservation).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Reservation not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(reservation)
}

// UpdateReservation writes a new status. Admins may update any
// reservation, owners their own; staff get 403 like any other
// non-owner. Any transition inside the status enum is accepted.
func UpdateReservation(c *fiber.Ctx) error {
	var reservation models.Reservation
	if err := db.DB.First(&reservation, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Reservation not found",
			Error:   err.Error(),
		})
	}

	if callerRole(c) != models.RoleAdmin && reservation.UserID != callerID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	var input struct {
		Status          string `json:"status"`
		StatusUpdatedBy *uint  `json:"statusUpdatedBy"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	errs := utils.ValidationErrors{}
	newStatus := models.ReservationStatus(input.Status)
	if input.Status == "" {
		errs.Add("status", "The status field is required.")
	} else if !newStatus.Valid() {
		errs.Add("status", "The selected status is invalid.")
	}
	if input.StatusUpdatedBy != nil {
		if db.DB.First(&models.User{}, *input.StatusUpdatedBy).RowsAffected == 0 {
			errs.Add("statusUpdatedBy", "The selected statusUpdatedBy is invalid.")
		}
	}
	if errs.Any() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
	}

	if input.StatusUpdatedBy != nil {
		reservation.StatusUpdatedBy = *input.StatusUpdatedBy
	} else {
		reservation.StatusUpdatedBy = callerID(c)
	}

	if err := reservation.TransitionStatus(db.DB, newStatus); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update reservation",
			Error:   err.Error(),
		})
	}

	return c.JSON(reservation)
}

// CancelReservation marks one of the caller's own reservations
// cancelled. The row is never deleted; booking history stays around.
// The owner scope applies to every role, admin included.
func CancelReservation(c *fiber.Ctx) error {
	var reservation models.Reservation
	err := db.DB.
		Where("id = ? AND user_id = ?", c.Params("id"), callerID(c)).
		First(&reservation).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Reservation not found",
			Error:   err.Error(),
		})
	}

	if err := reservation.TransitionStatus(db.DB, models.StatusCancelled); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to cancel reservation",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Reservation cancelled successfully",
	})
}

// AssignDriver binds a driver-role user to a reservation that asked for
// one. Operationally sensitive, so every outcome is logged with context.
func AssignDriver(c *fiber.Ctx) error {
	id := c.Params("id")
	log := logrus.WithFields(logrus.Fields{
		"reservation_id": id,
		"caller_id":      callerID(c),
	})

	var reservation models.Reservation
	if err := db.DB.Preload("Driver").Preload("User").First(&reservation, id).Error; err != nil {
		log.WithError(err).Warn("Driver assignment: reservation not found")
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Reservation not found",
			Error:   err.Error(),
		})
	}

	if callerRole(c) != models.RoleAdmin {
		log.Warn("Driver assignment: caller is not admin")
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	if !reservation.SelectDriver {
		log.Warn("Driver assignment: reservation did not request a driver")
		reservation.User.Password = ""
		if reservation.Driver != nil {
			reservation.Driver.Password = ""
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message":        "Driver assignment not allowed for this reservation",
			"reservation":    reservation,
			"current_driver": reservation.Driver,
			"user":           reservation.User,
		})
	}

	var input struct {
		DriverID uint `json:"driverId"`
	}
	if err := c.BodyParser(&input); err != nil || input.DriverID == 0 {
		log.Warn("Driver assignment: missing driverId")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  utils.ValidationErrors{"driverId": "The driverId field is required."},
		})
	}
	log = log.WithField("driver_id", input.DriverID)

	var driver models.User
	err := db.DB.
		Where("id = ? AND role = ?", input.DriverID, models.RoleDriver).
		First(&driver).Error
	if err != nil {
		var available []models.User
		db.DB.Where("role = ?", models.RoleDriver).Find(&available)
		for i := range available {
			available[i].Password = ""
		}
		log.Warn("Driver assignment: target user is not a driver")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message":           "Driver not found",
			"driverId":          input.DriverID,
			"available_drivers": available,
		})
	}

	reservation.DriverID = &driver.ID
	if err := db.DB.Save(&reservation).Error; err != nil {
		log.WithError(err).Error("Driver assignment: save failed")
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Error assigning driver",
			Error:   err.Error(),
		})
	}

	db.DB.Preload("Driver").Preload("User").First(&reservation, reservation.ID)
	reservation.User.Password = ""
	if reservation.Driver != nil {
		reservation.Driver.Password = ""
	}
	driver.Password = ""

	log.Info("Driver assigned successfully")
	return c.JSON(fiber.Map{
		"message":     "Driver assigned successfully",
		"reservation": reservation,
		"driver":      driver,
	})
}

// DownloadReservationPDF streams the booking confirmation as a PDF
// attachment.
func DownloadReservationPDF(c *fiber.Ctx) error {
	id := c.Params("id")

	var reservation models.Reservation
	err := db.DB.
		Preload("User").
		Preload("Car").
		Preload("Location").
		Preload("DropoffLocation").
		First(&reservation, id).Error
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"reservation_id": id,
			"ip":             c.IP(),
		}).Warn("Attempted to access non-existent reservation")
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "The requested reservation does not exist.",
			Error:   "Reservation not found",
		})
	}

	driverMode := "self"
	if reservation.SelectDriver {
		driverMode = "with_driver"
	}
	doc := models.ReservationDocument{
		ReservationID:  reservation.ID,
		CustomerName:   reservation.User.Name,
		CustomerEmail:  reservation.User.Email,
		CustomerPhone:  reservation.User.Phone,
		CustomerAge:    reservation.User.Age,
		CarBrand:       reservation.Car.Brand,
		CarModel:       reservation.Car.Model,
		PickupLocation: reservation.Location.City,
		PickupDate:     reservation.StartDate.Format("2006-01-02"),
		ReturnDate:     reservation.EndDate.Format("2006-01-02"),
		Driver:         driverMode,
		TotalCost:      reservation.TotalPrice,
		Status:         string(reservation.Status),
	}
	if reservation.DropoffLocation != nil {
		doc.ReturnLocation = reservation.DropoffLocation.City
	}

	output, err := utils.Renderer.RenderReservation(doc)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"reservation_id": id,
		}).WithError(err).Error("PDF generation error")
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "An error occurred while generating the PDF. Please try again later.",
			Error:   "Failed to generate PDF",
		})
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="reservation-%s.pdf"`, id))
	return c.Send(output)
}
