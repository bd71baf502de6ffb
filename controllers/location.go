package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/driveazur/car-rental-app/db"
	"github.com/driveazur/car-rental-app/models"
	"github.com/driveazur/car-rental-app/utils"
)

// GetLocations lists the pickup locations, alphabetical by city.
func GetLocations(c *fiber.Ctx) error {
	var locations []models.Location
	if err := db.DB.Order("city").Find(&locations).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch locations",
			Error:   err.Error(),
		})
	}
	return c.JSON(locations)
}
