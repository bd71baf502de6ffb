package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/driveazur/car-rental-app/utils"
)

// UploadImage proxies an image to the asset host and returns its URL.
func UploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"errors": utils.ValidationErrors{"image": "The image field is required."},
		})
	}
	if fileHeader.Size > 5*1024*1024 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"errors": utils.ValidationErrors{"image": "The image may not be greater than 5120 kilobytes."},
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to upload image: " + err.Error(),
		})
	}
	defer file.Close()

	url, err := utils.UploadAsset(file, uuid.New().String(), "car-images")
	if err != nil {
		logrus.WithError(err).Error("Image upload error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to upload image: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"imageUrl": url,
		"message":  "Image uploaded successfully",
	})
}
