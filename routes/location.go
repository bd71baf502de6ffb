package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/driveazur/car-rental-app/controllers"
	"github.com/driveazur/car-rental-app/middleware"
)

// SetupLocationRoutes configures the location and asset upload routes
func SetupLocationRoutes(app *fiber.App) {
	app.Get("/locations", middleware.Protected(), controllers.GetLocations)
	app.Post("/upload/image", middleware.Protected(), controllers.UploadImage)
}
