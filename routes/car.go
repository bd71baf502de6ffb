package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/driveazur/car-rental-app/controllers"
	"github.com/driveazur/car-rental-app/middleware"
)

// SetupCarRoutes configures fleet browsing and management routes
func SetupCarRoutes(app *fiber.App) {
	// Public browsing
	app.Get("/cars/search", controllers.SearchCars)
	app.Get("/cars", controllers.GetCars)
	app.Get("/cars/:id", controllers.GetCar)

	staff := app.Group("/staff", middleware.Protected())
	staff.Get("/cars", middleware.RequirePermission("cars", "read"), controllers.GetCars)
	staff.Get("/cars/:id", middleware.RequirePermission("cars", "read"), controllers.GetCar)
	staff.Post("/cars", middleware.RequirePermission("cars", "create"), controllers.CreateCar)
	staff.Put("/cars/:id", middleware.RequirePermission("cars", "update"), controllers.UpdateCar)

	admin := app.Group("/admin", middleware.Protected())
	admin.Get("/cars", middleware.RequirePermission("cars", "read"), controllers.GetCars)
	admin.Post("/cars", middleware.RequirePermission("cars", "create"), controllers.CreateCar)
	admin.Put("/cars/:id", middleware.RequirePermission("cars", "update"), controllers.UpdateCar)
	admin.Delete("/cars/:id", middleware.RequirePermission("cars", "delete"), controllers.DeleteCar)
}
