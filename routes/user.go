package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/driveazur/car-rental-app/controllers"
	"github.com/driveazur/car-rental-app/middleware"
)

// SetupUserRoutes configures user management routes
func SetupUserRoutes(app *fiber.App) {
	// Public listing of chauffeur candidates
	app.Get("/drivers", controllers.GetDrivers)

	app.Get("/users/:id", middleware.Protected(), controllers.GetUser)
	app.Put("/users/:id", middleware.Protected(), controllers.UpdateUser)

	staff := app.Group("/staff", middleware.Protected())
	staff.Get("/users", middleware.RequirePermission("users", "read"), controllers.GetUsers)
	staff.Get("/users/drivers", middleware.RequirePermission("users", "read"), controllers.GetDrivers)

	admin := app.Group("/admin", middleware.Protected())
	// Registration order matters: /users/search before /users/:id
	admin.Get("/users/search", middleware.RequirePermission("users", "search"), controllers.SearchUsers)
	admin.Get("/users", middleware.RequirePermission("users", "read"), controllers.GetUsers)
	admin.Get("/users/:id", middleware.RequirePermission("users", "read"), controllers.GetUser)
	admin.Post("/users", middleware.RequirePermission("users", "create"), controllers.CreateUser)
	admin.Put("/users/:id", middleware.RequirePermission("users", "update"), controllers.UpdateUser)
	admin.Delete("/users/:id", middleware.RequirePermission("users", "delete"), controllers.DeleteUser)
}
