package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/driveazur/car-rental-app/controllers"
	"github.com/driveazur/car-rental-app/middleware"
)

// SetupAuthRoutes configures authentication and profile routes
func SetupAuthRoutes(app *fiber.App) {
	// Public routes
	app.Post("/register", controllers.Register)
	app.Post("/login", controllers.Login)
	app.Post("/refresh", controllers.RefreshToken)

	// Protected routes
	app.Get("/user", middleware.Protected(), controllers.GetCurrentUser)
	app.Post("/user/update", middleware.Protected(), controllers.UpdateProfile)
	app.Post("/logout", middleware.Protected(), controllers.Logout)
}
