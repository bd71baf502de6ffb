package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/driveazur/car-rental-app/controllers"
	"github.com/driveazur/car-rental-app/middleware"
	"github.com/driveazur/car-rental-app/models"
)

// SetupReservationRoutes configures the reservation lifecycle routes
func SetupReservationRoutes(app *fiber.App) {
	app.Get("/user/reservations", middleware.Protected(), controllers.GetUserReservations)
	app.Post("/reservations", middleware.Protected(), controllers.CreateReservation)
	app.Get("/reservations/:id/pdf", middleware.Protected(), controllers.DownloadReservationPDF)
	app.Get("/reservations/:id", middleware.Protected(), controllers.GetReservation)
	app.Put("/reservations/:id", middleware.Protected(), controllers.UpdateReservation)
	app.Delete("/reservations/:id", middleware.Protected(), controllers.CancelReservation)

	staff := app.Group("/staff", middleware.Protected())
	staff.Get("/reservations", middleware.RequirePermission("reservations", "read"), controllers.GetAllReservations)
	staff.Get("/reservations/:id", middleware.RequirePermission("reservations", "read"), controllers.GetReservation)
	staff.Put("/reservations/:id", middleware.RequirePermission("reservations", "update"), controllers.UpdateReservation)
	staff.Delete("/reservations/:id", middleware.RequirePermission("reservations", "cancel"), controllers.CancelReservation)

	admin := app.Group("/admin", middleware.Protected())
	admin.Get("/reservations", middleware.RequirePermission("reservations", "read"), controllers.GetAllReservations)
	admin.Post("/reservations", middleware.RequirePermission("reservations", "create"), controllers.CreateReservation)
	admin.Put("/reservations/:id", middleware.RequirePermission("reservations", "update"), controllers.UpdateReservation)
	admin.Post("/reservations/:id/assign-driver", middleware.RequireRole(models.RoleAdmin), controllers.AssignDriver)
	admin.Delete("/reservations/:id", middleware.RequirePermission("reservations", "cancel"), controllers.CancelReservation)
	admin.Get("/reservations/:id/pdf", middleware.RequirePermission("reservations", "read"), controllers.DownloadReservationPDF)
}
