package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/driveazur/car-rental-app/models"
)

// RequirePermission gates a route on the caller's role capability.
// Must run after Protected.
func RequirePermission(resource string, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(models.Role)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "No role in request context",
			})
		}

		if !role.Can(resource, action) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You don't have permission to perform this action",
			})
		}

		return c.Next()
	}
}

// RequireRole gates a route on an exact role.
func RequireRole(roleName models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(models.Role)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "No role in request context",
			})
		}

		if role != roleName {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You don't have the required role to perform this action",
			})
		}

		return c.Next()
	}
}
