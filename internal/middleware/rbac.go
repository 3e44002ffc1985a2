package middleware

import (
	"github.com/gofiber/fiber/v2"
)

func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := CurrentIdentity(c)
		if identity == nil {
			return Unauthorized("Authentication required")
		}

		if !identity.IsAdmin {
			return Forbidden("Admin access required")
		}

		return c.Next()
	}
}

func IsAdmin(c *fiber.Ctx) bool {
	identity := CurrentIdentity(c)
	return identity != nil && identity.IsAdmin
}
