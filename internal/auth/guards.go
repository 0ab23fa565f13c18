package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth rejects requests that reached the handler without an identity.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := IdentityFromContext(c); !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		return c.Next()
	}
}
