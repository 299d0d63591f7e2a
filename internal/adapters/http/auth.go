package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/patitas-quito/patitas/internal/core/usecases"
)

const localsUser = "usuario"

// RequireAuth rejects requests without a valid "Authorization: Bearer" token
// and stores the caller's user ID in c.Locals("usuario").
func RequireAuth(users *usecases.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			return errUnauthorized(c, msgTokenRequired)
		}

		userID, err := users.VerifyToken(token)
		if err != nil {
			LoggerFromCtx(c.UserContext()).Debug("token rejected", "error", err)
			return errUnauthorized(c, msgTokenInvalid)
		}

		c.Locals(localsUser, userID)
		return c.Next()
	}
}

// UserIDFromCtx returns the authenticated user ID, or "" on public routes.
func UserIDFromCtx(c *fiber.Ctx) string {
	id, _ := c.Locals(localsUser).(string)
	return id
}
