package http

import (
	"github.com/gofiber/fiber/v2"
)

type registerRequest struct {
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterHandler creates a user account.
// POST /crear-cuenta
func RegisterHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, msgInvalidBody)
		}

		user, err := deps.Users.Register(c.UserContext(), req.Name, req.Email, req.Password)
		if err != nil {
			return errFromDomain(c, err, msgInvalidCredentials)
		}

		LoggerFromCtx(c.UserContext()).Info("user registered", "usuario", user.ID)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"mensaje": "Usuario creado correctamente"})
	}
}

// LoginHandler checks credentials and returns a session token.
// POST /iniciar-sesion
func LoginHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, msgInvalidBody)
		}

		token, _, err := deps.Users.Authenticate(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return errFromDomain(c, err, msgInvalidCredentials)
		}
		return c.JSON(LoginResponse{Token: token})
	}
}

// ListUsersHandler returns every account without password hashes.
func ListUsersHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := deps.Users.List(c.UserContext())
		if err != nil {
			return errFromDomain(c, err, msgInvalidCredentials)
		}
		return c.JSON(users)
	}
}
