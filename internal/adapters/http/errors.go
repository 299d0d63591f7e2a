package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/patitas-quito/patitas/internal/core/domain"
)

// Client-facing messages.
const (
	msgInvalidSector      = "Sector no válido"
	msgInternal           = "Error interno del servidor"
	msgAnimalNotFound     = "Animal no encontrado"
	msgInvalidID          = "ID no válido"
	msgInvalidBody        = "Cuerpo de la petición no válido"
	msgUserExists         = "El usuario ya está registrado"
	msgInvalidCredentials = "Credenciales inválidas"
	msgTokenRequired      = "Token requerido"
	msgTokenInvalid       = "Token no válido"
	msgRateLimited        = "Demasiadas peticiones, inténtalo más tarde"
)

// APIError is the body of every error response.
type APIError struct {
	Message string `json:"error"`
}

// newError builds a JSON error response.
func newError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(APIError{Message: message})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, msg)
}

// errNotFound returns a 404 error.
func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusNotFound, msg)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusInternalServerError, msg)
}

// errUnauthorized returns a 401 error.
func errUnauthorized(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusUnauthorized, msg)
}

// errConflict returns a 409 error.
func errConflict(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusConflict, msg)
}

// errFromDomain maps a service error onto a response. notFound is the
// message used for domain.ErrNotFound. Unexpected errors are logged with the
// request logger and hidden from the client.
func errFromDomain(c *fiber.Ctx, err error, notFound string) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return errBadRequest(c, err.Error())
	case errors.Is(err, domain.ErrInvalidSector):
		return errBadRequest(c, msgInvalidSector)
	case errors.Is(err, domain.ErrNotFound):
		return errNotFound(c, notFound)
	case errors.Is(err, domain.ErrConflict):
		return errConflict(c, msgUserExists)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return errUnauthorized(c, msgInvalidCredentials)
	case errors.Is(err, domain.ErrUnauthorized):
		return errUnauthorized(c, msgTokenInvalid)
	}

	LoggerFromCtx(c.UserContext()).Error("request failed",
		"method", c.Method(), "path", c.Path(), "error", err)
	return errInternal(c, msgInternal)
}
