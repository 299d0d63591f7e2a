package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/patitas-quito/patitas/internal/core/domain"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 200
)

// validID reports whether id is a well-formed record ID.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// ListAnimalsHandler returns registered animals, optionally filtered by
// ?raza=, with offset/limit pagination.
func ListAnimalsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			animals []domain.Animal
			err     error
		)
		if breed := c.Query("raza"); breed != "" {
			animals, err = deps.Animals.ListByBreed(c.UserContext(), breed)
		} else {
			animals, err = deps.Animals.List(c.UserContext())
		}
		if err != nil {
			return errFromDomain(c, err, msgAnimalNotFound)
		}

		offset := c.QueryInt("offset", 0)
		limit := c.QueryInt("limit", defaultPageLimit)
		if offset < 0 {
			offset = 0
		}
		if limit <= 0 || limit > maxPageLimit {
			limit = defaultPageLimit
		}

		total := len(animals)
		if offset >= total {
			animals = []domain.Animal{}
		} else {
			animals = animals[offset:min(offset+limit, total)]
		}

		pg := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: animals, Pagination: pg})
	}
}

// GetAnimalHandler returns a single animal by ID.
func GetAnimalHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !validID(id) {
			return errBadRequest(c, msgInvalidID)
		}

		animal, err := deps.Animals.GetByID(c.UserContext(), id)
		if err != nil {
			return errFromDomain(c, err, msgAnimalNotFound)
		}
		return c.JSON(animal)
	}
}

// CreateAnimalHandler registers a new animal.
func CreateAnimalHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var animal domain.Animal
		if err := c.BodyParser(&animal); err != nil {
			return errBadRequest(c, msgInvalidBody)
		}
		animal.ID = ""

		if err := deps.Animals.Create(c.UserContext(), &animal); err != nil {
			return errFromDomain(c, err, msgAnimalNotFound)
		}

		LoggerFromCtx(c.UserContext()).Info("animal registered",
			"animal_id", animal.ID, "usuario", UserIDFromCtx(c))
		return c.Status(fiber.StatusCreated).JSON(animal)
	}
}

// UpdateAnimalHandler replaces an animal's fields.
func UpdateAnimalHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !validID(id) {
			return errBadRequest(c, msgInvalidID)
		}

		var animal domain.Animal
		if err := c.BodyParser(&animal); err != nil {
			return errBadRequest(c, msgInvalidBody)
		}

		if err := deps.Animals.Update(c.UserContext(), id, &animal); err != nil {
			return errFromDomain(c, err, msgAnimalNotFound)
		}
		return c.JSON(animal)
	}
}

// DeleteAnimalHandler removes an animal.
func DeleteAnimalHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !validID(id) {
			return errBadRequest(c, msgInvalidID)
		}

		if err := deps.Animals.Delete(c.UserContext(), id); err != nil {
			return errFromDomain(c, err, msgAnimalNotFound)
		}
		return c.JSON(fiber.Map{"mensaje": "Animal eliminado"})
	}
}
