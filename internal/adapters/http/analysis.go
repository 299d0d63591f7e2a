package http

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/patitas-quito/patitas/internal/core/domain"
	"github.com/patitas-quito/patitas/internal/pkg/metrics"
)

// CountBySectorAndBreedHandler counts animals of a breed inside a sector.
// GET /analisis/contar/:sector/:raza
func CountBySectorAndBreedHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sector, err := url.PathUnescape(c.Params("sector"))
		if err != nil {
			metrics.SectorCountRequests.WithLabelValues(metrics.OutcomeInvalidSector).Inc()
			return errBadRequest(c, msgInvalidSector)
		}
		breed, err := url.PathUnescape(c.Params("raza"))
		if err != nil {
			return errBadRequest(c, "Raza no válida")
		}

		result, err := deps.Analysis.CountBySectorAndBreed(c.UserContext(), sector, breed)
		if errors.Is(err, domain.ErrInvalidSector) {
			metrics.SectorCountRequests.WithLabelValues(metrics.OutcomeInvalidSector).Inc()
			return errBadRequest(c, msgInvalidSector)
		}
		if err != nil {
			metrics.SectorCountRequests.WithLabelValues(metrics.OutcomeStoreError).Inc()
			LoggerFromCtx(c.UserContext()).Error("sector count failed",
				"sector", sector, "raza", breed, "error", err)
			return errInternal(c, msgInternal)
		}

		metrics.SectorCountRequests.WithLabelValues(metrics.OutcomeOK).Inc()
		return c.JSON(result)
	}
}

// ListSectorsHandler returns the sector table in classification order.
func ListSectorsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(deps.Analysis.Sectors())
	}
}

// ClassifyResponse is the body of GET /sectores/clasificar.
type ClassifyResponse struct {
	Lon    float64 `json:"lon"`
	Lat    float64 `json:"lat"`
	Sector string  `json:"sector"`
}

// ClassifyHandler maps a coordinate to its sector.
// GET /sectores/clasificar?lon=&lat=
func ClassifyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
		lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
		if errLon != nil || errLat != nil {
			return errBadRequest(c, "lon y lat deben ser números")
		}

		sector := deps.Analysis.Classify(domain.GeoPoint{Lon: lon, Lat: lat})
		return c.JSON(ClassifyResponse{Lon: lon, Lat: lat, Sector: sector})
	}
}
