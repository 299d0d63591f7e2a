package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"

	"github.com/patitas-quito/patitas/internal/core/usecases"
)

// Pinger is a backing service that can report its health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Analysis *usecases.AnalysisService
	Animals  *usecases.AnimalService
	Users    *usecases.UserService
	NATS     *nats.Conn
	DB       Pinger
	Cache    Pinger

	// RateLimitStorage shares limiter counters between replicas. Nil keeps
	// them in process memory.
	RateLimitStorage fiber.Storage
	// RateLimit is the per-IP request budget per minute. Zero uses 120.
	RateLimit int
}
