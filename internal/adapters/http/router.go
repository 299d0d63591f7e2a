package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/patitas-quito/patitas/internal/pkg/metrics"
	"github.com/patitas-quito/patitas/internal/pkg/telemetry"
)

const requestTimeout = 15 * time.Second

// withTimeout bounds a handler; its context is cancelled after requestTimeout.
func withTimeout(h fiber.Handler) fiber.Handler {
	return timeout.NewWithContext(h, requestTimeout)
}

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	app.Use(telemetry.Middleware())

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	app.Use(requestid.New())
	app.Use(RequestIDLogMiddleware())
	app.Use(AccessLogMiddleware())

	rateLimit := deps.RateLimit
	if rateLimit <= 0 {
		rateLimit = 120
	}
	app.Use(limiter.New(limiter.Config{
		Max:        rateLimit,
		Expiration: 1 * time.Minute,
		Storage:    deps.RateLimitStorage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "limiter:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return newError(c, fiber.StatusTooManyRequests, msgRateLimited)
		},
	}))

	// Security headers
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	})

	app.Use(CachingMiddleware())

	app.Get("/health", HealthHandler())
	app.Get("/ready", ReadyHandler(deps))

	// Analysis
	app.Get("/analisis/contar/:sector/:raza", withTimeout(CountBySectorAndBreedHandler(deps)))
	app.Get("/sectores", ListSectorsHandler(deps))
	app.Get("/sectores/clasificar", ClassifyHandler(deps))

	// Animals: reads are public, writes need a session token.
	auth := RequireAuth(deps.Users)
	animals := app.Group("/animales")
	animals.Get("/", withTimeout(ListAnimalsHandler(deps)))
	animals.Get("/:id", withTimeout(GetAnimalHandler(deps)))
	animals.Post("/", auth, withTimeout(CreateAnimalHandler(deps)))
	animals.Put("/:id", auth, withTimeout(UpdateAnimalHandler(deps)))
	animals.Delete("/:id", auth, withTimeout(DeleteAnimalHandler(deps)))

	// Accounts
	app.Post("/crear-cuenta", withTimeout(RegisterHandler(deps)))
	app.Post("/iniciar-sesion", withTimeout(LoginHandler(deps)))
	app.Get("/usuarios", withTimeout(ListUsersHandler(deps)))

	app.Post("/graphql", withTimeout(GraphQLHandler(deps)))

	// WebSocket relay of animal events
	app.Use("/ws", func(c *fiber.Ctx) error {
		if deps.NATS == nil {
			return newError(c, fiber.StatusServiceUnavailable, "Eventos no disponibles")
		}
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps.NATS)))
}
