package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/patitas-quito/patitas/internal/adapters/auth"
	"github.com/patitas-quito/patitas/internal/adapters/http"
	natsadapter "github.com/patitas-quito/patitas/internal/adapters/nats"
	"github.com/patitas-quito/patitas/internal/adapters/postgres"
	"github.com/patitas-quito/patitas/internal/adapters/valkey"
	"github.com/patitas-quito/patitas/internal/core/ports"
	"github.com/patitas-quito/patitas/internal/core/usecases"
	"github.com/patitas-quito/patitas/internal/pkg/config"
	"github.com/patitas-quito/patitas/internal/pkg/logging"
	"github.com/patitas-quito/patitas/internal/pkg/metrics"
	"github.com/patitas-quito/patitas/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("patitas-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, os.Getenv("LOG_FORMAT"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	sectors, err := cfg.SectorTable()
	if err != nil {
		log.Fatalf("sectors: %v", err)
	}

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	go reportPoolStats(ctx, db)

	deps := &http.Dependencies{
		DB:        db,
		RateLimit: cfg.Server.RateLimit,
	}

	// Valkey-backed rate limiting; falls back to in-memory counters.
	store, err := valkey.New(cfg.Valkey.Addr, "patitas:")
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
	} else {
		defer store.Close()
		deps.Cache = store
		deps.RateLimitStorage = store
	}

	// NATS
	var events ports.EventPublisher
	pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		defer pub.Close()
		events = pub
		deps.NATS = pub.Conn()
	}

	tokens, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	if err != nil {
		log.Fatalf("auth: %v", err)
	}

	// Repos
	animalRepo := postgres.NewAnimalRepo(db)
	userRepo := postgres.NewUserRepo(db)

	// Use cases
	deps.Analysis = usecases.NewAnalysisService(animalRepo, sectors)
	deps.Animals = usecases.NewAnimalService(animalRepo, events)
	deps.Users = usecases.NewUserService(userRepo, auth.NewBcryptHasher(cfg.Auth.BcryptCost), tokens)

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "Patitas API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		MaxAge:       3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr, "sectors", sectors.Len())
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}

// reportPoolStats refreshes the pool gauges until ctx ends.
func reportPoolStats(ctx context.Context, db *postgres.DB) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.UpdateDBPoolMetrics(db.Pool.Stat())
		}
	}
}
