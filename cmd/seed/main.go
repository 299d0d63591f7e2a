package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/patitas-quito/patitas/internal/adapters/postgres"
	"github.com/patitas-quito/patitas/internal/core/domain"
	"github.com/patitas-quito/patitas/internal/pkg/config"
	"github.com/patitas-quito/patitas/internal/pkg/logging"
	"github.com/patitas-quito/patitas/internal/pkg/metrics"
)

const (
	batchSize   = 500
	maxInFlight = 4
)

// batchWriter is the part of postgres.AnimalRepo the seeder needs.
type batchWriter interface {
	CreateBatch(ctx context.Context, animals []domain.Animal) error
}

func main() {
	logging.Setup(os.Getenv("LOG_LEVEL"), "text")

	cfg, err := config.Load("patitas-seed")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	db, err := postgres.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	path := "animales.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	animals, skipped, err := readAnimals(f, time.Now().UTC())
	if err != nil {
		log.Fatalf("parse %s: %v", path, err)
	}
	slog.Info("seeding animals", "file", path, "valid", len(animals), "skipped", skipped)

	inserted := seed(ctx, postgres.NewAnimalRepo(db), animals)
	slog.Info("seed complete", "inserted", inserted)
}

// readAnimals decodes a JSON array of animals. Records that fail validation
// are skipped and counted; missing registration times default to now.
func readAnimals(r io.Reader, now time.Time) ([]domain.Animal, int, error) {
	var raw []domain.Animal
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, 0, err
	}

	valid := make([]domain.Animal, 0, len(raw))
	skipped := 0
	for i := range raw {
		a := raw[i]
		if err := a.Validate(); err != nil {
			slog.Warn("skipping animal", "index", i, "error", err)
			skipped++
			continue
		}
		if a.RegisteredAt.IsZero() {
			a.RegisteredAt = now
		}
		a.ID = ""
		valid = append(valid, a)
	}
	return valid, skipped, nil
}

// seed writes animals in batches with at most maxInFlight batches running at
// once. A failed batch is logged and the rest continue. Returns the number of
// inserted animals.
func seed(ctx context.Context, repo batchWriter, animals []domain.Animal) int64 {
	var (
		wg       sync.WaitGroup
		inserted atomic.Int64
	)
	sem := make(chan struct{}, maxInFlight)

	for start := 0; start < len(animals); start += batchSize {
		end := min(start+batchSize, len(animals))
		chunk := animals[start:end]

		wg.Add(1)
		go func(first int, chunk []domain.Animal) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := repo.CreateBatch(ctx, chunk); err != nil {
				slog.Error("batch failed", "first", first, "size", len(chunk), "error", fmt.Errorf("create batch: %w", err))
				return
			}
			inserted.Add(int64(len(chunk)))
			metrics.AnimalsSeeded.Add(float64(len(chunk)))
		}(start, chunk)
	}

	wg.Wait()
	return inserted.Load()
}
