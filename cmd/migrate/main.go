package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/patitas-quito/patitas/internal/pkg/config"
	"github.com/patitas-quito/patitas/internal/pkg/logging"
)

const migrationsDir = "migrations"

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: migrate <up|down>")
	}

	logging.Setup(os.Getenv("LOG_LEVEL"), "text")

	cfg, err := config.Load("patitas-migrate")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	var files []string
	switch os.Args[1] {
	case "up":
		files, err = migrationFiles(migrationsDir, "up")
	case "down":
		files, err = migrationFiles(migrationsDir, "down")
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
	if err != nil {
		log.Fatalf("list migrations: %v", err)
	}

	if err := apply(ctx, pool, files); err != nil {
		log.Fatal(err)
	}
	slog.Info("migrations applied", "direction", os.Args[1], "count", len(files))
}

// migrationFiles returns NNN_name.<direction>.sql files: ascending for up,
// descending for down.
func migrationFiles(dir, direction string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*."+direction+".sql"))
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	if direction == "down" {
		slices.Reverse(files)
	}
	return files, nil
}

func apply(ctx context.Context, pool *pgxpool.Pool, files []string) error {
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		if _, err := pool.Exec(ctx, string(data)); err != nil {
			return fmt.Errorf("exec %s: %w", f, err)
		}

		slog.Info("applied", "file", f)
	}
	return nil
}
