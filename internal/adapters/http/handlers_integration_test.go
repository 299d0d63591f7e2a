//go:build integration
// +build integration

package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/patitas-quito/patitas/internal/adapters/auth"
	"github.com/patitas-quito/patitas/internal/adapters/http"
	"github.com/patitas-quito/patitas/internal/adapters/postgres"
	"github.com/patitas-quito/patitas/internal/core/domain"
	"github.com/patitas-quito/patitas/internal/core/usecases"
	"github.com/patitas-quito/patitas/internal/pkg/config"
)

// setupTestDB connects to the test database and empties the tables.
// The schema must already be migrated.
func setupTestDB(t *testing.T) *postgres.DB {
	t.Setenv("PATITAS_AUTH_JWT_SECRET", "integration-secret")
	cfg, err := config.Load("patitas-test")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := postgres.New(ctx, cfg.Database.DSN(), 4)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	if _, err := db.Pool.Exec(ctx, `TRUNCATE animales, usuarios`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return db
}

func setupIntegrationApp(t *testing.T, db *postgres.DB) *fiber.App {
	animalRepo := postgres.NewAnimalRepo(db)
	tokens, err := auth.NewTokenIssuer("integration-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	deps := &http.Dependencies{
		Analysis: usecases.NewAnalysisService(animalRepo, nil),
		Animals:  usecases.NewAnimalService(animalRepo, nil),
		Users:    usecases.NewUserService(postgres.NewUserRepo(db), auth.NewBcryptHasher(4), tokens),
		DB:       db,
	}
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	http.SetupRoutes(app, deps)
	return app
}

func seedAnimal(t *testing.T, db *postgres.DB, breed domain.Breed, lon, lat float64) {
	a := &domain.Animal{
		Kind:         domain.KindDog,
		Breed:        breed,
		Location:     domain.NewLocation(lon, lat),
		Age:          1,
		Sex:          domain.SexUnknown,
		RegisteredAt: time.Now().UTC(),
	}
	if err := postgres.NewAnimalRepo(db).Create(context.Background(), a); err != nil {
		t.Fatalf("seed animal: %v", err)
	}
}

// TestCount_Integration runs the sector count against a real database.
func TestCount_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Close()

	seedAnimal(t, db, domain.BreedPoodle, 5, 5)
	seedAnimal(t, db, domain.BreedPoodle, 9, 1)
	seedAnimal(t, db, domain.BreedPoodle, 50, 50)
	seedAnimal(t, db, domain.BreedGolden, 5, 5)

	app := setupIntegrationApp(t, db)

	req := httptest.NewRequest("GET", "/analisis/contar/"+url.PathEscape("Centro Histórico")+"/Poodle", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result domain.SectorCount
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Count != 2 {
		t.Errorf("expected conteo 2, got %d", result.Count)
	}
}

// TestUserRepo_Integration checks email uniqueness and lookups.
func TestUserRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Close()

	repo := postgres.NewUserRepo(db)
	ctx := context.Background()

	u := &domain.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "h", CreatedAt: time.Now().UTC()}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == "" {
		t.Fatal("expected generated id")
	}

	dup := &domain.User{Name: "Otra", Email: "ana@example.com", PasswordHash: "h", CreatedAt: time.Now().UTC()}
	if err := repo.Create(ctx, dup); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	got, err := repo.GetByEmail(ctx, "ana@example.com")
	if err != nil || got.ID != u.ID {
		t.Fatalf("lookup: got %+v, %v", got, err)
	}
	if _, err := repo.GetByEmail(ctx, "nadie@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// TestAnimalRepo_Integration covers update and delete of missing rows.
func TestAnimalRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Close()

	repo := postgres.NewAnimalRepo(db)
	ctx := context.Background()

	a := &domain.Animal{
		Kind: domain.KindCat, Breed: domain.BreedMestizo, Location: domain.NewLocation(-3, -4),
		Age: 2, Sex: domain.SexFemale, RegisteredAt: time.Now().UTC(),
	}
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}

	a.Age = 3
	if err := repo.Update(ctx, a); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := repo.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Age != 3 || got.Location.Coordinates[0] != -3 || got.Location.Coordinates[1] != -4 {
		t.Errorf("unexpected round trip: %+v", got)
	}

	if err := repo.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, a.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
