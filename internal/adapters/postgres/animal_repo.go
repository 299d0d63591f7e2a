package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/patitas-quito/patitas/internal/core/domain"
	"github.com/patitas-quito/patitas/internal/pkg/telemetry"
)

const animalColumns = `id, tipo_animal, raza, ubicacion_tipo, lon, lat, edad, sexo, fecha_registro`

// AnimalRepo implements ports.AnimalRepository with pgx.
type AnimalRepo struct {
	db *DB
}

// NewAnimalRepo creates a new AnimalRepo.
func NewAnimalRepo(db *DB) *AnimalRepo {
	return &AnimalRepo{db: db}
}

// Create inserts an animal and fills in its generated ID.
func (r *AnimalRepo) Create(ctx context.Context, a *domain.Animal) error {
	p := a.Location.Point()
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO animales (tipo_animal, raza, ubicacion_tipo, lon, lat, edad, sexo, fecha_registro)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, a.Kind, a.Breed, a.Location.Type, p.Lon, p.Lat, a.Age, a.Sex, a.RegisteredAt).Scan(&a.ID)
	return mapErr(err)
}

// CreateBatch inserts many animals using pgx.Batch.
func (r *AnimalRepo) CreateBatch(ctx context.Context, animals []domain.Animal) error {
	batch := &pgx.Batch{}
	for _, a := range animals {
		p := a.Location.Point()
		batch.Queue(`
			INSERT INTO animales (tipo_animal, raza, ubicacion_tipo, lon, lat, edad, sexo, fecha_registro)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, a.Kind, a.Breed, a.Location.Type, p.Lon, p.Lat, a.Age, a.Sex, a.RegisteredAt)
	}
	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for range animals {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch exec: %w", err)
		}
	}
	return nil
}

// GetByID returns an animal by UUID.
func (r *AnimalRepo) GetByID(ctx context.Context, id string) (*domain.Animal, error) {
	row := r.db.Pool.QueryRow(ctx, `SELECT `+animalColumns+` FROM animales WHERE id = $1`, id)
	a, err := scanAnimal(row)
	if err != nil {
		return nil, mapErr(err)
	}
	return a, nil
}

// List returns every animal, oldest registration first.
func (r *AnimalRepo) List(ctx context.Context) ([]domain.Animal, error) {
	return r.query(ctx, `SELECT `+animalColumns+` FROM animales ORDER BY fecha_registro, id`)
}

// FindByBreed returns every animal of breed. The match is exact.
func (r *AnimalRepo) FindByBreed(ctx context.Context, breed string) ([]domain.Animal, error) {
	return r.query(ctx, `SELECT `+animalColumns+` FROM animales WHERE raza = $1 ORDER BY fecha_registro, id`, breed)
}

// Update overwrites every stored field of the animal.
func (r *AnimalRepo) Update(ctx context.Context, a *domain.Animal) error {
	p := a.Location.Point()
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE animales
		SET tipo_animal = $2, raza = $3, ubicacion_tipo = $4, lon = $5, lat = $6,
		    edad = $7, sexo = $8, fecha_registro = $9
		WHERE id = $1
	`, a.ID, a.Kind, a.Breed, a.Location.Type, p.Lon, p.Lat, a.Age, a.Sex, a.RegisteredAt)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes an animal by UUID.
func (r *AnimalRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM animales WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AnimalRepo) query(ctx context.Context, sql string, args ...any) ([]domain.Animal, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "postgres.animales.select")
	defer span.End()

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	defer rows.Close()

	var animals []domain.Animal
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		animals = append(animals, *a)
	}
	span.SetAttributes(attribute.Int("db.rows", len(animals)))
	return animals, rows.Err()
}

func scanAnimal(row pgx.Row) (*domain.Animal, error) {
	var (
		a        domain.Animal
		lon, lat float64
	)
	if err := row.Scan(
		&a.ID, &a.Kind, &a.Breed, &a.Location.Type, &lon, &lat,
		&a.Age, &a.Sex, &a.RegisteredAt,
	); err != nil {
		return nil, err
	}
	a.Location.Coordinates = []float64{lon, lat}
	return &a, nil
}
