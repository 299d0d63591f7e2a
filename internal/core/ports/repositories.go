package ports

import (
	"context"

	"github.com/patitas-quito/patitas/internal/core/domain"
)

// BreedFinder is the narrow read capability the sector count needs.
type BreedFinder interface {
	FindByBreed(ctx context.Context, breed string) ([]domain.Animal, error)
}

// AnimalRepository persists animals.
type AnimalRepository interface {
	BreedFinder
	Create(ctx context.Context, animal *domain.Animal) error
	GetByID(ctx context.Context, id string) (*domain.Animal, error)
	List(ctx context.Context) ([]domain.Animal, error)
	Update(ctx context.Context, animal *domain.Animal) error
	Delete(ctx context.Context, id string) error
}

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}
