package ports

import (
	"context"

	"github.com/patitas-quito/patitas/internal/core/domain"
)

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishAnimalEvent(ctx context.Context, event *domain.AnimalEvent) error
}

// TokenIssuer signs and verifies session tokens.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
	Verify(token string) (userID string, err error)
}

// PasswordHasher hashes and checks user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
