package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patitas-quito/patitas/internal/core/domain"
	"github.com/patitas-quito/patitas/internal/core/ports"
)

// AnimalService handles animal registration and maintenance.
type AnimalService struct {
	animals ports.AnimalRepository
	events  ports.EventPublisher
	now     func() time.Time
}

// NewAnimalService creates a new AnimalService. events may be nil.
func NewAnimalService(animals ports.AnimalRepository, events ports.EventPublisher) *AnimalService {
	return &AnimalService{animals: animals, events: events, now: time.Now}
}

// Create validates and stores a new animal.
func (s *AnimalService) Create(ctx context.Context, a *domain.Animal) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.RegisteredAt.IsZero() {
		a.RegisteredAt = s.now().UTC()
	}

	if err := s.animals.Create(ctx, a); err != nil {
		return fmt.Errorf("create animal: %w", err)
	}

	s.publish(ctx, domain.EventAnimalCreated, a.ID, a)
	return nil
}

// List returns every registered animal, oldest first.
func (s *AnimalService) List(ctx context.Context) ([]domain.Animal, error) {
	return s.animals.List(ctx)
}

// ListByBreed returns every animal of breed, oldest first.
func (s *AnimalService) ListByBreed(ctx context.Context, breed string) ([]domain.Animal, error) {
	return s.animals.FindByBreed(ctx, breed)
}

// GetByID returns a single animal.
func (s *AnimalService) GetByID(ctx context.Context, id string) (*domain.Animal, error) {
	return s.animals.GetByID(ctx, id)
}

// Update replaces every editable field of the animal with id.
func (s *AnimalService) Update(ctx context.Context, id string, a *domain.Animal) error {
	if err := a.Validate(); err != nil {
		return err
	}

	current, err := s.animals.GetByID(ctx, id)
	if err != nil {
		return err
	}

	a.ID = id
	if a.RegisteredAt.IsZero() {
		a.RegisteredAt = current.RegisteredAt
	}

	if err := s.animals.Update(ctx, a); err != nil {
		return fmt.Errorf("update animal %s: %w", id, err)
	}

	s.publish(ctx, domain.EventAnimalUpdated, id, a)
	return nil
}

// Delete removes an animal.
func (s *AnimalService) Delete(ctx context.Context, id string) error {
	if err := s.animals.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, domain.EventAnimalDeleted, id, nil)
	return nil
}

// publish logs and drops broker failures. The write is already committed.
func (s *AnimalService) publish(ctx context.Context, eventType, id string, a *domain.Animal) {
	if s.events == nil {
		return
	}

	event := &domain.AnimalEvent{
		Type:     eventType,
		AnimalID: id,
		Animal:   a,
		Time:     s.now().UTC(),
	}
	if err := s.events.PublishAnimalEvent(ctx, event); err != nil {
		slog.WarnContext(ctx, "publish animal event failed", "type", eventType, "animal_id", id, "error", err)
	}
}
