package usecases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/patitas-quito/patitas/internal/core/domain"
	"github.com/patitas-quito/patitas/internal/core/usecases"
)

// --- Mock AnimalRepository ---

type mockAnimalRepo struct {
	createFn      func(ctx context.Context, a *domain.Animal) error
	getByIDFn     func(ctx context.Context, id string) (*domain.Animal, error)
	listFn        func(ctx context.Context) ([]domain.Animal, error)
	updateFn      func(ctx context.Context, a *domain.Animal) error
	deleteFn      func(ctx context.Context, id string) error
	findByBreedFn func(ctx context.Context, breed string) ([]domain.Animal, error)
}

func (m *mockAnimalRepo) Create(ctx context.Context, a *domain.Animal) error {
	if m.createFn != nil {
		return m.createFn(ctx, a)
	}
	a.ID = "a1"
	return nil
}

func (m *mockAnimalRepo) GetByID(ctx context.Context, id string) (*domain.Animal, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockAnimalRepo) List(ctx context.Context) ([]domain.Animal, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockAnimalRepo) Update(ctx context.Context, a *domain.Animal) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, a)
	}
	return nil
}

func (m *mockAnimalRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockAnimalRepo) FindByBreed(ctx context.Context, breed string) ([]domain.Animal, error) {
	if m.findByBreedFn != nil {
		return m.findByBreedFn(ctx, breed)
	}
	return nil, nil
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	events []domain.AnimalEvent
	err    error
}

func (m *mockPublisher) PublishAnimalEvent(ctx context.Context, event *domain.AnimalEvent) error {
	m.events = append(m.events, *event)
	return m.err
}

func validAnimal() *domain.Animal {
	return &domain.Animal{
		Kind:     domain.KindDog,
		Breed:    domain.BreedGolden,
		Location: domain.NewLocation(5, 5),
		Age:      3,
		Sex:      domain.SexMale,
	}
}

// --- Tests ---

func TestAnimalService_Create(t *testing.T) {
	pub := &mockPublisher{}
	svc := usecases.NewAnimalService(&mockAnimalRepo{}, pub)

	a := validAnimal()
	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID != "a1" {
		t.Errorf("expected id from repository, got %q", a.ID)
	}
	if a.RegisteredAt.IsZero() {
		t.Error("expected registration time to be set")
	}
	if len(pub.events) != 1 || pub.events[0].Type != domain.EventAnimalCreated {
		t.Fatalf("expected one created event, got %+v", pub.events)
	}
	if pub.events[0].AnimalID != "a1" {
		t.Errorf("expected event for a1, got %s", pub.events[0].AnimalID)
	}
}

func TestAnimalService_Create_Validation(t *testing.T) {
	cases := map[string]func(a *domain.Animal){
		"kind":        func(a *domain.Animal) { a.Kind = "Conejo" },
		"breed":       func(a *domain.Animal) { a.Breed = "Chihuahua" },
		"age":         func(a *domain.Animal) { a.Age = -1 },
		"sex":         func(a *domain.Animal) { a.Sex = "" },
		"geometry":    func(a *domain.Animal) { a.Location.Type = "Polygon" },
		"coordinates": func(a *domain.Animal) { a.Location.Coordinates = []float64{1} },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			called := false
			repo := &mockAnimalRepo{
				createFn: func(ctx context.Context, a *domain.Animal) error {
					called = true
					return nil
				},
			}
			svc := usecases.NewAnimalService(repo, nil)

			a := validAnimal()
			mutate(a)
			err := svc.Create(context.Background(), a)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if called {
				t.Error("repository must not be called for invalid input")
			}
		})
	}
}

func TestAnimalService_Create_PublishFailureIgnored(t *testing.T) {
	pub := &mockPublisher{err: errors.New("nats down")}
	svc := usecases.NewAnimalService(&mockAnimalRepo{}, pub)

	if err := svc.Create(context.Background(), validAnimal()); err != nil {
		t.Fatalf("publish failure must not fail create: %v", err)
	}
}

func TestAnimalService_Update_KeepsRegistrationTime(t *testing.T) {
	registered := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	var stored *domain.Animal
	repo := &mockAnimalRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Animal, error) {
			a := validAnimal()
			a.ID = id
			a.RegisteredAt = registered
			return a, nil
		},
		updateFn: func(ctx context.Context, a *domain.Animal) error {
			stored = a
			return nil
		},
	}
	pub := &mockPublisher{}
	svc := usecases.NewAnimalService(repo, pub)

	a := validAnimal()
	a.Breed = domain.BreedPoodle
	if err := svc.Update(context.Background(), "a7", a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored == nil || stored.ID != "a7" {
		t.Fatalf("expected update for a7, got %+v", stored)
	}
	if !stored.RegisteredAt.Equal(registered) {
		t.Errorf("expected registration time %v, got %v", registered, stored.RegisteredAt)
	}
	if len(pub.events) != 1 || pub.events[0].Type != domain.EventAnimalUpdated {
		t.Errorf("expected one updated event, got %+v", pub.events)
	}
}

func TestAnimalService_Update_NotFound(t *testing.T) {
	svc := usecases.NewAnimalService(&mockAnimalRepo{}, nil)

	err := svc.Update(context.Background(), "missing", validAnimal())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAnimalService_Delete(t *testing.T) {
	pub := &mockPublisher{}
	svc := usecases.NewAnimalService(&mockAnimalRepo{}, pub)

	if err := svc.Delete(context.Background(), "a3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pub.events) != 1 || pub.events[0].Type != domain.EventAnimalDeleted {
		t.Fatalf("expected one deleted event, got %+v", pub.events)
	}
	if pub.events[0].Animal != nil {
		t.Error("deleted event must not carry a body")
	}
}

func TestAnimalService_Delete_NotFoundNoEvent(t *testing.T) {
	repo := &mockAnimalRepo{
		deleteFn: func(ctx context.Context, id string) error { return domain.ErrNotFound },
	}
	pub := &mockPublisher{}
	svc := usecases.NewAnimalService(repo, pub)

	if err := svc.Delete(context.Background(), "gone"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(pub.events) != 0 {
		t.Errorf("expected no events, got %d", len(pub.events))
	}
}
