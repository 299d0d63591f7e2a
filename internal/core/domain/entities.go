package domain

import (
	"fmt"
	"slices"
	"time"
)

// AnimalKind is the species of a registered animal.
type AnimalKind string

const (
	KindDog AnimalKind = "Perro"
	KindCat AnimalKind = "Gato"
)

// Breed is the breed of a registered animal.
type Breed string

const (
	BreedGolden   Breed = "Golden"
	BreedPoodle   Breed = "Poodle"
	BreedLabrador Breed = "Labrador"
	BreedMestizo  Breed = "Mestizo"
	BreedGalgo    Breed = "Galgo"
)

// Sex of a registered animal.
type Sex string

const (
	SexMale    Sex = "Macho"
	SexFemale  Sex = "Hembra"
	SexUnknown Sex = "No identificado"
)

var (
	animalKinds = []AnimalKind{KindDog, KindCat}
	breeds      = []Breed{BreedGolden, BreedPoodle, BreedLabrador, BreedMestizo, BreedGalgo}
	sexes       = []Sex{SexMale, SexFemale, SexUnknown}
)

// Breeds returns the accepted breeds in display order.
func Breeds() []Breed {
	return slices.Clone(breeds)
}

// Animal is a registered pet with its last known location.
type Animal struct {
	ID           string     `json:"_id"`
	Kind         AnimalKind `json:"tipoAnimal"`
	Breed        Breed      `json:"raza"`
	Location     Location   `json:"ubicacion"`
	Age          int        `json:"edad"`
	Sex          Sex        `json:"sexo"`
	RegisteredAt time.Time  `json:"fechaRegistro"`
}

// Validate checks the enumerated fields, the age and the location shape.
func (a *Animal) Validate() error {
	if !slices.Contains(animalKinds, a.Kind) {
		return fmt.Errorf("%w: tipoAnimal %q is not one of %v", ErrValidation, a.Kind, animalKinds)
	}
	if !slices.Contains(breeds, a.Breed) {
		return fmt.Errorf("%w: raza %q is not one of %v", ErrValidation, a.Breed, breeds)
	}
	if a.Age < 0 {
		return fmt.Errorf("%w: edad must not be negative", ErrValidation)
	}
	if !slices.Contains(sexes, a.Sex) {
		return fmt.Errorf("%w: sexo %q is not one of %v", ErrValidation, a.Sex, sexes)
	}
	return a.Location.Validate()
}

// User is an account allowed to register and edit animals.
type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"nombre"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// SectorCount is the result of counting one breed inside one sector.
type SectorCount struct {
	Sector string `json:"sector"`
	Breed  string `json:"raza"`
	Count  int    `json:"conteo"`
}

// AnimalEvent is published whenever an animal record changes.
type AnimalEvent struct {
	Type     string    `json:"type"`
	AnimalID string    `json:"animal_id"`
	Animal   *Animal   `json:"animal,omitempty"`
	Time     time.Time `json:"time"`
}

const (
	EventAnimalCreated = "created"
	EventAnimalUpdated = "updated"
	EventAnimalDeleted = "deleted"
)
