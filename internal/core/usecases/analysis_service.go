package usecases

import (
	"context"
	"fmt"

	"github.com/patitas-quito/patitas/internal/core/domain"
	"github.com/patitas-quito/patitas/internal/core/ports"
	"github.com/patitas-quito/patitas/internal/pkg/geospatial"
)

// AnalysisService answers sector-based questions over the animal registry.
type AnalysisService struct {
	animals ports.BreedFinder
	sectors *geospatial.Table
}

// NewAnalysisService creates a new AnalysisService. A nil table falls back
// to the built-in sector registry.
func NewAnalysisService(animals ports.BreedFinder, sectors *geospatial.Table) *AnalysisService {
	if sectors == nil {
		sectors = geospatial.DefaultTable()
	}
	return &AnalysisService{animals: animals, sectors: sectors}
}

// CountBySectorAndBreed counts animals of breed whose location classifies
// into sector. Unknown sectors fail with domain.ErrInvalidSector before the
// store is queried; store failures come back as *domain.StoreError.
func (s *AnalysisService) CountBySectorAndBreed(ctx context.Context, sector, breed string) (*domain.SectorCount, error) {
	if !s.sectors.Has(sector) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSector, sector)
	}

	animals, err := s.animals.FindByBreed(ctx, breed)
	if err != nil {
		return nil, &domain.StoreError{Op: "find by breed", Err: err}
	}

	count := 0
	for _, a := range animals {
		if a.Location.Validate() != nil {
			continue
		}
		if s.sectors.Classify(a.Location.Point()) == sector {
			count++
		}
	}

	return &domain.SectorCount{Sector: sector, Breed: breed, Count: count}, nil
}

// Classify returns the sector name for a coordinate.
func (s *AnalysisService) Classify(p domain.GeoPoint) string {
	return s.sectors.Classify(p)
}

// Sectors returns the sector registry in classification order.
func (s *AnalysisService) Sectors() []domain.Sector {
	return s.sectors.Sectors()
}
