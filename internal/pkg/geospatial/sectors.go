package geospatial

import (
	"fmt"

	"github.com/patitas-quito/patitas/internal/core/domain"
)

// UnknownSector is returned by Classify when no sector contains the point.
const UnknownSector = "Sector Desconocido"

// Table is an ordered, immutable registry of sectors. Registration order
// decides which sector wins when bounds overlap.
type Table struct {
	sectors []domain.Sector
	index   map[string]int
}

// NewTable builds a table from sectors in the given order.
// Names must be non-empty and unique.
func NewTable(sectors []domain.Sector) (*Table, error) {
	t := &Table{
		sectors: make([]domain.Sector, len(sectors)),
		index:   make(map[string]int, len(sectors)),
	}
	copy(t.sectors, sectors)

	for i, s := range t.sectors {
		if s.Name == "" {
			return nil, fmt.Errorf("sector %d has no name", i)
		}
		if _, dup := t.index[s.Name]; dup {
			return nil, fmt.Errorf("duplicate sector name %q", s.Name)
		}
		t.index[s.Name] = i
	}

	return t, nil
}

// MustNewTable is like NewTable but panics on an invalid sector list.
func MustNewTable(sectors []domain.Sector) *Table {
	t, err := NewTable(sectors)
	if err != nil {
		panic("geospatial: " + err.Error())
	}
	return t
}

// Lookup returns the sector registered under name.
func (t *Table) Lookup(name string) (domain.Sector, bool) {
	i, ok := t.index[name]
	if !ok {
		return domain.Sector{}, false
	}
	return t.sectors[i], true
}

// Has reports whether name is a registered sector.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Sectors returns a copy of the registry in registration order.
func (t *Table) Sectors() []domain.Sector {
	out := make([]domain.Sector, len(t.sectors))
	copy(out, t.sectors)
	return out
}

// Len returns the number of registered sectors.
func (t *Table) Len() int {
	return len(t.sectors)
}

// Classify returns the name of the first sector whose bounds contain p,
// or UnknownSector.
func (t *Table) Classify(p domain.GeoPoint) string {
	for _, s := range t.sectors {
		if s.Bounds.Contains(p) {
			return s.Name
		}
	}
	return UnknownSector
}
