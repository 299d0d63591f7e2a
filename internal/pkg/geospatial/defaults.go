package geospatial

import "github.com/patitas-quito/patitas/internal/core/domain"

// DefaultSectors returns the built-in Quito sector registry.
//
// The bounds are ad hoc grid units, not WGS 84 degrees. Some boxes overlap
// and Quito Sur, Chillogallo and San Juan have inverted latitude bounds, so
// they never match. Keep the values and the order as they are: existing
// counts depend on them.
func DefaultSectors() []domain.Sector {
	return []domain.Sector{
		{Name: "Centro Histórico", Bounds: domain.Bounds{MinLat: 0, MaxLat: 10, MinLon: 0, MaxLon: 10}},
		{Name: "La Mariscal", Bounds: domain.Bounds{MinLat: 10, MaxLat: 20, MinLon: 5, MaxLon: 15}},
		{Name: "La Floresta", Bounds: domain.Bounds{MinLat: 5, MaxLat: 15, MinLon: 15, MaxLon: 25}},
		{Name: "Guápulo", Bounds: domain.Bounds{MinLat: 15, MaxLat: 25, MinLon: 20, MaxLon: 30}},
		{Name: "González Suárez", Bounds: domain.Bounds{MinLat: 20, MaxLat: 25, MinLon: 0, MaxLon: 10}},
		{Name: "Cumbayá y Tumbaco", Bounds: domain.Bounds{MinLat: 40, MaxLat: 50, MinLon: 26, MaxLon: 40}},
		{Name: "El Batán", Bounds: domain.Bounds{MinLat: 30, MaxLat: 39, MinLon: 27, MaxLon: 37}},
		{Name: "El Inca", Bounds: domain.Bounds{MinLat: 30, MaxLat: 40, MinLon: 0, MaxLon: 10}},
		{Name: "La Carolina", Bounds: domain.Bounds{MinLat: 41, MaxLat: 50, MinLon: 10, MaxLon: 20}},
		{Name: "La Concepción", Bounds: domain.Bounds{MinLat: 50, MaxLat: 60, MinLon: 0, MaxLon: 10}},
		{Name: "Carcelén", Bounds: domain.Bounds{MinLat: 61, MaxLat: 81, MinLon: 10, MaxLon: 20}},
		{Name: "Quito Norte", Bounds: domain.Bounds{MinLat: 61, MaxLat: 81, MinLon: -30, MaxLon: -1}},
		{Name: "Quito Sur", Bounds: domain.Bounds{MinLat: -23, MaxLat: -50, MinLon: -10, MaxLon: 10}},
		{Name: "Chillogallo", Bounds: domain.Bounds{MinLat: -11, MaxLat: -22, MinLon: -5, MaxLon: 5}},
		{Name: "San Juan", Bounds: domain.Bounds{MinLat: -1, MaxLat: -10, MinLon: -11, MaxLon: -1}},
	}
}

// DefaultTable returns a Table over DefaultSectors.
func DefaultTable() *Table {
	return MustNewTable(DefaultSectors())
}
