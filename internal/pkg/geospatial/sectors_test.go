package geospatial

import (
	"testing"

	"github.com/patitas-quito/patitas/internal/core/domain"
)

func TestClassify_DefaultTable(t *testing.T) {
	table := DefaultTable()

	cases := []struct {
		name     string
		lon, lat float64
		expected string
	}{
		{"centro interior", 5, 5, "Centro Histórico"},
		{"centro lower corner inclusive", 0, 0, "Centro Histórico"},
		{"centro upper corner exclusive", 10, 10, "La Mariscal"},
		{"la mariscal", 12, 15, "La Mariscal"},
		{"la floresta", 20, 10, "La Floresta"},
		{"guapulo", 25, 20, "Guápulo"},
		{"gonzalez suarez", 5, 22, "González Suárez"},
		{"cumbaya", 30, 45, "Cumbayá y Tumbaco"},
		{"el batan", 30, 35, "El Batán"},
		{"el inca", 5, 35, "El Inca"},
		{"la carolina", 15, 45, "La Carolina"},
		{"la concepcion", 5, 55, "La Concepción"},
		{"carcelen", 15, 70, "Carcelén"},
		{"quito norte", -10, 70, "Quito Norte"},
		{"gap between boxes", 50, 50, UnknownSector},
		{"far away", 1000, -1000, UnknownSector},
		{"gap at latitude 60", 5, 60, UnknownSector},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := table.Classify(domain.GeoPoint{Lon: tc.lon, Lat: tc.lat})
			if got != tc.expected {
				t.Fatalf("Classify(lon=%v, lat=%v) = %q; want %q", tc.lon, tc.lat, got, tc.expected)
			}
		})
	}
}

func TestClassify_InvertedBoundsNeverMatch(t *testing.T) {
	table := DefaultTable()

	// Points that would fall inside Quito Sur, Chillogallo and San Juan if
	// their latitude bounds were ordered.
	points := []domain.GeoPoint{
		{Lon: 0, Lat: -30},
		{Lon: 0, Lat: -15},
		{Lon: -5, Lat: -5},
	}
	for _, p := range points {
		if got := table.Classify(p); got != UnknownSector {
			t.Errorf("Classify(%+v) = %q; want %q", p, got, UnknownSector)
		}
	}
}

func TestClassify_HalfOpenBounds(t *testing.T) {
	table := MustNewTable([]domain.Sector{
		{Name: "A", Bounds: domain.Bounds{MinLat: 0, MaxLat: 10, MinLon: 0, MaxLon: 10}},
	})

	if got := table.Classify(domain.GeoPoint{Lon: 0, Lat: 0}); got != "A" {
		t.Errorf("lower corner: got %q, want A", got)
	}
	if got := table.Classify(domain.GeoPoint{Lon: 10, Lat: 10}); got != UnknownSector {
		t.Errorf("upper corner: got %q, want %q", got, UnknownSector)
	}
	if got := table.Classify(domain.GeoPoint{Lon: 9.999, Lat: 10}); got != UnknownSector {
		t.Errorf("upper latitude edge: got %q, want %q", got, UnknownSector)
	}
	if got := table.Classify(domain.GeoPoint{Lon: 10, Lat: 9.999}); got != UnknownSector {
		t.Errorf("upper longitude edge: got %q, want %q", got, UnknownSector)
	}
}

func TestClassify_OverlapFirstRegisteredWins(t *testing.T) {
	first := domain.Sector{Name: "Centro Histórico", Bounds: domain.Bounds{MinLat: 0, MaxLat: 10, MinLon: 0, MaxLon: 10}}
	second := domain.Sector{Name: "Centro Ampliado", Bounds: domain.Bounds{MinLat: 5, MaxLat: 15, MinLon: 5, MaxLon: 15}}

	p := domain.GeoPoint{Lon: 5, Lat: 5}

	if got := MustNewTable([]domain.Sector{first, second}).Classify(p); got != first.Name {
		t.Errorf("got %q, want %q", got, first.Name)
	}
	if got := MustNewTable([]domain.Sector{second, first}).Classify(p); got != second.Name {
		t.Errorf("reversed order: got %q, want %q", got, second.Name)
	}
}

func TestNewTable_RejectsDuplicateNames(t *testing.T) {
	_, err := NewTable([]domain.Sector{
		{Name: "El Inca"},
		{Name: "El Inca"},
	})
	if err == nil {
		t.Fatal("expected error for duplicate sector names")
	}
}

func TestNewTable_RejectsEmptyName(t *testing.T) {
	if _, err := NewTable([]domain.Sector{{Name: ""}}); err == nil {
		t.Fatal("expected error for empty sector name")
	}
}

func TestTable_LookupAndOrder(t *testing.T) {
	table := DefaultTable()

	if table.Len() != 15 {
		t.Fatalf("expected 15 sectors, got %d", table.Len())
	}

	s, ok := table.Lookup("El Batán")
	if !ok {
		t.Fatal("expected El Batán to be registered")
	}
	if s.Bounds.MaxLat != 39 {
		t.Errorf("expected El Batán latMax 39, got %v", s.Bounds.MaxLat)
	}

	if table.Has("Atlántida") {
		t.Error("Atlántida must not be a sector")
	}
	if table.Has("el batán") {
		t.Error("lookup must be case-sensitive")
	}

	sectors := table.Sectors()
	if sectors[0].Name != "Centro Histórico" || sectors[14].Name != "San Juan" {
		t.Errorf("unexpected order: first %q, last %q", sectors[0].Name, sectors[14].Name)
	}

	sectors[0].Name = "mutated"
	if table.Sectors()[0].Name != "Centro Histórico" {
		t.Error("Sectors must return a copy")
	}
}

func TestNewTable_CopiesInput(t *testing.T) {
	in := []domain.Sector{{Name: "A", Bounds: domain.Bounds{MaxLat: 1, MaxLon: 1}}}
	table := MustNewTable(in)
	in[0].Bounds.MaxLat = 0

	if got := table.Classify(domain.GeoPoint{Lon: 0.5, Lat: 0.5}); got != "A" {
		t.Errorf("table must not alias its input, got %q", got)
	}
}
