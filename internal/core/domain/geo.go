package domain

import "fmt"

// GeoPoint is a raw coordinate pair. Values are not range-checked; the
// sector bounds are expressed in the same ad hoc units.
type GeoPoint struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// PointType is the only GeoJSON geometry type accepted for a location.
const PointType = "Point"

// Location is the GeoJSON-style point stored on an animal.
// Coordinates are ordered [longitude, latitude].
type Location struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// NewLocation builds a Point location from a longitude and latitude.
func NewLocation(lon, lat float64) Location {
	return Location{Type: PointType, Coordinates: []float64{lon, lat}}
}

// Validate checks the geometry type and the coordinate arity.
func (l Location) Validate() error {
	if l.Type != PointType {
		return fmt.Errorf("%w: ubicacion.type must be %q", ErrValidation, PointType)
	}
	if len(l.Coordinates) != 2 {
		return fmt.Errorf("%w: ubicacion.coordinates must be [longitud, latitud]", ErrValidation)
	}
	return nil
}

// Point returns the location as a GeoPoint. Callers must Validate first.
func (l Location) Point() GeoPoint {
	return GeoPoint{Lon: l.Coordinates[0], Lat: l.Coordinates[1]}
}

// Bounds is a half-open rectangle [MinLat, MaxLat) x [MinLon, MaxLon).
type Bounds struct {
	MinLat float64 `json:"latMin"`
	MaxLat float64 `json:"latMax"`
	MinLon float64 `json:"lonMin"`
	MaxLon float64 `json:"lonMax"`
}

// Contains reports whether p lies inside b. Lower edges are inclusive and
// upper edges exclusive, so a box with MinLat >= MaxLat contains nothing.
func (b Bounds) Contains(p GeoPoint) bool {
	return p.Lat >= b.MinLat && p.Lat < b.MaxLat &&
		p.Lon >= b.MinLon && p.Lon < b.MaxLon
}

// Sector is a named zone of the city.
type Sector struct {
	Name   string `json:"nombre"`
	Bounds Bounds `json:"limites"`
}
