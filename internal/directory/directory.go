// Package directory owns the fixed set of campus locations and answers
// read-only lookup, filter, search, and distance queries. A Directory holds no
// per-user state; selection state is passed in by the caller on each query, so
// a single instance is safe to share across any number of concurrent callers.
package directory

import (
	"errors"
	"fmt"
	"strings"

	"campus/internal/models"
	"campus/pkg/geo"
)

// ErrInvalidInput marks a query argument the directory cannot work with, such
// as an origin with out-of-range coordinates. Absence of results is never an
// error: filter and search queries return empty slices instead.
var ErrInvalidInput = errors.New("invalid input")

// Directory is the read-only collection of all campus locations.
type Directory struct {
	locations []models.Location
}

// New validates the seed records and builds a directory preserving their
// declaration order. It fails on the configuration errors the queries cannot
// recover from: duplicate names, out-of-range coordinates, or a non-positive
// highlight radius.
func New(locations []models.Location) (*Directory, error) {
	seen := make(map[string]struct{}, len(locations))
	for _, l := range locations {
		if err := l.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		key := strings.ToLower(l.Name)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: duplicate location name %q", ErrInvalidInput, l.Name)
		}
		seen[key] = struct{}{}
	}

	d := &Directory{locations: make([]models.Location, len(locations))}
	copy(d.locations, locations)
	return d, nil
}

// All returns every location in declaration order. The returned slice is a
// copy; callers may reorder it freely.
func (d *Directory) All() []models.Location {
	out := make([]models.Location, len(d.locations))
	copy(out, d.locations)
	return out
}

// ByType returns the locations whose Type equals locType, in declaration
// order. No matches yields an empty slice.
func (d *Directory) ByType(locType string) []models.Location {
	out := []models.Location{}
	for _, l := range d.locations {
		if l.Type == locType {
			out = append(out, l)
		}
	}
	return out
}

// Search returns the locations whose name contains term, case-insensitively,
// in declaration order. An empty term matches nothing rather than everything.
func (d *Directory) Search(term string) []models.Location {
	out := []models.Location{}
	if term == "" {
		return out
	}
	needle := strings.ToLower(term)
	for _, l := range d.locations {
		if strings.Contains(strings.ToLower(l.Name), needle) {
			out = append(out, l)
		}
	}
	return out
}

// Find returns the location with the exact given name.
func (d *Directory) Find(name string) (models.Location, bool) {
	for _, l := range d.locations {
		if l.Name == name {
			return l, true
		}
	}
	return models.Location{}, false
}

// Distance pairs a target location with its geodesic distance from an origin.
type Distance struct {
	Location models.Location `json:"location"`
	Meters   float64         `json:"meters"`
}

// DistancesFrom computes the geodesic distance from origin to every other
// location, excluding origin itself. Results keep declaration order; callers
// wanting proximity order can sort the slice. Returns ErrInvalidInput when the
// origin carries out-of-range coordinates.
func (d *Directory) DistancesFrom(origin models.Location) ([]Distance, error) {
	if err := origin.Point.Validate(); err != nil {
		return nil, fmt.Errorf("%w: origin %q: %v", ErrInvalidInput, origin.Name, err)
	}

	out := make([]Distance, 0, len(d.locations))
	for _, l := range d.locations {
		if l.Name == origin.Name {
			continue
		}
		meters, err := geo.Distance(origin.Point, l.Point)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		out = append(out, Distance{Location: l, Meters: meters})
	}
	return out, nil
}
