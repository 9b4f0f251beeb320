package models

import (
	"errors"
	"fmt"

	"campus/pkg/geo"
)

// ErrInvalidLocation marks a location record that fails validation.
var ErrInvalidLocation = errors.New("invalid location")

// Location is a named campus point of interest. The set of locations is fixed
// configuration: records are constructed once at startup and never mutated.
type Location struct {
	Name   string    `json:"name"`
	Point  geo.Point `json:"point"`
	Type   string    `json:"type"`
	Radius float64   `json:"radius"` // highlight circle radius in meters

	// Address is optional metadata attached by the seeder's geocode stage.
	Address string `json:"address,omitempty"`
}

// Validate checks the field ranges the rest of the system relies on.
func (l Location) Validate() error {
	if l.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidLocation)
	}
	if err := l.Point.Validate(); err != nil {
		return fmt.Errorf("location %q: %w", l.Name, err)
	}
	if l.Radius <= 0 {
		return fmt.Errorf("%w: %q: radius must be positive, got %v", ErrInvalidLocation, l.Name, l.Radius)
	}
	return nil
}
