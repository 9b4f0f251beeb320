// Package seed holds the fixed campus configuration: the location set in
// declaration order plus the map defaults derived from it.
package seed

import (
	"campus/internal/models"
	"campus/pkg/geo"
)

// Map defaults for Dedan Kimathi University.
var (
	// CampusBounds covers the university area; a highlighted render dims
	// everything inside it.
	CampusBounds = geo.Bounds{
		Min: geo.Point{Lat: -0.3950, Lon: 36.9600},
		Max: geo.Point{Lat: -0.3900, Lon: 36.9700},
	}

	// DefaultCenter is the map center when nothing is highlighted.
	DefaultCenter = geo.Point{Lat: -0.3923, Lon: 36.9634}
)

const (
	DefaultZoom   = 17
	HighlightZoom = 18
)

// Locations returns the campus seed set in declaration order. Query results
// across the service preserve this order.
func Locations() []models.Location {
	return []models.Location{
		{Name: "Main Gate", Point: geo.Point{Lat: -0.3918, Lon: 36.9630}, Type: "Entry", Radius: 50},
		{Name: "Library", Point: geo.Point{Lat: -0.3925, Lon: 36.9635}, Type: "Academic", Radius: 70},
		{Name: "Administration Block", Point: geo.Point{Lat: -0.3920, Lon: 36.9638}, Type: "Administrative", Radius: 60},
		{Name: "Engineering Block", Point: geo.Point{Lat: -0.3928, Lon: 36.9632}, Type: "Academic", Radius: 80},
		{Name: "Student Center", Point: geo.Point{Lat: -0.3922, Lon: 36.9640}, Type: "Services", Radius: 65},
	}
}
