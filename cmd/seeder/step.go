package main

import (
	"context"
	"fmt"

	"campus/internal/enrich"
	"campus/internal/models"
	"campus/pkg/geocode"
)

// addressStep fills in a human-readable address by geocoding the location
// name within the campus context. A lookup miss leaves Address empty.
func addressStep(client *geocode.Client) enrich.Step[models.Location] {
	return func(ctx context.Context, loc *models.Location) error {
		place, err := client.Forward(ctx, fmt.Sprintf("%s Dedan Kimathi University Nyeri", loc.Name))
		if err != nil {
			return fmt.Errorf("geocoding %q: %w", loc.Name, err)
		}
		loc.Address = place.DisplayName
		return nil
	}
}
