package keys

import (
	"fmt"
	"strings"

	"campus/internal/models"
)

// Manifest is the object key of the ordering manifest. Object listings do not
// preserve declaration order, so the seeder writes the order out explicitly.
const Manifest = "locations/manifest.json"

// sanitizeKey replaces spaces with hyphens and lowercases the string.
func sanitizeKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", "-"))
}

// Location returns the canonical object-store key for a location record.
func Location(l models.Location) string {
	return fmt.Sprintf("locations/%s/%s.json",
		sanitizeKey(l.Type),
		sanitizeKey(l.Name),
	)
}
