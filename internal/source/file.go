package source

import (
	"encoding/json"
	"fmt"
	"os"

	"campus/internal/directory"
	"campus/internal/models"
)

// FromFile builds the directory from a JSON array of location records on
// disk. Array order is declaration order.
func FromFile(path string) (*directory.Directory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open location file: %w", err)
	}
	defer f.Close()

	var locations []models.Location
	if err := json.NewDecoder(f).Decode(&locations); err != nil {
		return nil, fmt.Errorf("failed to decode location file %s: %w", path, err)
	}
	return directory.New(locations)
}
