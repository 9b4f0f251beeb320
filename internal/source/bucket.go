package source

import (
	"context"
	"fmt"

	"campus/internal/directory"
	"campus/internal/models"
	"campus/internal/storage"
)

// FromBucket builds the directory from the seeded object store, following the
// ordering manifest so declaration order survives the round trip.
func FromBucket(ctx context.Context, s3 *storage.Service, bucket string) (*directory.Directory, error) {
	entries, err := s3.ReadManifest(ctx, bucket)
	if err != nil {
		return nil, err
	}

	locations := make([]models.Location, 0, len(entries))
	for _, entry := range entries {
		loc, err := s3.GetLocation(ctx, bucket, entry.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to load %q: %w", entry.Name, err)
		}
		locations = append(locations, *loc)
	}
	return directory.New(locations)
}
