// Package source loads the ordered location seed from whichever backend the
// environment selects and turns it into a directory. The loading format is an
// external concern: the directory only ever sees an ordered collection of
// validated records.
package source

import (
	"context"
	"fmt"

	"campus/internal/directory"
	"campus/internal/env"
	"campus/internal/storage"
)

// FromEnv builds the directory from the backend named by LOCATION_SOURCE:
// "static" (default), "file", "bucket", or "postgres".
func FromEnv(ctx context.Context) (*directory.Directory, error) {
	switch src := env.GetEnvOr("LOCATION_SOURCE", "static"); src {
	case "static":
		return FromSeed()
	case "file":
		return FromFile(env.MustGetEnv("LOCATION_FILE"))
	case "bucket":
		s3, err := storage.NewService()
		if err != nil {
			return nil, err
		}
		return FromBucket(ctx, s3, env.MustGetEnv("CAMPUS_BUCKET_NAME"))
	case "postgres":
		return FromPostgresURL(ctx, env.MustGetEnv("POSTGRES_URL"))
	default:
		return nil, fmt.Errorf("unknown LOCATION_SOURCE %q", src)
	}
}
