package source

import (
	"campus/internal/directory"
	"campus/internal/seed"
)

// FromSeed builds the directory from the compiled-in campus seed.
func FromSeed() (*directory.Directory, error) {
	return directory.New(seed.Locations())
}
