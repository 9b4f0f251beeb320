package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"campus/internal/directory"
	"campus/internal/enrich"
	"campus/internal/env"
	"campus/internal/models"
	"campus/internal/seed"
	"campus/internal/storage"
	"campus/pkg/geocode"
)

func main() {
	env.LoadEnv()

	bucketName := env.MustGetEnv("CAMPUS_BUCKET_NAME")
	ctx := context.Background()
	start := time.Now()

	// Fail fast on bad seed data before touching the bucket.
	records := seed.Locations()
	if _, err := directory.New(records); err != nil {
		log.Fatalf("Seed data is invalid: %v", err)
	}

	fmt.Printf("Seeding %d campus locations into bucket %q...\n", len(records), bucketName)

	s3Service, err := storage.NewService()
	if err != nil {
		log.Fatal(err)
	}
	if err := s3Service.EnsureBucket(ctx, bucketName); err != nil {
		log.Fatal(err)
	}

	geocoder := geocode.NewClient(os.Getenv("NOMINATIM_URL"))
	pipeline := enrich.NewPipeline(
		enrich.NewStage(addressStep(geocoder)),
	)

	in := make(chan *models.Location)
	go func() {
		defer close(in)
		for i := range records {
			in <- &records[i]
		}
	}()

	storeCh := make(chan models.Location)
	go func() {
		defer close(storeCh)
		for loc := range pipeline.Process(ctx, in) {
			storeCh <- *loc
		}
	}()
	stored := s3Service.StoreFromChannel(ctx, bucketName, storeCh)

	// The manifest pins declaration order and only lists objects that exist.
	entries := storage.ManifestFor(records, stored)
	if len(entries) < len(records) {
		log.Printf("Stored %d of %d locations; manifest covers the stored set only", len(entries), len(records))
	}
	if err := s3Service.WriteManifest(ctx, bucketName, entries); err != nil {
		log.Fatalf("Failed to write manifest: %v", err)
	}

	fmt.Printf("\nFinished seeding, took %s\n", time.Since(start))
}
