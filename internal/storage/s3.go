package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"campus/internal/keys"
	"campus/internal/models"
)

// Service is a client for S3-compatible storage holding the seeded location
// records and their ordering manifest.
type Service struct {
	client *minio.Client
}

// ManifestEntry maps a location name to its object key, in declaration order.
type ManifestEntry struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

// NewService connects to the MinIO endpoint configured in the environment.
func NewService() (*Service, error) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("missing one or more required environment variables: MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	log.Println("Successfully connected to MinIO endpoint:", endpoint)
	return &Service{client: client}, nil
}

// EnsureBucket creates the bucket if it does not exist yet.
func (s *Service) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("error checking bucket existence: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return err
		}
	}
	return nil
}

// StoreFromChannel reads location records from a channel and stores each one
// in the given bucket. Existing objects are left alone, so re-seeding is
// idempotent. Returns the names of the records present in the bucket once the
// channel drains; records whose upload failed are omitted.
func (s *Service) StoreFromChannel(ctx context.Context, bucket string, locations <-chan models.Location) []string {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		stored []string
	)

	for loc := range locations {
		wg.Add(1)
		go func(l models.Location) {
			defer wg.Done()
			if err := s.storeOne(ctx, bucket, l); err != nil {
				log.Printf("Error storing location %q: %v", l.Name, err)
				return
			}
			mu.Lock()
			stored = append(stored, l.Name)
			mu.Unlock()
		}(loc)
	}

	wg.Wait()
	return stored
}

func (s *Service) storeOne(ctx context.Context, bucket string, loc models.Location) error {
	objectKey := keys.Location(loc)

	_, err := s.client.StatObject(ctx, bucket, objectKey, minio.StatObjectOptions{})
	if err == nil {
		log.Printf("Location %q already exists in bucket %q, skipping.", loc.Name, bucket)
		return nil
	}
	if minio.ToErrorResponse(err).Code != "NoSuchKey" {
		return fmt.Errorf("failed to check for existing object: %w", err)
	}

	data, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("failed to marshal location to JSON: %w", err)
	}

	_, err = s.client.PutObject(
		ctx,
		bucket,
		objectKey,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return fmt.Errorf("failed to store object: %w", err)
	}

	log.Printf("Stored location %q in bucket %q with key %q", loc.Name, bucket, objectKey)
	return nil
}

// GetLocation retrieves one location record by object key.
func (s *Service) GetLocation(ctx context.Context, bucket, objectKey string) (*models.Location, error) {
	object, err := s.client.GetObject(ctx, bucket, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer object.Close()

	var loc models.Location
	if err := json.NewDecoder(object).Decode(&loc); err != nil {
		return nil, fmt.Errorf("failed to decode JSON from stream: %w", err)
	}
	return &loc, nil
}

// ManifestFor builds manifest entries for the records that made it into the
// bucket, preserving the order of records. A record missing from storedNames
// is dropped so readers never chase a key that was not written.
func ManifestFor(records []models.Location, storedNames []string) []ManifestEntry {
	present := make(map[string]struct{}, len(storedNames))
	for _, name := range storedNames {
		present[name] = struct{}{}
	}

	entries := make([]ManifestEntry, 0, len(records))
	for _, loc := range records {
		if _, ok := present[loc.Name]; !ok {
			continue
		}
		entries = append(entries, ManifestEntry{Name: loc.Name, Key: keys.Location(loc)})
	}
	return entries
}

// WriteManifest stores the ordering manifest. The manifest pins declaration
// order, which bucket listings would otherwise lose.
func (s *Service) WriteManifest(ctx context.Context, bucket string, entries []ManifestEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	_, err = s.client.PutObject(
		ctx,
		bucket,
		keys.Manifest,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return fmt.Errorf("failed to store manifest: %w", err)
	}
	return nil
}

// ReadManifest loads the ordering manifest.
func (s *Service) ReadManifest(ctx context.Context, bucket string) ([]ManifestEntry, error) {
	object, err := s.client.GetObject(ctx, bucket, keys.Manifest, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get manifest: %w", err)
	}
	defer object.Close()

	var entries []ManifestEntry
	if err := json.NewDecoder(object).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return entries, nil
}
