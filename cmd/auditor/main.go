package main

import (
	"context"
	"fmt"
	"log"

	"campus/internal/env"
	"campus/internal/models"
	"campus/internal/service"
	"campus/internal/source"
	"campus/internal/storage"
	"campus/pkg/graceful"
	"campus/pkg/kafkaclient"
)

func main() {
	env.LoadEnv()

	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	kafkaBroker := env.MustGetEnv("KAFKA_BROKER")
	kafkaTopic := env.GetEnvOr("KAFKA_TOPIC", "campus.highlights")
	kafkaGroupID := env.GetEnvOr("KAFKA_GROUP_ID", "campus-auditor")
	bucketName := env.MustGetEnv("CAMPUS_BUCKET_NAME")

	log.Printf("Connecting to Kafka broker: %s on topic: %s with group ID: %s", kafkaBroker, kafkaTopic, kafkaGroupID)

	s3Service, err := storage.NewService()
	if err != nil {
		log.Fatal(err)
	}

	dir, err := source.FromBucket(ctx, s3Service, bucketName)
	if err != nil {
		log.Fatalf("Failed to load directory from bucket: %v", err)
	}

	manifest, err := s3Service.ReadManifest(ctx, bucketName)
	if err != nil {
		log.Fatalf("Failed to read manifest: %v", err)
	}
	keyByName := make(map[string]string, len(manifest))
	for _, entry := range manifest {
		keyByName[entry.Name] = entry.Key
	}

	consumer, err := kafkaclient.NewConsumer(kafkaTopic, kafkaGroupID, kafkaBroker)
	if err != nil {
		log.Fatalf("Failed to create kafka consumer: %v", err)
	}

	consumer.Start(ctx)
	iterator := service.NewIterator(consumer, func(ctx context.Context, name string) (*models.Location, error) {
		key, ok := keyByName[name]
		if !ok {
			return nil, fmt.Errorf("no stored record for %q", name)
		}
		return s3Service.GetLocation(ctx, bucketName, key)
	})

	for obj := range iterator.Objects(ctx) {
		fmt.Printf("Highlighted %s (%s) at %s\n", obj.Data.Name, obj.Data.Type, obj.Event.At.Format("15:04:05"))

		distances, err := dir.DistancesFrom(*obj.Data)
		if err != nil {
			log.Printf("Failed to compute distances for %q: %v", obj.Data.Name, err)
			continue
		}
		for _, d := range distances {
			fmt.Printf("  %-22s %8.1f m\n", d.Location.Name, d.Meters)
		}
	}

	consumer.Stop()
	log.Println("Main method finished, application exiting.")
}
