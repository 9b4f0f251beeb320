package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"campus/internal/api"
	"campus/internal/env"
	"campus/internal/render"
	"campus/internal/seed"
	"campus/internal/source"
	"campus/pkg/graceful"
	"campus/pkg/kafkaclient"
)

func main() {
	env.LoadEnv()

	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	dir, err := source.FromEnv(ctx)
	if err != nil {
		log.Fatalf("Failed to load location directory: %v", err)
	}

	composer := render.NewComposer(dir, seed.CampusBounds, seed.DefaultCenter, seed.DefaultZoom, seed.HighlightZoom)

	// Highlight events are optional telemetry; without a broker the API runs
	// the same, it just publishes nothing.
	var publisher api.EventPublisher
	if broker := os.Getenv("KAFKA_BROKER"); broker != "" {
		topic := env.GetEnvOr("KAFKA_TOPIC", "campus.highlights")
		p := kafkaclient.NewPublisher(broker, topic)
		defer p.Close()
		publisher = p
		logger.Info("publishing highlight events", "broker", broker, "topic", topic)
	}

	handler := api.NewHandler(dir, composer, publisher, logger)
	mux := http.NewServeMux()
	handler.Register(mux)

	addr := env.GetEnvOr("LISTEN_ADDR", ":8080")
	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	logger.Info("serving campus directory", "addr", addr)
	if err := graceful.Serve(ctx, srv, 10*time.Second); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
	log.Println("Server stopped gracefully.")
}
