// Package kafkaclient wraps segmentio/kafka-go for the campus highlight event
// stream: a manually-committed consumer for the auditor and a JSON publisher
// for the map service.
package kafkaclient

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaReader is the subset of the kafka-go Reader the consumer needs.
// It exists so tests can inject a mock reader.
type KafkaReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer manages the highlight-event consumer loop. Offsets are committed
// manually, after the event has been fully processed.
type Consumer struct {
	reader      KafkaReader
	doneChan    chan struct{}
	wg          sync.WaitGroup
	messageChan chan kafka.Message
}

// NewConsumer creates a consumer for the given topic and group.
func NewConsumer(topic, groupID, broker string) (*Consumer, error) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{broker},
		Topic:   topic,
		GroupID: groupID,
		// Disable auto-commit; offsets are committed after processing.
		CommitInterval: 0,
		MinBytes:       10e3,
		MaxBytes:       10e6,
	})
	return &Consumer{
		reader:      reader,
		doneChan:    make(chan struct{}),
		messageChan: make(chan kafka.Message),
	}, nil
}

// Messages returns the channel the consumer loop feeds. The channel is closed
// when the loop stops.
func (c *Consumer) Messages() <-chan kafka.Message {
	return c.messageChan
}

// CommitOffset acknowledges a fully processed event.
func (c *Consumer) CommitOffset(ctx context.Context, msg kafka.Message) error {
	log.Printf("Committing offset for topic=%s, partition=%d, offset=%d", msg.Topic, msg.Partition, msg.Offset)
	return c.reader.CommitMessages(ctx, msg)
}

// Start begins the consumption loop in its own goroutine.
func (c *Consumer) Start(ctx context.Context) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(c.messageChan)

		log.Println("Starting highlight-event consumer loop...")

		for {
			select {
			case <-ctx.Done():
				log.Println("Context canceled, stopping consumer loop.")
				return
			case <-c.doneChan:
				log.Println("Shutdown signal received, stopping consumer loop.")
				return
			default:
				msg, err := c.reader.ReadMessage(ctx)
				if err != nil {
					log.Printf("Error reading message: %v", err)
					if err.Error() == "kafka: reader closed" {
						return
					}
					// Back off to avoid a tight error loop.
					time.Sleep(1 * time.Second)
					continue
				}

				select {
				case c.messageChan <- msg:
				case <-ctx.Done():
					log.Println("Context canceled, stopping consumer before sending message.")
					return
				case <-c.doneChan:
					log.Println("Shutdown signal received, stopping consumer before sending message.")
					return
				}
			}
		}
	}()
}

// Stop gracefully shuts down the consumer.
func (c *Consumer) Stop() {
	close(c.doneChan)
	c.wg.Wait()
	if err := c.reader.Close(); err != nil {
		log.Printf("Failed to close Kafka reader: %v", err)
	}
	log.Println("Consumer stopped gracefully.")
}
