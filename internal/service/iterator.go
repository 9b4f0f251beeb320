// Package service provides the iterator that turns the highlight event stream
// into loaded location records: it consumes messages from a message source
// (Kafka via pkg/kafkaclient), decodes each as a HighlightEvent, and loads the
// referenced object through a pluggable LoaderFunc.
package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"

	"campus/internal/events"
)

// MessageIterator is the contract for consuming messages from the event
// topic. Implementations own the lifecycle of the underlying consumer.
type MessageIterator interface {
	// Messages returns a receive-only channel of Kafka messages, closed by
	// the implementation when the consumer stops.
	Messages() <-chan kafka.Message

	// CommitOffset acknowledges that a message has been fully processed.
	CommitOffset(ctx context.Context, msg kafka.Message) error
}

// LoaderFunc loads and decodes the object a highlight event refers to, keyed
// by the highlighted location's name. Implementations should be read-only and
// must honor the context for cancellation and timeouts.
type LoaderFunc[T any] func(ctx context.Context, name string) (T, error)

// FetchedObject pairs loaded data with the highlight event that referenced it.
type FetchedObject[T any] struct {
	Data  T
	Event events.HighlightEvent
}

// Iterator consumes messages from a MessageIterator, decodes each as a
// HighlightEvent, loads the referenced object, and yields FetchedObject items
// on a channel. It does not manage the lifecycle of the message source;
// callers start and stop their consumer around it.
type Iterator[T any] struct {
	msgIterator MessageIterator
	loader      LoaderFunc[T]
}

// NewIterator constructs an Iterator for the given message source and loader.
func NewIterator[T any](iterator MessageIterator, loader LoaderFunc[T]) *Iterator[T] {
	return &Iterator[T]{
		msgIterator: iterator,
		loader:      loader,
	}
}

// Objects streams loaded objects. Decode and load errors are logged and the
// message is skipped; the offset is committed only after a successful load.
// The output channel closes when the underlying Messages() channel closes or
// the context is canceled, so an early-exiting caller never strands the loop.
func (it *Iterator[T]) Objects(ctx context.Context) <-chan *FetchedObject[T] {
	out := make(chan *FetchedObject[T])
	go func() {
		defer close(out)

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-it.msgIterator.Messages():
				if !ok {
					return
				}

				var event events.HighlightEvent
				if err := json.Unmarshal(msg.Value, &event); err != nil {
					log.Printf("Error unmarshalling highlight event: %v", err)
					continue
				}

				data, err := it.loader(ctx, event.Name)
				if err != nil {
					log.Printf("Error loading object for %q: %v", event.Name, err)
					continue
				}

				select {
				case out <- &FetchedObject[T]{Data: data, Event: event}:
				case <-ctx.Done():
					return
				}

				if err := it.msgIterator.CommitOffset(ctx, msg); err != nil {
					log.Printf("Failed to commit offset: %v", err)
				}
			}
		}
	}()
	return out
}
