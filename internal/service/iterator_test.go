package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"campus/internal/events"
	"campus/internal/models"
	"campus/pkg/geo"
)

// mockMessageIterator feeds a fixed set of messages and records commits.
type mockMessageIterator struct {
	messages  chan kafka.Message
	committed []kafka.Message
}

func newMockMessageIterator(payloads ...[]byte) *mockMessageIterator {
	ch := make(chan kafka.Message, len(payloads))
	for i, p := range payloads {
		ch <- kafka.Message{Offset: int64(i), Value: p}
	}
	close(ch)
	return &mockMessageIterator{messages: ch}
}

func (m *mockMessageIterator) Messages() <-chan kafka.Message {
	return m.messages
}

func (m *mockMessageIterator) CommitOffset(_ context.Context, msg kafka.Message) error {
	m.committed = append(m.committed, msg)
	return nil
}

func highlightPayload(t *testing.T, name string) []byte {
	t.Helper()
	data, err := json.Marshal(events.HighlightEvent{Name: name, Zoom: 18, At: time.Now()})
	if err != nil {
		t.Fatalf("failed to marshal event: %v", err)
	}
	return data
}

func TestIteratorObjects(t *testing.T) {
	known := map[string]*models.Location{
		"Library":   {Name: "Library", Point: geo.Point{Lat: -0.3925, Lon: 36.9635}, Type: "Academic", Radius: 70},
		"Main Gate": {Name: "Main Gate", Point: geo.Point{Lat: -0.3918, Lon: 36.9630}, Type: "Entry", Radius: 50},
	}

	mock := newMockMessageIterator(
		highlightPayload(t, "Library"),
		[]byte("not json"),               // skipped: undecodable
		highlightPayload(t, "Cafeteria"), // skipped: loader fails
		highlightPayload(t, "Main Gate"),
	)

	it := NewIterator(mock, func(_ context.Context, name string) (*models.Location, error) {
		loc, ok := known[name]
		if !ok {
			return nil, fmt.Errorf("no object for %q", name)
		}
		return loc, nil
	})

	var got []string
	for obj := range it.Objects(context.Background()) {
		got = append(got, obj.Data.Name)
		if obj.Event.Name != obj.Data.Name {
			t.Errorf("event name %q does not match loaded record %q", obj.Event.Name, obj.Data.Name)
		}
	}

	want := []string{"Library", "Main Gate"}
	if len(got) != len(want) {
		t.Fatalf("loaded %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("loaded %v; want %v", got, want)
		}
	}

	// Only successful loads commit their offsets.
	if len(mock.committed) != 2 {
		t.Fatalf("committed %d offsets; want 2", len(mock.committed))
	}
}

// A caller that walks away must not strand the iterator goroutine: once the
// context is canceled the output channel closes even with messages pending
// and nobody receiving.
func TestIteratorObjectsStopsOnCancel(t *testing.T) {
	// The message channel stays open, so only cancellation can end the loop.
	ch := make(chan kafka.Message, 2)
	ch <- kafka.Message{Offset: 0, Value: highlightPayload(t, "Library")}
	ch <- kafka.Message{Offset: 1, Value: highlightPayload(t, "Main Gate")}
	mock := &mockMessageIterator{messages: ch}

	it := NewIterator(mock, func(_ context.Context, name string) (*models.Location, error) {
		return &models.Location{Name: name}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	out := it.Objects(ctx)
	cancel()

	// An in-flight object may still slip out; the channel must close after.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-out:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("Objects channel did not close after cancellation")
		}
	}
}
