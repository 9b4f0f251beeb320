package kafkaclient

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
)

// mockReader simulates the kafka-go Reader for unit testing.
type mockReader struct {
	messages   chan kafka.Message
	commitChan chan kafka.Message
	wg         sync.WaitGroup
	isClosed   bool
}

func newMockReader() *mockReader {
	return &mockReader{
		messages:   make(chan kafka.Message, 10),
		commitChan: make(chan kafka.Message, 10),
	}
}

// startProducing simulates events arriving on the topic.
func (mr *mockReader) startProducing(count int) {
	mr.wg.Add(1)
	go func() {
		defer mr.wg.Done()
		defer close(mr.messages)

		for i := 0; i < count; i++ {
			mr.messages <- kafka.Message{
				Topic:     "campus.highlights",
				Partition: 0,
				Offset:    int64(i),
				Value:     []byte(fmt.Sprintf(`{"name":"location-%d"}`, i)),
			}
			time.Sleep(10 * time.Millisecond)
		}
	}()
}

func (mr *mockReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if mr.isClosed {
		return kafka.Message{}, fmt.Errorf("kafka: reader closed")
	}
	select {
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	case msg, ok := <-mr.messages:
		if !ok {
			return kafka.Message{}, fmt.Errorf("kafka: reader closed")
		}
		return msg, nil
	}
}

func (mr *mockReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	if mr.isClosed {
		return fmt.Errorf("kafka: reader closed")
	}
	for _, msg := range msgs {
		mr.commitChan <- msg
	}
	return nil
}

func (mr *mockReader) Close() error {
	mr.isClosed = true
	close(mr.commitChan)
	return nil
}

// TestConsumer_WithMock tests the full consumption flow using a mock reader.
func TestConsumer_WithMock(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	mock := newMockReader()
	consumer := &Consumer{
		reader:      mock,
		doneChan:    make(chan struct{}),
		messageChan: make(chan kafka.Message),
	}

	const expectedMessages = 3
	mock.startProducing(expectedMessages)
	consumer.Start(ctx)

	received := 0
	for msg := range consumer.Messages() {
		wantValue := fmt.Sprintf(`{"name":"location-%d"}`, received)
		if string(msg.Value) != wantValue {
			t.Errorf("message value = %q; want %q", string(msg.Value), wantValue)
		}
		if err := consumer.CommitOffset(ctx, msg); err != nil {
			t.Errorf("CommitOffset() failed: %v", err)
		}
		received++
	}

	if received != expectedMessages {
		t.Errorf("received %d messages; want %d", received, expectedMessages)
	}

	consumer.Stop()

	committed := 0
	for range mock.commitChan {
		committed++
	}
	if committed != expectedMessages {
		t.Errorf("committed %d messages; want %d", committed, expectedMessages)
	}
}

// TestConsumer_GracefulShutdown verifies the consumer stops cleanly while the
// stream is still active.
func TestConsumer_GracefulShutdown(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	mock := newMockReader()
	consumer := &Consumer{
		reader:      mock,
		doneChan:    make(chan struct{}),
		messageChan: make(chan kafka.Message),
	}

	mock.startProducing(100)
	consumer.Start(ctx)

	consumed := 0
	for i := 0; i < 5; i++ {
		select {
		case <-consumer.Messages():
			consumed++
		case <-ctx.Done():
			t.Fatal("context canceled unexpectedly")
		case <-time.After(500 * time.Millisecond):
			t.Fatal("timed out waiting for a message")
		}
	}

	consumer.Stop()

	remaining := 0
	for range consumer.Messages() {
		remaining++
	}
	if remaining > 0 {
		t.Errorf("found %d messages after Stop(); want 0", remaining)
	}

	if consumed < 5 {
		t.Errorf("consumed %d messages before stopping; want at least 5", consumed)
	}
	if !mock.isClosed {
		t.Error("expected the reader to be closed after Stop()")
	}
}
