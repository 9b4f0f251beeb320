package enrich

import (
	"context"
	"log"
	"sync"
)

// Pipeline coordinates the execution of a sequence of stages for records
// flowing through a channel. For each incoming record, steps within the same
// stage run in parallel, and stages themselves run sequentially. Step errors
// are logged and do not stop processing of the current record.
//
// Pipeline is generic over the record type T.
type Pipeline[T any] struct {
	stages []Stage[T]
}

// NewPipeline constructs a Pipeline from the provided stages. Stages will be
// applied to each record in order.
func NewPipeline[T any](stages ...Stage[T]) *Pipeline[T] {
	return &Pipeline[T]{stages: stages}
}

// Process consumes records from the input channel and returns a channel that
// emits the same records once all stages have been applied. For each record:
//   - All steps in a stage are started concurrently and must complete before
//     the next stage runs (a stage barrier).
//   - Errors returned by steps are logged and ignored so the pipeline can
//     continue.
//   - The provided context can be observed by steps for cancellation; the
//     pipeline itself keeps running until the input channel is closed.
//
// The output channel is closed after the last record has been emitted.
func (p *Pipeline[T]) Process(ctx context.Context, in <-chan *T) <-chan *T {
	out := make(chan *T)
	go func() {
		defer close(out)

		for record := range in {
			// Each stage runs its steps in their own goroutines.
			for _, stage := range p.stages {
				var wg sync.WaitGroup
				for _, step := range stage.steps {
					wg.Add(1)
					go func(step Step[T]) {
						defer wg.Done()
						if err := step(ctx, record); err != nil {
							log.Printf("Step failed: %v", err)
						}
					}(step)
				}
				wg.Wait() // stage barrier before the next stage starts
			}
			out <- record
		}
	}()
	return out
}
