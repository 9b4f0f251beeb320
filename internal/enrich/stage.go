// Package enrich provides a small, generic pipeline for preparing records
// before they are persisted. Independent preparation steps run in parallel
// within a stage, and stages execute sequentially so later steps can rely on
// earlier results.
package enrich

import (
	"context"
)

// Step is a single preparation operation that mutates the given record.
// Implementations should be safe to run concurrently with other steps in the
// same stage operating on the same record. If a step fails it should return
// an error; the pipeline logs the error and continues.
// The context can be used to observe cancellation or timeouts.
//
// The record pointer allows steps to fill in fields in-place, accumulating
// data over the pipeline run.
//
// Example:
//
//	func addAddress(ctx context.Context, l *models.Location) error { l.Address = "..."; return nil }
type Step[T any] func(ctx context.Context, record *T) error

// Stage groups steps that are safe to execute in parallel for a single
// record. All steps in a stage are started together, and the pipeline waits
// for them to complete before moving to the next stage.
//
// Note: Step functions must coordinate on shared fields if they might write
// to the same location concurrently.
type Stage[T any] struct {
	steps []Step[T]
}

// NewStage constructs a Stage from the provided steps.
// Steps in a stage are executed concurrently for each record.
func NewStage[T any](steps ...Step[T]) Stage[T] {
	return Stage[T]{steps: steps}
}
