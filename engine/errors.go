package engine

import (
	"errors"
	"fmt"
)

// ============================================================================
// ERRORS: Validation, render and empty-dataset failures
// ============================================================================
// All three are returned, never panicked. Callers branch with errors.Is
// on the sentinels or errors.As on the concrete types.
// ============================================================================

var (
	ErrValidation   = errors.New("validation failed")
	ErrRender       = errors.New("render failed")
	ErrEmptyDataset = errors.New("empty dataset")
)

// ValidationError reports a request that names a missing column,
// omits a required one, or asks for an unsupported kind.
type ValidationError struct {
	Field  string // "kind", "x", "y", "dataset"
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// RenderError wraps whatever went wrong while drawing a chart.
type RenderError struct {
	Kind   ChartKind
	Column string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("cannot render %s of %q: %v", e.Kind, e.Column, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

func (e *RenderError) Is(target error) bool { return target == ErrRender }

// EmptyDatasetError is returned when a dashboard has no columns to chart.
type EmptyDatasetError struct{}

func (e *EmptyDatasetError) Error() string {
	return "no data available for visualization: dataset has no columns"
}

func (e *EmptyDatasetError) Is(target error) bool { return target == ErrEmptyDataset }
