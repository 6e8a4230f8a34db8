package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Scoped to one candidate.
	ErrResolution   = errors.New("waypoint could not be resolved")
	ErrCostProvider = errors.New("route cost unavailable")
	ErrTimeout      = errors.New("planning timed out")

	// Scoped to one request.
	ErrMalformedRequest  = errors.New("malformed planning request")
	ErrSelectionNotFound = errors.New("selected route not found")
	ErrPlanNotFound      = errors.New("plan not found")
)

// FailureKind tags why a candidate has no computed schedule.
type FailureKind string

const (
	FailureNone         FailureKind = ""
	FailureResolution   FailureKind = "resolution"
	FailureCostProvider FailureKind = "cost_provider"
	FailureTimeout      FailureKind = "timeout"
)

// Err maps the kind back to its sentinel error.
func (k FailureKind) Err() error {
	switch k {
	case FailureResolution:
		return ErrResolution
	case FailureCostProvider:
		return ErrCostProvider
	case FailureTimeout:
		return ErrTimeout
	default:
		return nil
	}
}

// Retryable reports whether asking again may succeed.
// A bad address stays bad; provider and timeout failures may be transient.
func (k FailureKind) Retryable() bool {
	return k == FailureCostProvider || k == FailureTimeout
}

// RequestError collects every problem found while validating a planning request.
type RequestError struct {
	Problems []string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMalformedRequest, strings.Join(e.Problems, "; "))
}

func (e *RequestError) Unwrap() error { return ErrMalformedRequest }

func (e *RequestError) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

// SelectionError is returned when an index does not address a candidate.
type SelectionError struct {
	Index int
	Size  int
}

func (e *SelectionError) Error() string {
	if e.Size == 0 {
		return fmt.Sprintf("%s: index %d requested but no routes have been planned", ErrSelectionNotFound, e.Index)
	}
	return fmt.Sprintf("%s: index %d outside [0, %d)", ErrSelectionNotFound, e.Index, e.Size)
}

func (e *SelectionError) Unwrap() error { return ErrSelectionNotFound }
