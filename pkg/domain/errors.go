package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput is returned when choices, probabilities or definitions are malformed.
var ErrInvalidInput = errors.New("invalid input")

// ErrUnsupportedDepth is returned when a renderer cannot lay out a tree this deep.
var ErrUnsupportedDepth = errors.New("unsupported depth")

// ErrExperimentNotFound is returned when an experiment name cannot be found in a store.
var ErrExperimentNotFound = errors.New("experiment not found")

// Violation is a single structural problem found while validating an experiment.
type Violation struct {
	Path   string `json:"path"` // e.g. "Red > Blue"; empty for the first level
	Reason string `json:"reason"`
}

func (v Violation) String() string {
	if v.Path == "" {
		return "first level: " + v.Reason
	}
	return fmt.Sprintf("%q: %s", v.Path, v.Reason)
}

// ValidationError collects every violation found in an experiment.
// It matches ErrInvalidInput with errors.Is.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 1 {
		return "invalid experiment: " + e.Violations[0].String()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "invalid experiment: %d violations:\n", len(e.Violations))
	for i, v := range e.Violations {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, v)
	}
	return sb.String()
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Violations returns the individual violations if err carries a ValidationError.
func Violations(err error) []Violation {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Violations
	}
	return nil
}
