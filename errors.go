package optigo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/optigo/model"
)

var (
	// ErrNonEmptyOptimizer is returned when a solver handed to Reset or
	// NewWithOptimizer already holds model content.
	ErrNonEmptyOptimizer = errors.New("optimizer must be empty")

	// ErrNonEmptyCache is returned when NewWithOptimizer is given a model
	// cache that already holds model content.
	ErrNonEmptyCache = errors.New("model cache must be empty")
)

// InvalidStateError indicates an operation was attempted in a state that
// forbids it, for example AttachOptimizer while not EmptyOptimizer or
// Optimize while NoOptimizer. This is a programmer error and is never
// recovered automatically.
type InvalidStateError struct {
	Op    string
	State State
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s in state %s", e.Op, e.State)
}

// translateIndexError normalizes a failed index translation into the
// model error vocabulary. A cache-space index with no solver-space entry
// while attached means the caller passed a deleted or foreign index.
func translateIndexError(index model.Index) error {
	return &model.InvalidIndexError{Index: index}
}
