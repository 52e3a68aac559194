package testutil

import (
	"fmt"

	"github.com/hupe1980/optigo/model"
)

// AllocateOptimizer is a mock Optimizer that requires the two-phase
// allocate-then-load bulk copy: slots are reserved up front and values
// loaded through the placeholder indices afterward.
type AllocateOptimizer struct {
	*Optimizer

	pending map[model.ConstraintKind]int64
}

// NewAllocate creates a mock Optimizer implementing bulkcopy.Allocator.
func NewAllocate(optFns ...func(*Options)) *AllocateOptimizer {
	return &AllocateOptimizer{
		Optimizer: New(optFns...),
		pending:   make(map[model.ConstraintKind]int64),
	}
}

// Empty implements model.Writer.
func (a *AllocateOptimizer) Empty() {
	a.Optimizer.Empty()
	a.pending = make(map[model.ConstraintKind]int64)
}

// AllocateVariables implements bulkcopy.Allocator. Variable slots carry no
// deferred values, so reservation and addition coincide.
func (a *AllocateOptimizer) AllocateVariables(n int) ([]model.VariableIndex, error) {
	return a.AddVariables(n)
}

// AllocateConstraints implements bulkcopy.Allocator. It hands out the
// indices the load phase will produce, without storing anything yet.
func (a *AllocateOptimizer) AllocateConstraints(kind model.ConstraintKind, count int) ([]model.ConstraintIndex, error) {
	if a.unsupportedKinds[kind] {
		return nil, &model.UnsupportedConstraintError{Kind: kind}
	}

	next := a.pending[kind]
	out := make([]model.ConstraintIndex, count)
	for i := range out {
		out[i] = a.maskConstraint(model.ConstraintIndex{Kind: kind, Value: next + int64(i)})
	}
	a.pending[kind] = next + int64(count)

	return out, nil
}

// LoadConstraint implements bulkcopy.Allocator. The backing store assigns
// per-kind sequential values, so loading in allocation order lands each
// constraint on its reserved index; any divergence is a protocol bug.
func (a *AllocateOptimizer) LoadConstraint(ci model.ConstraintIndex, f model.Function, s model.Set) error {
	got, err := a.AddConstraint(f, s)
	if err != nil {
		return err
	}
	if got != ci {
		return fmt.Errorf("testutil: allocation mismatch: loaded %v into slot %v", got, ci)
	}
	return nil
}
