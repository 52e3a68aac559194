package testutil

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/optigo/cache"
	"github.com/hupe1980/optigo/model"
)

// Options configures the scripted behavior of a mock Optimizer.
type Options struct {
	// Mask is xored into every index value crossing the mock's boundary.
	// A non-zero mask makes the mock's index space disjoint from the
	// caller's, so index-space confusion cannot pass unnoticed.
	Mask int64

	// RejectAddVariable makes AddVariable and AddVariables fail with a
	// NotAllowedError.
	RejectAddVariable bool

	// RejectDelete makes Delete fail with a NotAllowedError.
	RejectDelete bool

	// RejectModify makes Modify and ModifyObjective fail with a
	// NotAllowedError.
	RejectModify bool

	// UnsupportedKinds lists constraint kinds the mock structurally
	// rejects with an UnsupportedConstraintError.
	UnsupportedKinds []model.ConstraintKind

	// UnsupportedAttributes lists attributes the mock structurally rejects
	// with an UnsupportedAttributeError.
	UnsupportedAttributes []model.Attribute
}

// DefaultMask is the index mask applied when none is configured. The high
// bit pattern keeps masked values far away from small sequential indices.
const DefaultMask int64 = 0x5a5a5a5a

// Optimizer is a scriptable in-memory solver adapter for tests. It stores
// the model in a cache.Model and masks every index at the boundary.
//
// Optimize records a deterministic solution: variable primals are the
// internal index value plus one, and the objective value is the stored
// objective evaluated at those primals.
type Optimizer struct {
	store *cache.Model
	opts  Options

	unsupportedKinds map[model.ConstraintKind]bool
	unsupportedAttrs map[string]bool

	solved bool
}

// New creates a mock Optimizer. With no options the mock accepts
// everything and masks indices with DefaultMask.
func New(optFns ...func(*Options)) *Optimizer {
	opts := Options{Mask: DefaultMask}
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}

	o := &Optimizer{
		store:            cache.New(),
		opts:             opts,
		unsupportedKinds: make(map[model.ConstraintKind]bool),
		unsupportedAttrs: make(map[string]bool),
	}
	for _, kind := range opts.UnsupportedKinds {
		o.unsupportedKinds[kind] = true
	}
	for _, attr := range opts.UnsupportedAttributes {
		o.unsupportedAttrs[attr.Name()] = true
	}

	return o
}

// Solved reports whether Optimize has run since the last Empty.
func (o *Optimizer) Solved() bool { return o.solved }

func (o *Optimizer) maskVariable(vi model.VariableIndex) model.VariableIndex {
	return model.VariableIndex(int64(vi) ^ o.opts.Mask)
}

func (o *Optimizer) maskConstraint(ci model.ConstraintIndex) model.ConstraintIndex {
	return model.ConstraintIndex{Kind: ci.Kind, Value: ci.Value ^ o.opts.Mask}
}

// maskFunction rewrites a function between the two index spaces. Masking
// is an involution, so the same helper serves both directions.
func (o *Optimizer) maskFunction(f model.Function) model.Function {
	out, err := model.RemapFunction(f, func(vi model.VariableIndex) (model.VariableIndex, bool) {
		return o.maskVariable(vi), true
	})
	if err != nil {
		// The translate callback never reports false; only an unknown
		// function representation can land here.
		panic(fmt.Sprintf("testutil: maskFunction: %v", err))
	}
	return out
}

// remaskError rewrites the internal index inside an InvalidIndexError back
// to the caller's index space.
func (o *Optimizer) remaskError(err error, external model.Index) error {
	var iie *model.InvalidIndexError
	if errors.As(err, &iie) {
		return &model.InvalidIndexError{Index: external}
	}
	return err
}

// IsEmpty implements model.Reader.
func (o *Optimizer) IsEmpty() bool { return o.store.IsEmpty() && !o.solved }

// Empty implements model.Writer.
func (o *Optimizer) Empty() {
	o.store.Empty()
	o.solved = false
}

// AddVariable implements model.Writer.
func (o *Optimizer) AddVariable() (model.VariableIndex, error) {
	if o.opts.RejectAddVariable {
		return 0, &model.NotAllowedError{Op: "AddVariable"}
	}
	vi, err := o.store.AddVariable()
	if err != nil {
		return 0, err
	}
	return o.maskVariable(vi), nil
}

// AddVariables implements model.Writer.
func (o *Optimizer) AddVariables(n int) ([]model.VariableIndex, error) {
	if o.opts.RejectAddVariable {
		return nil, &model.NotAllowedError{Op: "AddVariables"}
	}
	vis, err := o.store.AddVariables(n)
	if err != nil {
		return nil, err
	}
	out := make([]model.VariableIndex, len(vis))
	for i, vi := range vis {
		out[i] = o.maskVariable(vi)
	}
	return out, nil
}

// AddConstraint implements model.Writer.
func (o *Optimizer) AddConstraint(f model.Function, s model.Set) (model.ConstraintIndex, error) {
	kind := model.KindOf(f, s)
	if o.unsupportedKinds[kind] {
		return model.ConstraintIndex{}, &model.UnsupportedConstraintError{Kind: kind}
	}

	ci, err := o.store.AddConstraint(o.maskFunction(f), s)
	if err != nil {
		return model.ConstraintIndex{}, err
	}

	return o.maskConstraint(ci), nil
}

// Delete implements model.Writer.
func (o *Optimizer) Delete(index model.Index) error {
	if o.opts.RejectDelete {
		return &model.NotAllowedError{Op: "Delete"}
	}

	switch idx := index.(type) {
	case model.VariableIndex:
		if err := o.store.Delete(o.maskVariable(idx)); err != nil {
			return o.remaskError(err, idx)
		}
		return nil
	case model.ConstraintIndex:
		if err := o.store.Delete(o.maskConstraint(idx)); err != nil {
			return o.remaskError(err, idx)
		}
		return nil
	default:
		return &model.InvalidIndexError{Index: index}
	}
}

// Modify implements model.Writer.
func (o *Optimizer) Modify(ci model.ConstraintIndex, change model.Modification) error {
	if o.opts.RejectModify {
		return &model.NotAllowedError{Op: "Modify"}
	}

	internalChange, err := model.RemapModification(change, func(vi model.VariableIndex) (model.VariableIndex, bool) {
		return o.maskVariable(vi), true
	})
	if err != nil {
		return err
	}

	if err := o.store.Modify(o.maskConstraint(ci), internalChange); err != nil {
		return o.remaskError(err, ci)
	}

	return nil
}

// ModifyObjective implements model.Writer.
func (o *Optimizer) ModifyObjective(change model.Modification) error {
	if o.opts.RejectModify {
		return &model.NotAllowedError{Op: "ModifyObjective"}
	}

	internalChange, err := model.RemapModification(change, func(vi model.VariableIndex) (model.VariableIndex, bool) {
		return o.maskVariable(vi), true
	})
	if err != nil {
		return err
	}

	return o.store.ModifyObjective(internalChange)
}

// Set implements model.Writer. Name attributes are structurally
// unsupported: a solver is never asked to track names.
func (o *Optimizer) Set(attr model.Attribute, target model.Index, value any) error {
	if !o.Supports(attr) {
		return &model.UnsupportedAttributeError{Attr: attr}
	}

	internalTarget, err := o.unmaskIndex(target)
	if err != nil {
		return err
	}
	if f, ok := value.(model.Function); ok {
		value = o.maskFunction(f)
	}

	if err := o.store.Set(attr, internalTarget, value); err != nil {
		return o.remaskError(err, target)
	}

	return nil
}

// Get implements model.Reader. Name attributes are structurally
// unsupported, mirroring Set.
func (o *Optimizer) Get(attr model.Attribute, target model.Index) (any, error) {
	if model.IsNameAttribute(attr) {
		return nil, &model.UnsupportedAttributeError{Attr: attr}
	}
	if model.IsResultAttribute(attr) {
		return o.getResult(attr, target)
	}

	internalTarget, err := o.unmaskIndex(target)
	if err != nil {
		return nil, err
	}

	value, err := o.store.Get(attr, internalTarget)
	if err != nil {
		return nil, o.remaskError(err, target)
	}
	if f, ok := value.(model.Function); ok {
		value = o.maskFunction(f)
	}

	return value, nil
}

// CanGet implements model.Reader. Result attributes are answerable only
// after a solve.
func (o *Optimizer) CanGet(attr model.Attribute, target model.Index) bool {
	if model.IsNameAttribute(attr) {
		return false
	}
	if model.IsResultAttribute(attr) {
		return o.solved
	}

	internalTarget, err := o.unmaskIndex(target)
	if err != nil {
		return false
	}

	return o.store.CanGet(attr, internalTarget)
}

// Supports implements model.Writer.
func (o *Optimizer) Supports(attr model.Attribute) bool {
	if model.IsNameAttribute(attr) {
		return false
	}
	if o.unsupportedAttrs[attr.Name()] {
		return false
	}
	return o.store.Supports(attr)
}

// SupportsConstraint implements model.Writer.
func (o *Optimizer) SupportsConstraint(kind model.ConstraintKind) bool {
	return !o.unsupportedKinds[kind]
}

// ListVariables implements model.Reader.
func (o *Optimizer) ListVariables() []model.VariableIndex {
	vis := o.store.ListVariables()
	out := make([]model.VariableIndex, len(vis))
	for i, vi := range vis {
		out[i] = o.maskVariable(vi)
	}
	return out
}

// NumberOfVariables implements model.Reader.
func (o *Optimizer) NumberOfVariables() int { return o.store.NumberOfVariables() }

// ListConstraintKinds implements model.Reader.
func (o *Optimizer) ListConstraintKinds() []model.ConstraintKind {
	return o.store.ListConstraintKinds()
}

// ListConstraints implements model.Reader.
func (o *Optimizer) ListConstraints(kind model.ConstraintKind) []model.ConstraintIndex {
	cis := o.store.ListConstraints(kind)
	out := make([]model.ConstraintIndex, len(cis))
	for i, ci := range cis {
		out[i] = o.maskConstraint(ci)
	}
	return out
}

// NumberOfConstraints implements model.Reader.
func (o *Optimizer) NumberOfConstraints(kind model.ConstraintKind) int {
	return o.store.NumberOfConstraints(kind)
}

// ConstraintFunction implements model.Reader.
func (o *Optimizer) ConstraintFunction(ci model.ConstraintIndex) (model.Function, error) {
	f, err := o.store.ConstraintFunction(o.maskConstraint(ci))
	if err != nil {
		return nil, o.remaskError(err, ci)
	}
	return o.maskFunction(f), nil
}

// ConstraintSet implements model.Reader.
func (o *Optimizer) ConstraintSet(ci model.ConstraintIndex) (model.Set, error) {
	s, err := o.store.ConstraintSet(o.maskConstraint(ci))
	if err != nil {
		return nil, o.remaskError(err, ci)
	}
	return s, nil
}

// Optimize records a deterministic solution: each variable's primal is its
// internal index value plus one, and the objective value is the stored
// objective evaluated at those primals.
func (o *Optimizer) Optimize(ctx context.Context) error {
	o.solved = true
	return nil
}

func (o *Optimizer) getResult(attr model.Attribute, target model.Index) (any, error) {
	if !o.solved {
		return nil, &model.NotAllowedError{Op: "Get " + attr.Name()}
	}

	switch attr.(type) {
	case model.TerminationStatus:
		return model.TerminationOptimal, nil
	case model.ResultCount:
		return 1, nil
	case model.PrimalStatus:
		return model.ResultFeasiblePoint, nil
	case model.DualStatus:
		return model.ResultNoSolution, nil
	case model.VariablePrimal:
		vi, ok := target.(model.VariableIndex)
		if !ok {
			return nil, &model.InvalidIndexError{Index: target}
		}
		return o.primalValue(o.maskVariable(vi))
	case model.ObjectiveValue:
		value, err := o.store.Get(model.ObjectiveFunction{}, nil)
		if err != nil {
			return nil, err
		}
		return o.evaluate(value.(model.Function))
	default:
		return nil, &model.UnsupportedAttributeError{Attr: attr}
	}
}

// primalValue returns the stubbed primal of an internal variable index.
func (o *Optimizer) primalValue(internal model.VariableIndex) (float64, error) {
	for _, vi := range o.store.ListVariables() {
		if vi == internal {
			return float64(int64(internal)) + 1, nil
		}
	}
	return 0, &model.InvalidIndexError{Index: o.maskVariable(internal)}
}

// evaluate computes f at the stubbed primal point.
func (o *Optimizer) evaluate(f model.Function) (float64, error) {
	switch fn := f.(type) {
	case model.Variable:
		return o.primalValue(fn.Index)
	case model.ScalarAffine:
		total := fn.Constant
		for _, t := range fn.Terms {
			v, err := o.primalValue(t.Variable)
			if err != nil {
				return 0, err
			}
			total += t.Coefficient * v
		}
		return total, nil
	case model.ScalarQuadratic:
		total := fn.Constant
		for _, t := range fn.AffineTerms {
			v, err := o.primalValue(t.Variable)
			if err != nil {
				return 0, err
			}
			total += t.Coefficient * v
		}
		for _, t := range fn.QuadraticTerms {
			v1, err := o.primalValue(t.Variable1)
			if err != nil {
				return 0, err
			}
			v2, err := o.primalValue(t.Variable2)
			if err != nil {
				return 0, err
			}
			total += t.Coefficient * v1 * v2
		}
		return total, nil
	default:
		return 0, &model.NotAllowedError{Op: "evaluate"}
	}
}

func (o *Optimizer) unmaskIndex(target model.Index) (model.Index, error) {
	switch idx := target.(type) {
	case nil:
		return nil, nil
	case model.VariableIndex:
		return o.maskVariable(idx), nil
	case model.ConstraintIndex:
		return o.maskConstraint(idx), nil
	default:
		return nil, &model.InvalidIndexError{Index: target}
	}
}
