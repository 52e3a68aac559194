package bulkcopy

import (
	"github.com/hupe1980/optigo/indexmap"
	"github.com/hupe1980/optigo/model"
)

// Options configures a bulk copy.
type Options struct {
	// SkipNames excludes the model, variable, and constraint name
	// attributes from the copy. Used when attaching a solver, since names
	// live only in the model cache.
	SkipNames bool
}

// Destination is the write side of a copy: any model store or solver
// adapter.
type Destination interface {
	model.Writer
}

// Allocator is the optional two-phase protocol for destinations that must
// know the problem size up front. The first pass only reserves slots and
// returns placeholder indices; the second pass populates values through
// those indices.
type Allocator interface {
	// AllocateVariables reserves n variable slots, returning their
	// placeholder indices in creation order.
	AllocateVariables(n int) ([]model.VariableIndex, error)

	// AllocateConstraints reserves count constraint slots of kind,
	// returning their placeholder indices in creation order.
	AllocateConstraints(kind model.ConstraintKind, count int) ([]model.ConstraintIndex, error)

	// LoadConstraint populates a reserved constraint slot. f is expressed
	// over the destination's placeholder variable indices.
	LoadConstraint(ci model.ConstraintIndex, f model.Function, s model.Set) error
}

// Copy transfers the whole model in src into dst and returns the resulting
// source-to-destination index correspondence. dst should be empty.
//
// The copy fails immediately, leaving dst partially populated, when dst
// declares it does not support an encountered constraint kind
// (UnsupportedConstraintError) or attribute (UnsupportedAttributeError).
func Copy(dst Destination, src model.Reader, optFns ...func(*Options)) (*indexmap.Map, error) {
	var opts Options
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}

	if alloc, ok := dst.(Allocator); ok {
		return allocateLoad(dst, alloc, src, opts)
	}

	return direct(dst, src, opts)
}

func direct(dst Destination, src model.Reader, opts Options) (*indexmap.Map, error) {
	m := indexmap.New()

	srcVars := src.ListVariables()
	dstVars, err := dst.AddVariables(len(srcVars))
	if err != nil {
		return nil, err
	}
	for i, srcVi := range srcVars {
		m.InsertVariable(srcVi, dstVars[i])
	}

	if err := copyModelAttributes(dst, src, opts); err != nil {
		return nil, err
	}
	if err := copyVariableNames(dst, src, m, srcVars, opts); err != nil {
		return nil, err
	}

	for _, kind := range src.ListConstraintKinds() {
		if !dst.SupportsConstraint(kind) {
			return nil, &model.UnsupportedConstraintError{Kind: kind}
		}
		for _, srcCi := range src.ListConstraints(kind) {
			f, s, err := constraintData(src, srcCi, m)
			if err != nil {
				return nil, err
			}

			dstCi, err := dst.AddConstraint(f, s)
			if err != nil {
				return nil, err
			}
			m.InsertConstraint(srcCi, dstCi)

			if err := copyConstraintName(dst, src, srcCi, dstCi, opts); err != nil {
				return nil, err
			}
		}
	}

	if err := copyObjective(dst, src, m); err != nil {
		return nil, err
	}

	return m, nil
}

func allocateLoad(dst Destination, alloc Allocator, src model.Reader, opts Options) (*indexmap.Map, error) {
	m := indexmap.New()

	// Phase one: reserve every slot so the destination knows the problem
	// size before any value is loaded.
	srcVars := src.ListVariables()
	dstVars, err := alloc.AllocateVariables(len(srcVars))
	if err != nil {
		return nil, err
	}
	for i, srcVi := range srcVars {
		m.InsertVariable(srcVi, dstVars[i])
	}

	kinds := src.ListConstraintKinds()
	for _, kind := range kinds {
		if !dst.SupportsConstraint(kind) {
			return nil, &model.UnsupportedConstraintError{Kind: kind}
		}

		srcCis := src.ListConstraints(kind)
		dstCis, err := alloc.AllocateConstraints(kind, len(srcCis))
		if err != nil {
			return nil, err
		}
		for i, srcCi := range srcCis {
			m.InsertConstraint(srcCi, dstCis[i])
		}
	}

	// Phase two: populate values through the placeholder indices.
	if err := copyModelAttributes(dst, src, opts); err != nil {
		return nil, err
	}
	if err := copyVariableNames(dst, src, m, srcVars, opts); err != nil {
		return nil, err
	}

	for _, kind := range kinds {
		for _, srcCi := range src.ListConstraints(kind) {
			f, s, err := constraintData(src, srcCi, m)
			if err != nil {
				return nil, err
			}

			dstCi, _ := m.SolverConstraint(srcCi)
			if err := alloc.LoadConstraint(dstCi, f, s); err != nil {
				return nil, err
			}

			if err := copyConstraintName(dst, src, srcCi, dstCi, opts); err != nil {
				return nil, err
			}
		}
	}

	if err := copyObjective(dst, src, m); err != nil {
		return nil, err
	}

	return m, nil
}

// constraintData reads a constraint's function and set from src, with the
// function rewritten into destination space.
func constraintData(src model.Reader, srcCi model.ConstraintIndex, m *indexmap.Map) (model.Function, model.Set, error) {
	f, err := src.ConstraintFunction(srcCi)
	if err != nil {
		return nil, nil, err
	}
	s, err := src.ConstraintSet(srcCi)
	if err != nil {
		return nil, nil, err
	}
	f, err = m.ToSolver(f)
	if err != nil {
		return nil, nil, err
	}
	return f, s, nil
}

func copyModelAttributes(dst Destination, src model.Reader, opts Options) error {
	if src.CanGet(model.ObjectiveSense{}, nil) {
		if !dst.Supports(model.ObjectiveSense{}) {
			return &model.UnsupportedAttributeError{Attr: model.ObjectiveSense{}}
		}
		sense, err := src.Get(model.ObjectiveSense{}, nil)
		if err != nil {
			return err
		}
		if err := dst.Set(model.ObjectiveSense{}, nil, sense); err != nil {
			return err
		}
	}

	if opts.SkipNames {
		return nil
	}
	if !src.CanGet(model.ModelName{}, nil) {
		return nil
	}

	name, err := src.Get(model.ModelName{}, nil)
	if err != nil {
		return err
	}
	if name == "" {
		return nil
	}
	if !dst.Supports(model.ModelName{}) {
		return &model.UnsupportedAttributeError{Attr: model.ModelName{}}
	}

	return dst.Set(model.ModelName{}, nil, name)
}

func copyVariableNames(dst Destination, src model.Reader, m *indexmap.Map, srcVars []model.VariableIndex, opts Options) error {
	if opts.SkipNames {
		return nil
	}

	for _, srcVi := range srcVars {
		if !src.CanGet(model.VariableName{}, srcVi) {
			continue
		}
		name, err := src.Get(model.VariableName{}, srcVi)
		if err != nil {
			return err
		}
		if name == "" {
			continue
		}
		if !dst.Supports(model.VariableName{}) {
			return &model.UnsupportedAttributeError{Attr: model.VariableName{}}
		}

		dstVi, _ := m.SolverVariable(srcVi)
		if err := dst.Set(model.VariableName{}, dstVi, name); err != nil {
			return err
		}
	}

	return nil
}

func copyConstraintName(dst Destination, src model.Reader, srcCi, dstCi model.ConstraintIndex, opts Options) error {
	if opts.SkipNames || !src.CanGet(model.ConstraintName{}, srcCi) {
		return nil
	}

	name, err := src.Get(model.ConstraintName{}, srcCi)
	if err != nil {
		return err
	}
	if name == "" {
		return nil
	}
	if !dst.Supports(model.ConstraintName{}) {
		return &model.UnsupportedAttributeError{Attr: model.ConstraintName{}}
	}

	return dst.Set(model.ConstraintName{}, dstCi, name)
}

func copyObjective(dst Destination, src model.Reader, m *indexmap.Map) error {
	if !src.CanGet(model.ObjectiveFunction{}, nil) {
		return nil
	}

	value, err := src.Get(model.ObjectiveFunction{}, nil)
	if err != nil {
		return err
	}
	f, ok := value.(model.Function)
	if !ok {
		return &model.UnsupportedAttributeError{Attr: model.ObjectiveFunction{}}
	}
	if !dst.Supports(model.ObjectiveFunction{}) {
		return &model.UnsupportedAttributeError{Attr: model.ObjectiveFunction{}}
	}

	f, err = m.ToSolver(f)
	if err != nil {
		return err
	}

	return dst.Set(model.ObjectiveFunction{}, nil, f)
}
