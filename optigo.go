package optigo

import (
	"context"
	"time"

	"github.com/hupe1980/optigo/indexmap"
	"github.com/hupe1980/optigo/model"
)

// ModelLike is the contract of the model cache collaborator: a fully
// capable in-memory store that is the authoritative source of truth for
// the model, its names, and the index space callers see.
type ModelLike interface {
	model.Reader
	model.Writer

	// VariableByName returns the variable with the given name. Lookup
	// fails when no variable has the name or when the name is ambiguous.
	VariableByName(name string) (model.VariableIndex, error)

	// ConstraintByName returns the constraint with the given name, across
	// all kinds. Lookup fails when no constraint has the name or when the
	// name is ambiguous.
	ConstraintByName(name string) (model.ConstraintIndex, error)
}

// Optimizer is the contract of a solver adapter. A solver may be
// capability-limited: it signals structural gaps with
// UnsupportedConstraintError/UnsupportedAttributeError and dynamic
// rejections with NotAllowedError. Solvers are never asked to track names.
//
// Solvers that must know the problem size before values are loaded
// additionally implement bulkcopy.Allocator; the attachment protocol
// detects this and uses the two-phase allocate-then-load copy.
type Optimizer interface {
	model.Reader
	model.Writer

	// Optimize runs the solve. It blocks until the solver finishes;
	// cancellation, if any, is the solver's concern.
	Optimize(ctx context.Context) error
}

// CachingOptimizer presents an always-incrementally-mutable optimization
// model backed by a model cache, optionally synchronized with an attached
// solver. Every mutating operation is forwarded to the solver first (with
// indices translated to solver space) and then applied to the cache, so
// callers only ever observe cache-space indices.
//
// A CachingOptimizer is not safe for concurrent use; callers must
// serialize access externally.
type CachingOptimizer struct {
	cache   ModelLike
	solver  Optimizer
	state   State
	mode    Mode
	imap    *indexmap.Map
	logger  *Logger
	metrics MetricsCollector
}

// New creates a CachingOptimizer holding no solver. The model can be built
// up immediately; a solver is supplied later via ResetOptimizer.
func New(cache ModelLike, optFns ...Option) *CachingOptimizer {
	opts := applyOptions(optFns)

	return &CachingOptimizer{
		cache:   cache,
		state:   NoOptimizer,
		mode:    opts.mode,
		imap:    indexmap.New(),
		logger:  opts.logger,
		metrics: opts.metricsCollector,
	}
}

// NewWithOptimizer creates a CachingOptimizer already attached to solver.
// Both cache and solver must be empty; the mode is always Automatic. An
// empty solver is trivially synchronized with an empty cache, so the
// result starts in AttachedOptimizer without a bulk copy.
func NewWithOptimizer(cache ModelLike, solver Optimizer, optFns ...Option) (*CachingOptimizer, error) {
	if !cache.IsEmpty() {
		return nil, ErrNonEmptyCache
	}
	if !solver.IsEmpty() {
		return nil, ErrNonEmptyOptimizer
	}

	co := New(cache, optFns...)
	co.mode = Automatic
	co.solver = solver
	co.state = AttachedOptimizer

	return co, nil
}

// State returns the current synchronization state.
func (co *CachingOptimizer) State() State { return co.state }

// Mode returns the state-transition policy.
func (co *CachingOptimizer) Mode() Mode { return co.mode }

// fallback handles a rejection signal from the attached solver. In
// Automatic mode the solver is detached (emptied, translator cleared) and
// the operation continues cache-only; fallback reports true. In Manual
// mode, or for error kinds that are not rejections, fallback reports false
// and the caller must propagate err unchanged.
func (co *CachingOptimizer) fallback(op string, err error) bool {
	if co.mode != Automatic || !model.IsRejection(err) {
		return false
	}

	co.solver.Empty()
	co.imap.Clear()
	co.state = EmptyOptimizer

	co.logger.LogFallback(op, err)
	co.metrics.RecordFallback(op)

	return true
}

// AddVariable adds one variable, returning its cache-space index.
func (co *CachingOptimizer) AddVariable() (model.VariableIndex, error) {
	var solverIdx model.VariableIndex
	forwarded := false

	if co.state == AttachedOptimizer {
		idx, err := co.solver.AddVariable()
		if err != nil {
			if !co.fallback("AddVariable", err) {
				co.metrics.RecordAdd(err)
				return 0, err
			}
		} else {
			solverIdx, forwarded = idx, true
		}
	}

	cacheIdx, err := co.cache.AddVariable()
	if err != nil {
		co.metrics.RecordAdd(err)
		return 0, err
	}

	if forwarded {
		co.imap.InsertVariable(cacheIdx, solverIdx)
	}

	co.metrics.RecordAdd(nil)

	return cacheIdx, nil
}

// AddVariables adds n variables in one batch, returning their cache-space
// indices in creation order.
func (co *CachingOptimizer) AddVariables(n int) ([]model.VariableIndex, error) {
	var solverIdxs []model.VariableIndex

	if co.state == AttachedOptimizer {
		idxs, err := co.solver.AddVariables(n)
		if err != nil {
			if !co.fallback("AddVariables", err) {
				co.metrics.RecordAdd(err)
				return nil, err
			}
		} else {
			solverIdxs = idxs
		}
	}

	cacheIdxs, err := co.cache.AddVariables(n)
	if err != nil {
		co.metrics.RecordAdd(err)
		return nil, err
	}

	for i, solverIdx := range solverIdxs {
		co.imap.InsertVariable(cacheIdxs[i], solverIdx)
	}

	co.metrics.RecordAdd(nil)

	return cacheIdxs, nil
}

// AddConstraint adds the constraint f-in-s, returning its cache-space
// index. f is expressed over cache-space variable indices.
func (co *CachingOptimizer) AddConstraint(f model.Function, s model.Set) (model.ConstraintIndex, error) {
	var solverIdx model.ConstraintIndex
	forwarded := false

	if co.state == AttachedOptimizer {
		solverFn, err := co.imap.ToSolver(f)
		if err != nil {
			co.metrics.RecordAdd(err)
			return model.ConstraintIndex{}, err
		}

		idx, err := co.solver.AddConstraint(solverFn, s)
		if err != nil {
			if !co.fallback("AddConstraint", err) {
				co.metrics.RecordAdd(err)
				return model.ConstraintIndex{}, err
			}
		} else {
			solverIdx, forwarded = idx, true
		}
	}

	cacheIdx, err := co.cache.AddConstraint(f, s)
	if err != nil {
		co.metrics.RecordAdd(err)
		return model.ConstraintIndex{}, err
	}

	if forwarded {
		co.imap.InsertConstraint(cacheIdx, solverIdx)
	}

	co.metrics.RecordAdd(nil)

	return cacheIdx, nil
}

// Delete removes the element identified by index. Deleting a variable also
// deletes the single-variable constraints bound to it, in both the cache
// and an attached solver.
func (co *CachingOptimizer) Delete(index model.Index) error {
	if co.state == AttachedOptimizer {
		switch idx := index.(type) {
		case model.VariableIndex:
			solverIdx, ok := co.imap.SolverVariable(idx)
			if !ok {
				err := translateIndexError(idx)
				co.metrics.RecordDelete(err)
				return err
			}

			if err := co.solver.Delete(solverIdx); err != nil {
				if !co.fallback("Delete", err) {
					co.metrics.RecordDelete(err)
					return err
				}
			} else {
				co.dropVariableConstraints(idx)
				co.imap.DeleteVariable(idx)
			}
		case model.ConstraintIndex:
			solverIdx, ok := co.imap.SolverConstraint(idx)
			if !ok {
				err := translateIndexError(idx)
				co.metrics.RecordDelete(err)
				return err
			}

			if err := co.solver.Delete(solverIdx); err != nil {
				if !co.fallback("Delete", err) {
					co.metrics.RecordDelete(err)
					return err
				}
			} else {
				co.imap.DeleteConstraint(idx)
			}
		default:
			err := translateIndexError(index)
			co.metrics.RecordDelete(err)
			return err
		}
	}

	err := co.cache.Delete(index)
	co.metrics.RecordDelete(err)

	return err
}

// dropVariableConstraints removes translator entries for the
// single-variable constraints bound to vi. Deleting a variable cascades to
// those constraints on both sides, so their correspondence must go too.
func (co *CachingOptimizer) dropVariableConstraints(vi model.VariableIndex) {
	for _, kind := range co.cache.ListConstraintKinds() {
		if kind.Function != model.FunctionVariable {
			continue
		}
		for _, ci := range co.cache.ListConstraints(kind) {
			f, err := co.cache.ConstraintFunction(ci)
			if err != nil {
				continue
			}
			if v, ok := f.(model.Variable); ok && v.Index == vi {
				co.imap.DeleteConstraint(ci)
			}
		}
	}
}

// Modify applies an in-place change to a constraint's function.
func (co *CachingOptimizer) Modify(ci model.ConstraintIndex, change model.Modification) error {
	if co.state == AttachedOptimizer {
		solverIdx, ok := co.imap.SolverConstraint(ci)
		if !ok {
			err := translateIndexError(ci)
			co.metrics.RecordModify(err)
			return err
		}

		solverChange, err := model.RemapModification(change, co.imap.SolverVariable)
		if err != nil {
			co.metrics.RecordModify(err)
			return err
		}

		if err := co.solver.Modify(solverIdx, solverChange); err != nil {
			if !co.fallback("Modify", err) {
				co.metrics.RecordModify(err)
				return err
			}
		}
	}

	err := co.cache.Modify(ci, change)
	co.metrics.RecordModify(err)

	return err
}

// ModifyObjective applies an in-place change to the objective.
func (co *CachingOptimizer) ModifyObjective(change model.Modification) error {
	if co.state == AttachedOptimizer {
		solverChange, err := model.RemapModification(change, co.imap.SolverVariable)
		if err != nil {
			co.metrics.RecordModify(err)
			return err
		}

		if err := co.solver.ModifyObjective(solverChange); err != nil {
			if !co.fallback("ModifyObjective", err) {
				co.metrics.RecordModify(err)
				return err
			}
		}
	}

	err := co.cache.ModifyObjective(change)
	co.metrics.RecordModify(err)

	return err
}

// Set writes an attribute. target is nil for model attributes. Name
// attributes go to the cache only; the solver is never asked to track
// names.
func (co *CachingOptimizer) Set(attr model.Attribute, target model.Index, value any) error {
	if model.IsNameAttribute(attr) {
		err := co.cache.Set(attr, target, value)
		co.metrics.RecordSet(err)
		return err
	}

	if co.state == AttachedOptimizer {
		solverTarget, err := co.toSolverIndex(target)
		if err != nil {
			co.metrics.RecordSet(err)
			return err
		}

		solverValue := value
		if f, ok := value.(model.Function); ok {
			solverValue, err = co.imap.ToSolver(f)
			if err != nil {
				co.metrics.RecordSet(err)
				return err
			}
		}

		if err := co.solver.Set(attr, solverTarget, solverValue); err != nil {
			if !co.fallback("Set", err) {
				co.metrics.RecordSet(err)
				return err
			}
		}
	}

	err := co.cache.Set(attr, target, value)
	co.metrics.RecordSet(err)

	return err
}

// Get reads an attribute. The cache answers whenever it can; only
// cache-unanswerable reads (post-solve results) fall through to an
// attached solver, with any embedded indices remapped back to cache space.
func (co *CachingOptimizer) Get(attr model.Attribute, target model.Index) (any, error) {
	if co.cache.CanGet(attr, target) {
		return co.cache.Get(attr, target)
	}

	if co.state == AttachedOptimizer {
		solverTarget, err := co.toSolverIndex(target)
		if err != nil {
			return nil, err
		}

		if co.solver.CanGet(attr, solverTarget) {
			value, err := co.solver.Get(attr, solverTarget)
			if err != nil {
				return nil, err
			}
			return co.toModelValue(value)
		}
	}

	return nil, &model.NotAllowedError{Op: "Get " + attr.Name()}
}

// CanGet reports whether Get would succeed for attr right now.
func (co *CachingOptimizer) CanGet(attr model.Attribute, target model.Index) bool {
	if co.cache.CanGet(attr, target) {
		return true
	}

	if co.state != AttachedOptimizer {
		return false
	}

	solverTarget, err := co.toSolverIndex(target)
	if err != nil {
		return false
	}

	return co.solver.CanGet(attr, solverTarget)
}

// Supports reports whether attr can be stored: the cache must support it
// and, when a solver is held, the solver must too. Name attributes consult
// the cache only.
func (co *CachingOptimizer) Supports(attr model.Attribute) bool {
	if model.IsNameAttribute(attr) {
		return co.cache.Supports(attr)
	}
	if !co.cache.Supports(attr) {
		return false
	}
	return co.solver == nil || co.solver.Supports(attr)
}

// SupportsConstraint reports whether constraints of kind can be added: the
// cache must support it and, when a solver is held, the solver must too.
func (co *CachingOptimizer) SupportsConstraint(kind model.ConstraintKind) bool {
	if !co.cache.SupportsConstraint(kind) {
		return false
	}
	return co.solver == nil || co.solver.SupportsConstraint(kind)
}

// Optimize delegates the solve to the attached solver. In Automatic mode a
// held-but-unattached solver is attached first; calling Optimize while no
// solver is held is an InvalidStateError. Solve results stay in the solver
// and are read back on demand via Get.
func (co *CachingOptimizer) Optimize(ctx context.Context) error {
	switch co.state {
	case NoOptimizer:
		return &InvalidStateError{Op: "Optimize", State: co.state}
	case EmptyOptimizer:
		if co.mode == Manual {
			return &InvalidStateError{Op: "Optimize", State: co.state}
		}
		if err := co.AttachOptimizer(); err != nil {
			return err
		}
	}

	start := time.Now()
	err := co.solver.Optimize(ctx)
	co.metrics.RecordSolve(time.Since(start), err)
	co.logger.LogOptimize(err)

	return err
}

// IsEmpty reports whether the model holds no variables, constraints, or
// non-default attributes.
func (co *CachingOptimizer) IsEmpty() bool { return co.cache.IsEmpty() }

// ListVariables returns the live variables in creation order.
func (co *CachingOptimizer) ListVariables() []model.VariableIndex {
	return co.cache.ListVariables()
}

// NumberOfVariables returns the count of live variables.
func (co *CachingOptimizer) NumberOfVariables() int {
	return co.cache.NumberOfVariables()
}

// ListConstraintKinds returns the kinds with at least one live constraint,
// ordered by first appearance.
func (co *CachingOptimizer) ListConstraintKinds() []model.ConstraintKind {
	return co.cache.ListConstraintKinds()
}

// ListConstraints returns the live constraints of one kind in creation
// order.
func (co *CachingOptimizer) ListConstraints(kind model.ConstraintKind) []model.ConstraintIndex {
	return co.cache.ListConstraints(kind)
}

// NumberOfConstraints returns the count of live constraints of one kind.
func (co *CachingOptimizer) NumberOfConstraints(kind model.ConstraintKind) int {
	return co.cache.NumberOfConstraints(kind)
}

// ConstraintFunction returns a copy of a constraint's function.
func (co *CachingOptimizer) ConstraintFunction(ci model.ConstraintIndex) (model.Function, error) {
	return co.cache.ConstraintFunction(ci)
}

// ConstraintSet returns a constraint's set.
func (co *CachingOptimizer) ConstraintSet(ci model.ConstraintIndex) (model.Set, error) {
	return co.cache.ConstraintSet(ci)
}

// VariableByName returns the variable with the given name. Names live in
// the cache only.
func (co *CachingOptimizer) VariableByName(name string) (model.VariableIndex, error) {
	return co.cache.VariableByName(name)
}

// ConstraintByName returns the constraint with the given name. Names live
// in the cache only.
func (co *CachingOptimizer) ConstraintByName(name string) (model.ConstraintIndex, error) {
	return co.cache.ConstraintByName(name)
}

// toSolverIndex translates a cache-space index argument to solver space.
// A nil target (model attribute) passes through.
func (co *CachingOptimizer) toSolverIndex(target model.Index) (model.Index, error) {
	switch idx := target.(type) {
	case nil:
		return nil, nil
	case model.VariableIndex:
		solverIdx, ok := co.imap.SolverVariable(idx)
		if !ok {
			return nil, translateIndexError(idx)
		}
		return solverIdx, nil
	case model.ConstraintIndex:
		solverIdx, ok := co.imap.SolverConstraint(idx)
		if !ok {
			return nil, translateIndexError(idx)
		}
		return solverIdx, nil
	default:
		return nil, translateIndexError(target)
	}
}

// toModelValue remaps any indices embedded in a solver-sourced value back
// to cache space. Scalar values pass through.
func (co *CachingOptimizer) toModelValue(value any) (any, error) {
	switch v := value.(type) {
	case model.Function:
		return co.imap.ToModel(v)
	case model.VariableIndex:
		cacheIdx, ok := co.imap.ModelVariable(v)
		if !ok {
			return nil, translateIndexError(v)
		}
		return cacheIdx, nil
	case model.ConstraintIndex:
		cacheIdx, ok := co.imap.ModelConstraint(v)
		if !ok {
			return nil, translateIndexError(v)
		}
		return cacheIdx, nil
	default:
		return value, nil
	}
}
