// Package optigo provides a solver-agnostic interface for building and
// solving mathematical optimization models in Go.
//
// Optigo separates the model a caller builds from the solver that solves
// it. The model lives in an always-fully-capable in-memory cache; a solver
// adapter may be attached to it, kept synchronized incrementally, and
// detached again without losing model content. Callers only ever see the
// cache's index space.
//
// # Quick Start
//
//	ctx := context.Background()
//	opt := optigo.New(cache.New(), optigo.WithMode(optigo.Automatic))
//
//	x, _ := opt.AddVariable()
//	y, _ := opt.AddVariable()
//
//	// x + 2y <= 4
//	_, _ = opt.AddConstraint(model.ScalarAffine{
//	    Terms: []model.AffineTerm{{Coefficient: 1, Variable: x}, {Coefficient: 2, Variable: y}},
//	}, model.LessThan{Upper: 4})
//
//	_ = opt.Set(model.ObjectiveSense{}, nil, model.MaxSense)
//	_ = opt.Set(model.ObjectiveFunction{}, nil, model.ScalarAffine{
//	    Terms: []model.AffineTerm{{Coefficient: 3, Variable: x}, {Coefficient: 1, Variable: y}},
//	})
//
//	_ = opt.ResetOptimizer(mySolver)
//	_ = opt.Optimize(ctx) // attaches lazily in Automatic mode
//
// # State Machine
//
// A CachingOptimizer is always in one of three states:
//
//   - NoOptimizer: no solver is held; all operations are cache-only.
//   - EmptyOptimizer: a solver is held but not synchronized with the cache.
//   - AttachedOptimizer: the solver mirrors the cache; every mutation is
//     forwarded through a bidirectional index translation.
//
// In Automatic mode the state machine manages itself: Optimize attaches a
// held solver lazily, and a solver that rejects an incremental operation is
// detached so the operation can proceed cache-only. In Manual mode every
// transition is an explicit call and solver rejections surface to the
// caller unchanged.
//
// # Key Features
//
//   - Incremental model building independent of solver capabilities
//   - Automatic fallback when a solver cannot apply a change in place
//   - Bulk-copy attachment with direct and allocate-then-load protocols
//   - Names stored in the cache only; solvers never track names
//   - Structured logging and pluggable metrics collection
package optigo
