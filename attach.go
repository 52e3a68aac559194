package optigo

import (
	"github.com/hupe1980/optigo/bulkcopy"
)

// State is the synchronization state of a CachingOptimizer.
type State int

// CachingOptimizer states.
const (
	// NoOptimizer means no solver object is held.
	NoOptimizer State = iota

	// EmptyOptimizer means a solver is held and empty but not synchronized
	// with the cache; the index translator is empty.
	EmptyOptimizer

	// AttachedOptimizer means the held solver mirrors the cache and the
	// index translator is valid and complete.
	AttachedOptimizer
)

// String returns a string representation of the State.
func (s State) String() string {
	switch s {
	case NoOptimizer:
		return "NoOptimizer"
	case EmptyOptimizer:
		return "EmptyOptimizer"
	case AttachedOptimizer:
		return "AttachedOptimizer"
	default:
		return "Unknown"
	}
}

// Mode is the state-transition policy of a CachingOptimizer.
type Mode int

// CachingOptimizer modes.
const (
	// Manual means state transitions happen only via explicit calls;
	// solver rejections propagate to the caller.
	Manual Mode = iota

	// Automatic means the optimizer attaches lazily before a solve and
	// detaches itself when the solver rejects an incremental operation.
	Automatic
)

// String returns a string representation of the Mode.
func (m Mode) String() string {
	switch m {
	case Manual:
		return "Manual"
	case Automatic:
		return "Automatic"
	default:
		return "Unknown"
	}
}

// ResetOptimizer replaces or resets the held solver, moving to
// EmptyOptimizer.
//
// With a non-nil solver the solver must be empty (ErrNonEmptyOptimizer
// otherwise) and replaces any previously held one. With a nil solver the
// currently held solver is emptied instead; it is an InvalidStateError to
// pass nil while no solver is held. The index translator is cleared in
// both cases.
func (co *CachingOptimizer) ResetOptimizer(solver Optimizer) error {
	if solver == nil {
		if co.state == NoOptimizer {
			return &InvalidStateError{Op: "ResetOptimizer", State: co.state}
		}
		co.solver.Empty()
	} else {
		if !solver.IsEmpty() {
			return ErrNonEmptyOptimizer
		}
		co.solver = solver
	}

	from := co.state
	co.state = EmptyOptimizer
	co.imap.Clear()

	co.logger.LogTransition("ResetOptimizer", from, co.state)

	return nil
}

// DropOptimizer discards the held solver reference, moving to NoOptimizer.
// The model's content is unaffected. Safe to call in any state.
func (co *CachingOptimizer) DropOptimizer() {
	from := co.state
	co.solver = nil
	co.state = NoOptimizer
	co.imap.Clear()

	co.logger.LogTransition("DropOptimizer", from, co.state)
}

// AttachOptimizer bulk-copies the cache into the held solver and rebuilds
// the index translator from the copy's index correspondence, moving from
// EmptyOptimizer to AttachedOptimizer. Names are excluded from the copy.
//
// If the solver rejects any element the copy error propagates, the solver
// is emptied again, and the state remains EmptyOptimizer.
func (co *CachingOptimizer) AttachOptimizer() error {
	if co.state != EmptyOptimizer {
		return &InvalidStateError{Op: "AttachOptimizer", State: co.state}
	}

	m, err := bulkcopy.Copy(co.solver, co.cache, func(o *bulkcopy.Options) {
		o.SkipNames = true
	})
	if err != nil {
		co.solver.Empty()
		co.logger.LogAttach(0, 0, err)
		return err
	}

	co.imap = m
	co.state = AttachedOptimizer

	co.logger.LogAttach(m.NumVariables(), m.NumConstraints(), nil)
	co.logger.LogTransition("AttachOptimizer", EmptyOptimizer, co.state)

	return nil
}

// Empty resets the model to its freshly-constructed state. The cache is
// always emptied; an attached solver is emptied with it. In Automatic mode
// a held-but-unattached solver becomes attached again, since an empty
// solver is trivially synchronized with an empty cache. Empty is
// idempotent.
func (co *CachingOptimizer) Empty() {
	co.cache.Empty()
	co.imap.Clear()

	switch {
	case co.state == AttachedOptimizer:
		co.solver.Empty()
	case co.state == EmptyOptimizer && co.mode == Automatic:
		from := co.state
		co.state = AttachedOptimizer
		co.logger.LogTransition("Empty", from, co.state)
	}
}
