package model

// Reader is the query surface of a model store or solver adapter.
//
// For model attributes the target is nil; for variable and constraint
// attributes it is the corresponding index. Implementations return copies
// of stored functions, never internal references.
type Reader interface {
	// IsEmpty reports whether the store holds no variables, constraints,
	// or non-default attributes.
	IsEmpty() bool

	// ListVariables returns the live variables in creation order.
	ListVariables() []VariableIndex

	// NumberOfVariables returns the count of live variables.
	NumberOfVariables() int

	// ListConstraintKinds returns the kinds with at least one live
	// constraint, ordered by first appearance.
	ListConstraintKinds() []ConstraintKind

	// ListConstraints returns the live constraints of one kind in
	// creation order.
	ListConstraints(kind ConstraintKind) []ConstraintIndex

	// NumberOfConstraints returns the count of live constraints of one kind.
	NumberOfConstraints(kind ConstraintKind) int

	// ConstraintFunction returns a copy of a constraint's function.
	ConstraintFunction(ci ConstraintIndex) (Function, error)

	// ConstraintSet returns a constraint's set.
	ConstraintSet(ci ConstraintIndex) (Set, error)

	// Get reads an attribute. target is nil for model attributes.
	Get(attr Attribute, target Index) (any, error)

	// CanGet reports whether Get would succeed for attr right now.
	CanGet(attr Attribute, target Index) bool
}

// Writer is the mutation surface of a model store or solver adapter.
//
// A capability-limited implementation signals structural gaps with
// UnsupportedConstraintError/UnsupportedAttributeError and dynamic
// rejections with NotAllowedError; a fully-capable store never returns
// either for well-formed input.
type Writer interface {
	// Empty resets the store to its freshly-constructed state. All
	// previously issued indices become invalid.
	Empty()

	// AddVariable adds one variable.
	AddVariable() (VariableIndex, error)

	// AddVariables adds n variables in one batch, returning their indices
	// in creation order.
	AddVariables(n int) ([]VariableIndex, error)

	// AddConstraint adds the constraint f-in-s.
	AddConstraint(f Function, s Set) (ConstraintIndex, error)

	// Delete removes the element identified by index. Deleting an unknown
	// or already-deleted index returns an InvalidIndexError.
	Delete(index Index) error

	// Modify applies an in-place change to a constraint's function.
	Modify(ci ConstraintIndex, change Modification) error

	// ModifyObjective applies an in-place change to the objective.
	ModifyObjective(change Modification) error

	// Set writes an attribute. target is nil for model attributes.
	Set(attr Attribute, target Index, value any) error

	// SupportsConstraint reports whether constraints of kind can be
	// represented. A false result guarantees AddConstraint would fail.
	SupportsConstraint(kind ConstraintKind) bool

	// Supports reports whether attr can be stored. A false result
	// guarantees Set would fail.
	Supports(attr Attribute) bool
}
