package model

// Attribute identifies a piece of model or solve state that can be read
// with Get and, for non-result attributes, written with Set. Concrete
// attribute types are small value structs; attributes carrying a parameter
// (a constraint kind, a result index) embed it as a field.
type Attribute interface {
	// Name returns a stable, human-readable attribute name.
	Name() string

	isAttribute()
}

// ModelName is the model's name. Value type: string. Served by the model
// cache only; never forwarded to a solver.
type ModelName struct{}

func (ModelName) isAttribute() {}

// Name implements Attribute.
func (ModelName) Name() string { return "ModelName" }

// ObjectiveSense is the optimization direction. Value type: Sense.
type ObjectiveSense struct{}

func (ObjectiveSense) isAttribute() {}

// Name implements Attribute.
func (ObjectiveSense) Name() string { return "ObjectiveSense" }

// ObjectiveFunction is the objective. Value type: Function.
type ObjectiveFunction struct{}

func (ObjectiveFunction) isAttribute() {}

// Name implements Attribute.
func (ObjectiveFunction) Name() string { return "ObjectiveFunction" }

// NumberOfVariables is the count of live variables. Value type: int.
// Read-only.
type NumberOfVariables struct{}

func (NumberOfVariables) isAttribute() {}

// Name implements Attribute.
func (NumberOfVariables) Name() string { return "NumberOfVariables" }

// NumberOfConstraints is the count of live constraints of one kind.
// Value type: int. Read-only.
type NumberOfConstraints struct {
	Kind ConstraintKind
}

func (NumberOfConstraints) isAttribute() {}

// Name implements Attribute.
func (NumberOfConstraints) Name() string { return "NumberOfConstraints" }

// ListOfConstraintKinds is the set of kinds with at least one live
// constraint, ordered by first appearance. Value type: []ConstraintKind.
// Read-only.
type ListOfConstraintKinds struct{}

func (ListOfConstraintKinds) isAttribute() {}

// Name implements Attribute.
func (ListOfConstraintKinds) Name() string { return "ListOfConstraintKinds" }

// VariableName is a variable's name. Value type: string. Cache-only, like
// ModelName.
type VariableName struct{}

func (VariableName) isAttribute() {}

// Name implements Attribute.
func (VariableName) Name() string { return "VariableName" }

// ConstraintName is a constraint's name. Value type: string. Cache-only,
// like ModelName.
type ConstraintName struct{}

func (ConstraintName) isAttribute() {}

// Name implements Attribute.
func (ConstraintName) Name() string { return "ConstraintName" }

// TerminationStatus reports why the last solve stopped. Value type:
// TerminationStatusCode. Result attribute.
type TerminationStatus struct{}

func (TerminationStatus) isAttribute() {}

// Name implements Attribute.
func (TerminationStatus) Name() string { return "TerminationStatus" }

// ResultCount is the number of available results. Value type: int.
// Result attribute.
type ResultCount struct{}

func (ResultCount) isAttribute() {}

// Name implements Attribute.
func (ResultCount) Name() string { return "ResultCount" }

// PrimalStatus reports the feasibility status of a primal result. Value
// type: ResultStatusCode. Result attribute.
type PrimalStatus struct {
	Result int
}

func (PrimalStatus) isAttribute() {}

// Name implements Attribute.
func (PrimalStatus) Name() string { return "PrimalStatus" }

// DualStatus reports the feasibility status of a dual result. Value type:
// ResultStatusCode. Result attribute.
type DualStatus struct {
	Result int
}

func (DualStatus) isAttribute() {}

// Name implements Attribute.
func (DualStatus) Name() string { return "DualStatus" }

// ObjectiveValue is the objective value of a result. Value type: float64.
// Result attribute.
type ObjectiveValue struct {
	Result int
}

func (ObjectiveValue) isAttribute() {}

// Name implements Attribute.
func (ObjectiveValue) Name() string { return "ObjectiveValue" }

// VariablePrimal is a variable's value in a result. Value type: float64.
// Result attribute.
type VariablePrimal struct {
	Result int
}

func (VariablePrimal) isAttribute() {}

// Name implements Attribute.
func (VariablePrimal) Name() string { return "VariablePrimal" }

// IsNameAttribute reports whether attr is one of the name attributes.
// Name attributes live in the model cache only: they are excluded from
// bulk copies and never forwarded to a solver.
func IsNameAttribute(attr Attribute) bool {
	switch attr.(type) {
	case ModelName, VariableName, ConstraintName:
		return true
	default:
		return false
	}
}

// IsResultAttribute reports whether attr describes solve output rather
// than model content. Result attributes cannot be stored in a model cache
// and are only available from a solver after a solve.
func IsResultAttribute(attr Attribute) bool {
	switch attr.(type) {
	case TerminationStatus, ResultCount, PrimalStatus, DualStatus, ObjectiveValue, VariablePrimal:
		return true
	default:
		return false
	}
}
