package model

import "fmt"

// Index is implemented by the opaque handle types that identify model
// elements: VariableIndex and ConstraintIndex.
type Index interface {
	isIndex()
}

// VariableIndex identifies a variable within a single model. Values are
// model-local: two models may use overlapping numeric values. Within one
// model a value is never reused after the variable is deleted.
type VariableIndex int64

func (VariableIndex) isIndex() {}

// String returns a string representation of the VariableIndex.
func (vi VariableIndex) String() string {
	return fmt.Sprintf("v[%d]", int64(vi))
}

// FunctionKind identifies the representation of a constraint or objective
// function.
type FunctionKind int

// Supported function kinds.
const (
	FunctionVariable FunctionKind = iota
	FunctionScalarAffine
	FunctionScalarQuadratic
)

// String returns a string representation of the FunctionKind.
func (fk FunctionKind) String() string {
	switch fk {
	case FunctionVariable:
		return "Variable"
	case FunctionScalarAffine:
		return "ScalarAffine"
	case FunctionScalarQuadratic:
		return "ScalarQuadratic"
	default:
		return "Unknown"
	}
}

// SetKind identifies the set a constraint function is restricted to.
type SetKind int

// Supported set kinds.
const (
	SetLessThan SetKind = iota
	SetGreaterThan
	SetEqualTo
	SetInterval
	SetZeroOne
	SetInteger
)

// String returns a string representation of the SetKind.
func (sk SetKind) String() string {
	switch sk {
	case SetLessThan:
		return "LessThan"
	case SetGreaterThan:
		return "GreaterThan"
	case SetEqualTo:
		return "EqualTo"
	case SetInterval:
		return "Interval"
	case SetZeroOne:
		return "ZeroOne"
	case SetInteger:
		return "Integer"
	default:
		return "Unknown"
	}
}

// ConstraintKind is the (function, set) pair that jointly identifies a
// constraint kind. Constraint storage is partitioned by kind, so there is
// no global constraint counter.
type ConstraintKind struct {
	Function FunctionKind
	Set      SetKind
}

// Kind constructs a ConstraintKind from its two tags.
func Kind(f FunctionKind, s SetKind) ConstraintKind {
	return ConstraintKind{Function: f, Set: s}
}

// KindOf returns the ConstraintKind of a concrete function/set pair.
func KindOf(f Function, s Set) ConstraintKind {
	return ConstraintKind{Function: f.Kind(), Set: s.Kind()}
}

// String returns a string representation of the ConstraintKind.
func (k ConstraintKind) String() string {
	return fmt.Sprintf("%s-in-%s", k.Function, k.Set)
}

// ConstraintIndex identifies a constraint within a single model. The Kind
// tag is part of the identity: equality requires both the kind and the
// value to match, so a value may coincide across kinds.
type ConstraintIndex struct {
	Kind  ConstraintKind
	Value int64
}

func (ConstraintIndex) isIndex() {}

// String returns a string representation of the ConstraintIndex.
func (ci ConstraintIndex) String() string {
	return fmt.Sprintf("c[%s:%d]", ci.Kind, ci.Value)
}
