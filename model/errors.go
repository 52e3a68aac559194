package model

import (
	"errors"
	"fmt"
)

// UnsupportedConstraintError indicates a store or solver structurally
// cannot represent constraints of a kind.
type UnsupportedConstraintError struct {
	Kind ConstraintKind
}

func (e *UnsupportedConstraintError) Error() string {
	return fmt.Sprintf("unsupported constraint kind: %s", e.Kind)
}

// UnsupportedAttributeError indicates a store or solver structurally
// cannot represent an attribute.
type UnsupportedAttributeError struct {
	Attr Attribute
}

func (e *UnsupportedAttributeError) Error() string {
	return fmt.Sprintf("unsupported attribute: %s", e.Attr.Name())
}

// NotAllowedError indicates an operation that is structurally supported
// was rejected in the current dynamic state (for example an instance
// limit of a solver, or reading a result before any solve).
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type NotAllowedError struct {
	Op    string
	Cause error
}

func (e *NotAllowedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("operation %s not allowed: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("operation %s not allowed", e.Op)
}

func (e *NotAllowedError) Unwrap() error { return e.Cause }

// InvalidIndexError indicates an operation referenced a deleted or
// foreign index. This is a programmer error and is never recovered
// automatically.
type InvalidIndexError struct {
	Index Index
}

func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("invalid index: %v", e.Index)
}

// IsRejection reports whether err is a capability rejection: an
// unsupported-constraint, unsupported-attribute, or not-allowed signal.
// These are the signals an automatic caching layer may recover from by
// detaching its solver; all other errors must propagate.
func IsRejection(err error) bool {
	var uc *UnsupportedConstraintError
	if errors.As(err, &uc) {
		return true
	}
	var ua *UnsupportedAttributeError
	if errors.As(err, &ua) {
		return true
	}
	var na *NotAllowedError
	return errors.As(err, &na)
}
