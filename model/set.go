package model

// Set is the set a constraint restricts its function to.
type Set interface {
	// Kind reports the set's tag.
	Kind() SetKind

	isSet()
}

// LessThan is the half-open interval (-inf, Upper].
type LessThan struct {
	Upper float64
}

func (LessThan) isSet() {}

// Kind reports SetLessThan.
func (LessThan) Kind() SetKind { return SetLessThan }

// GreaterThan is the half-open interval [Lower, +inf).
type GreaterThan struct {
	Lower float64
}

func (GreaterThan) isSet() {}

// Kind reports SetGreaterThan.
func (GreaterThan) Kind() SetKind { return SetGreaterThan }

// EqualTo is the singleton {Value}.
type EqualTo struct {
	Value float64
}

func (EqualTo) isSet() {}

// Kind reports SetEqualTo.
func (EqualTo) Kind() SetKind { return SetEqualTo }

// Interval is the closed interval [Lower, Upper].
type Interval struct {
	Lower float64
	Upper float64
}

func (Interval) isSet() {}

// Kind reports SetInterval.
func (Interval) Kind() SetKind { return SetInterval }

// ZeroOne restricts a variable to {0, 1}.
type ZeroOne struct{}

func (ZeroOne) isSet() {}

// Kind reports SetZeroOne.
func (ZeroOne) Kind() SetKind { return SetZeroOne }

// Integer restricts a variable to the integers.
type Integer struct{}

func (Integer) isSet() {}

// Kind reports SetInteger.
func (Integer) Kind() SetKind { return SetInteger }
