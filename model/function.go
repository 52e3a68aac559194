package model

// Function is a scalar function of the model's variables, usable as a
// constraint function or as the objective.
//
// Functions are value types. Stores must not retain caller slices; use
// Clone when a function crosses an ownership boundary.
type Function interface {
	// Kind reports the function's representation tag.
	Kind() FunctionKind

	// Clone returns a deep copy sharing no mutable state with the receiver.
	Clone() Function

	isFunction()
}

// Variable is the identity function of a single variable.
type Variable struct {
	Index VariableIndex
}

func (Variable) isFunction() {}

// Kind reports FunctionVariable.
func (Variable) Kind() FunctionKind { return FunctionVariable }

// Clone returns a copy of the function.
func (f Variable) Clone() Function { return f }

// AffineTerm is a coefficient-variable product in an affine function.
type AffineTerm struct {
	Coefficient float64
	Variable    VariableIndex
}

// ScalarAffine is an affine function: sum of terms plus a constant.
type ScalarAffine struct {
	Terms    []AffineTerm
	Constant float64
}

func (ScalarAffine) isFunction() {}

// Kind reports FunctionScalarAffine.
func (ScalarAffine) Kind() FunctionKind { return FunctionScalarAffine }

// Clone returns a deep copy of the function.
func (f ScalarAffine) Clone() Function {
	terms := make([]AffineTerm, len(f.Terms))
	copy(terms, f.Terms)
	return ScalarAffine{Terms: terms, Constant: f.Constant}
}

// QuadraticTerm is a coefficient times a product of two variables. For a
// diagonal term Variable1 == Variable2.
type QuadraticTerm struct {
	Coefficient float64
	Variable1   VariableIndex
	Variable2   VariableIndex
}

// ScalarQuadratic is a quadratic function: affine part plus quadratic
// terms plus a constant.
type ScalarQuadratic struct {
	AffineTerms    []AffineTerm
	QuadraticTerms []QuadraticTerm
	Constant       float64
}

func (ScalarQuadratic) isFunction() {}

// Kind reports FunctionScalarQuadratic.
func (ScalarQuadratic) Kind() FunctionKind { return FunctionScalarQuadratic }

// Clone returns a deep copy of the function.
func (f ScalarQuadratic) Clone() Function {
	at := make([]AffineTerm, len(f.AffineTerms))
	copy(at, f.AffineTerms)
	qt := make([]QuadraticTerm, len(f.QuadraticTerms))
	copy(qt, f.QuadraticTerms)
	return ScalarQuadratic{AffineTerms: at, QuadraticTerms: qt, Constant: f.Constant}
}

// RemapFunction rewrites every variable index embedded in f through
// translate, returning a new function. It is used to move functions between
// two index spaces. translate reports false for an unknown index, in which
// case RemapFunction returns an InvalidIndexError naming it.
func RemapFunction(f Function, translate func(VariableIndex) (VariableIndex, bool)) (Function, error) {
	switch fn := f.(type) {
	case Variable:
		vi, ok := translate(fn.Index)
		if !ok {
			return nil, &InvalidIndexError{Index: fn.Index}
		}
		return Variable{Index: vi}, nil
	case ScalarAffine:
		terms := make([]AffineTerm, len(fn.Terms))
		for i, t := range fn.Terms {
			vi, ok := translate(t.Variable)
			if !ok {
				return nil, &InvalidIndexError{Index: t.Variable}
			}
			terms[i] = AffineTerm{Coefficient: t.Coefficient, Variable: vi}
		}
		return ScalarAffine{Terms: terms, Constant: fn.Constant}, nil
	case ScalarQuadratic:
		at := make([]AffineTerm, len(fn.AffineTerms))
		for i, t := range fn.AffineTerms {
			vi, ok := translate(t.Variable)
			if !ok {
				return nil, &InvalidIndexError{Index: t.Variable}
			}
			at[i] = AffineTerm{Coefficient: t.Coefficient, Variable: vi}
		}
		qt := make([]QuadraticTerm, len(fn.QuadraticTerms))
		for i, t := range fn.QuadraticTerms {
			v1, ok := translate(t.Variable1)
			if !ok {
				return nil, &InvalidIndexError{Index: t.Variable1}
			}
			v2, ok := translate(t.Variable2)
			if !ok {
				return nil, &InvalidIndexError{Index: t.Variable2}
			}
			qt[i] = QuadraticTerm{Coefficient: t.Coefficient, Variable1: v1, Variable2: v2}
		}
		return ScalarQuadratic{AffineTerms: at, QuadraticTerms: qt, Constant: fn.Constant}, nil
	default:
		return nil, &UnsupportedConstraintError{Kind: ConstraintKind{Function: f.Kind()}}
	}
}
