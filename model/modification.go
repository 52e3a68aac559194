package model

// Modification is an in-place change to a stored function, applied to a
// constraint's function or to the objective without replacing it wholesale.
type Modification interface {
	isModification()
}

// ScalarConstantChange replaces the constant term of an affine or
// quadratic function.
type ScalarConstantChange struct {
	NewConstant float64
}

func (ScalarConstantChange) isModification() {}

// ScalarCoefficientChange replaces the affine coefficient of one variable.
// A zero NewCoefficient removes the term.
type ScalarCoefficientChange struct {
	Variable       VariableIndex
	NewCoefficient float64
}

func (ScalarCoefficientChange) isModification() {}

// RemapModification rewrites every variable index embedded in change
// through translate, returning a new modification. translate reports false
// for an unknown index, in which case RemapModification returns an
// InvalidIndexError naming it.
func RemapModification(change Modification, translate func(VariableIndex) (VariableIndex, bool)) (Modification, error) {
	switch c := change.(type) {
	case ScalarConstantChange:
		return c, nil
	case ScalarCoefficientChange:
		vi, ok := translate(c.Variable)
		if !ok {
			return nil, &InvalidIndexError{Index: c.Variable}
		}
		return ScalarCoefficientChange{Variable: vi, NewCoefficient: c.NewCoefficient}, nil
	default:
		return nil, &NotAllowedError{Op: "RemapModification"}
	}
}

// ApplyModification returns a copy of f with change applied. Variable
// functions cannot be modified; attempting to returns a NotAllowedError.
func ApplyModification(f Function, change Modification) (Function, error) {
	switch fn := f.(type) {
	case ScalarAffine:
		out := fn.Clone().(ScalarAffine)
		switch c := change.(type) {
		case ScalarConstantChange:
			out.Constant = c.NewConstant
		case ScalarCoefficientChange:
			out.Terms = setCoefficient(out.Terms, c.Variable, c.NewCoefficient)
		default:
			return nil, &NotAllowedError{Op: "Modify"}
		}
		return out, nil
	case ScalarQuadratic:
		out := fn.Clone().(ScalarQuadratic)
		switch c := change.(type) {
		case ScalarConstantChange:
			out.Constant = c.NewConstant
		case ScalarCoefficientChange:
			out.AffineTerms = setCoefficient(out.AffineTerms, c.Variable, c.NewCoefficient)
		default:
			return nil, &NotAllowedError{Op: "Modify"}
		}
		return out, nil
	default:
		return nil, &NotAllowedError{Op: "Modify"}
	}
}

func setCoefficient(terms []AffineTerm, vi VariableIndex, coefficient float64) []AffineTerm {
	out := terms[:0]
	for _, t := range terms {
		if t.Variable != vi {
			out = append(out, t)
		}
	}
	if coefficient != 0 {
		out = append(out, AffineTerm{Coefficient: coefficient, Variable: vi})
	}
	return out
}
