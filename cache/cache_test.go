package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/optigo/model"
)

func affineLEQ(vi model.VariableIndex, upper float64) (model.Function, model.Set) {
	return model.ScalarAffine{
		Terms: []model.AffineTerm{{Coefficient: 1, Variable: vi}},
	}, model.LessThan{Upper: upper}
}

func TestListVariablesCreationOrder(t *testing.T) {
	m := New()

	v1, err := m.AddVariable()
	require.NoError(t, err)
	v2, err := m.AddVariable()
	require.NoError(t, err)

	require.NoError(t, m.Delete(v1))

	v3, err := m.AddVariable()
	require.NoError(t, err)
	v4, err := m.AddVariable()
	require.NoError(t, err)

	assert.Equal(t, []model.VariableIndex{v2, v3, v4}, m.ListVariables())
	assert.Equal(t, 3, m.NumberOfVariables())

	// Index values are never reused within a model instance.
	assert.NotEqual(t, v1, v3)
	assert.NotEqual(t, v1, v4)
}

func TestListConstraintsCreationOrder(t *testing.T) {
	m := New()
	vi, err := m.AddVariable()
	require.NoError(t, err)

	f, s := affineLEQ(vi, 1)
	c1, err := m.AddConstraint(f, s)
	require.NoError(t, err)
	c2, err := m.AddConstraint(f, s)
	require.NoError(t, err)

	require.NoError(t, m.Delete(c1))

	c3, err := m.AddConstraint(f, s)
	require.NoError(t, err)

	kind := model.Kind(model.FunctionScalarAffine, model.SetLessThan)
	assert.Equal(t, []model.ConstraintIndex{c2, c3}, m.ListConstraints(kind))
	assert.Equal(t, 2, m.NumberOfConstraints(kind))
}

func TestDeleteInvalidIndex(t *testing.T) {
	m := New()
	vi, err := m.AddVariable()
	require.NoError(t, err)
	require.NoError(t, m.Delete(vi))

	var iie *model.InvalidIndexError

	// Already deleted.
	require.ErrorAs(t, m.Delete(vi), &iie)

	// Never existed.
	require.ErrorAs(t, m.Delete(model.VariableIndex(99)), &iie)
	require.ErrorAs(t, m.Delete(model.ConstraintIndex{
		Kind:  model.Kind(model.FunctionVariable, model.SetZeroOne),
		Value: 0,
	}), &iie)
}

func TestDeleteVariableCascades(t *testing.T) {
	m := New()
	x, err := m.AddVariable()
	require.NoError(t, err)
	y, err := m.AddVariable()
	require.NoError(t, err)

	// A single-variable constraint bound to x and a two-term affine one.
	binKind := model.Kind(model.FunctionVariable, model.SetZeroOne)
	_, err = m.AddConstraint(model.Variable{Index: x}, model.ZeroOne{})
	require.NoError(t, err)

	affine, err := m.AddConstraint(model.ScalarAffine{
		Terms: []model.AffineTerm{
			{Coefficient: 1, Variable: x},
			{Coefficient: 2, Variable: y},
		},
	}, model.LessThan{Upper: 4})
	require.NoError(t, err)

	require.NoError(t, m.Set(model.ObjectiveFunction{}, nil, model.ScalarAffine{
		Terms: []model.AffineTerm{
			{Coefficient: 3, Variable: x},
			{Coefficient: 1, Variable: y},
		},
	}))

	require.NoError(t, m.Delete(x))

	// The ZeroOne constraint on x is gone; the affine constraint and the
	// objective lost their x terms.
	assert.Equal(t, 0, m.NumberOfConstraints(binKind))

	f, err := m.ConstraintFunction(affine)
	require.NoError(t, err)
	assert.Equal(t, []model.AffineTerm{{Coefficient: 2, Variable: y}}, f.(model.ScalarAffine).Terms)

	obj, err := m.Get(model.ObjectiveFunction{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []model.AffineTerm{{Coefficient: 1, Variable: y}}, obj.(model.ScalarAffine).Terms)
}

func TestAddConstraintValidatesVariables(t *testing.T) {
	m := New()

	_, err := m.AddConstraint(model.Variable{Index: 5}, model.ZeroOne{})

	var iie *model.InvalidIndexError
	require.ErrorAs(t, err, &iie)
}

func TestEmptyIdempotence(t *testing.T) {
	m := New()
	vi, err := m.AddVariable()
	require.NoError(t, err)
	_, err = m.AddConstraint(model.Variable{Index: vi}, model.Integer{})
	require.NoError(t, err)
	require.NoError(t, m.Set(model.ModelName{}, nil, "m"))
	require.NoError(t, m.Set(model.ObjectiveSense{}, nil, model.MaxSense))

	m.Empty()
	assert.True(t, m.IsEmpty())

	m.Empty()
	assert.True(t, m.IsEmpty())

	// Previously valid indices are invalid afterward.
	var iie *model.InvalidIndexError
	require.ErrorAs(t, m.Delete(vi), &iie)
}

func TestModify(t *testing.T) {
	m := New()
	vi, err := m.AddVariable()
	require.NoError(t, err)

	f, s := affineLEQ(vi, 1)
	ci, err := m.AddConstraint(f, s)
	require.NoError(t, err)

	require.NoError(t, m.Modify(ci, model.ScalarConstantChange{NewConstant: 5}))

	got, err := m.ConstraintFunction(ci)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.(model.ScalarAffine).Constant)
}

func TestModifyObjectiveUnsetStartsFromZero(t *testing.T) {
	m := New()

	require.NoError(t, m.ModifyObjective(model.ScalarConstantChange{NewConstant: 2}))

	obj, err := m.Get(model.ObjectiveFunction{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2.0, obj.(model.ScalarAffine).Constant)
}

func TestNames(t *testing.T) {
	m := New()
	x, err := m.AddVariable()
	require.NoError(t, err)
	y, err := m.AddVariable()
	require.NoError(t, err)

	require.NoError(t, m.Set(model.VariableName{}, x, "x"))
	require.NoError(t, m.Set(model.VariableName{}, y, "y"))

	got, err := m.VariableByName("x")
	require.NoError(t, err)
	assert.Equal(t, x, got)

	_, err = m.VariableByName("z")
	assert.ErrorIs(t, err, ErrNameNotFound)

	// Duplicates are legal at Set time and detected at lookup time.
	require.NoError(t, m.Set(model.VariableName{}, y, "x"))
	_, err = m.VariableByName("x")
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestConstraintByName(t *testing.T) {
	m := New()
	vi, err := m.AddVariable()
	require.NoError(t, err)

	f, s := affineLEQ(vi, 1)
	ci, err := m.AddConstraint(f, s)
	require.NoError(t, err)
	require.NoError(t, m.Set(model.ConstraintName{}, ci, "budget"))

	got, err := m.ConstraintByName("budget")
	require.NoError(t, err)
	assert.Equal(t, ci, got)

	_, err = m.ConstraintByName("missing")
	assert.ErrorIs(t, err, ErrNameNotFound)
}

func TestAttributes(t *testing.T) {
	m := New()
	vi, err := m.AddVariable()
	require.NoError(t, err)
	_, err = m.AddConstraint(model.Variable{Index: vi}, model.ZeroOne{})
	require.NoError(t, err)

	n, err := m.Get(model.NumberOfVariables{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	kind := model.Kind(model.FunctionVariable, model.SetZeroOne)
	c, err := m.Get(model.NumberOfConstraints{Kind: kind}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, c)

	kinds, err := m.Get(model.ListOfConstraintKinds{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []model.ConstraintKind{kind}, kinds)

	// Result attributes are never answerable by the store.
	assert.False(t, m.CanGet(model.TerminationStatus{}, nil))
	assert.False(t, m.Supports(model.TerminationStatus{}))
}
