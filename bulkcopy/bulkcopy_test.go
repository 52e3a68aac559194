package bulkcopy

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/optigo/cache"
	"github.com/hupe1980/optigo/indexmap"
	"github.com/hupe1980/optigo/model"
	"github.com/hupe1980/optigo/testutil"
)

// populatedSource builds a model with 3 variables, 4 constraints of 4
// distinct kinds, names, and an objective.
func populatedSource(t *testing.T) *cache.Model {
	t.Helper()

	src := cache.New()

	vars, err := src.AddVariables(3)
	require.NoError(t, err)
	x, y, z := vars[0], vars[1], vars[2]

	require.NoError(t, src.Set(model.ModelName{}, nil, "diet"))
	require.NoError(t, src.Set(model.VariableName{}, x, "x"))
	require.NoError(t, src.Set(model.VariableName{}, y, "y"))
	require.NoError(t, src.Set(model.VariableName{}, z, "z"))

	c1, err := src.AddConstraint(model.Variable{Index: x}, model.ZeroOne{})
	require.NoError(t, err)
	require.NoError(t, src.Set(model.ConstraintName{}, c1, "binary_x"))

	_, err = src.AddConstraint(model.Variable{Index: y}, model.GreaterThan{Lower: 0})
	require.NoError(t, err)

	_, err = src.AddConstraint(model.ScalarAffine{
		Terms: []model.AffineTerm{
			{Coefficient: 1, Variable: x},
			{Coefficient: 2, Variable: y},
			{Coefficient: 3, Variable: z},
		},
		Constant: -1,
	}, model.LessThan{Upper: 10})
	require.NoError(t, err)

	_, err = src.AddConstraint(model.ScalarQuadratic{
		AffineTerms:    []model.AffineTerm{{Coefficient: 1, Variable: z}},
		QuadraticTerms: []model.QuadraticTerm{{Coefficient: 2, Variable1: x, Variable2: y}},
	}, model.EqualTo{Value: 4})
	require.NoError(t, err)

	require.NoError(t, src.Set(model.ObjectiveSense{}, nil, model.MaxSense))
	require.NoError(t, src.Set(model.ObjectiveFunction{}, nil, model.ScalarAffine{
		Terms: []model.AffineTerm{
			{Coefficient: 5, Variable: x},
			{Coefficient: 4, Variable: y},
		},
	}))

	return src
}

// requireEqualUpToRemap checks that dst's content equals src's after
// mapping every index through m.
func requireEqualUpToRemap(t *testing.T, dst model.Reader, src model.Reader, m *indexmap.Map) {
	t.Helper()

	assert.Equal(t, src.NumberOfVariables(), dst.NumberOfVariables())
	require.ElementsMatch(t, src.ListConstraintKinds(), dst.ListConstraintKinds())

	for _, kind := range src.ListConstraintKinds() {
		srcCis := src.ListConstraints(kind)
		require.Len(t, dst.ListConstraints(kind), len(srcCis))

		for _, srcCi := range srcCis {
			dstCi, ok := m.SolverConstraint(srcCi)
			require.True(t, ok)

			srcFn, err := src.ConstraintFunction(srcCi)
			require.NoError(t, err)
			dstFn, err := dst.ConstraintFunction(dstCi)
			require.NoError(t, err)
			back, err := m.ToModel(dstFn)
			require.NoError(t, err)
			if diff := cmp.Diff(srcFn, back); diff != "" {
				t.Errorf("constraint %v function mismatch (-src +dst):\n%s", srcCi, diff)
			}

			srcSet, err := src.ConstraintSet(srcCi)
			require.NoError(t, err)
			dstSet, err := dst.ConstraintSet(dstCi)
			require.NoError(t, err)
			assert.Equal(t, srcSet, dstSet)
		}
	}

	srcObj, err := src.Get(model.ObjectiveFunction{}, nil)
	require.NoError(t, err)
	dstObj, err := dst.Get(model.ObjectiveFunction{}, nil)
	require.NoError(t, err)
	back, err := m.ToModel(dstObj.(model.Function))
	require.NoError(t, err)
	if diff := cmp.Diff(srcObj.(model.Function), back); diff != "" {
		t.Errorf("objective mismatch (-src +dst):\n%s", diff)
	}

	srcSense, err := src.Get(model.ObjectiveSense{}, nil)
	require.NoError(t, err)
	dstSense, err := dst.Get(model.ObjectiveSense{}, nil)
	require.NoError(t, err)
	assert.Equal(t, srcSense, dstSense)
}

func TestDirectCopyRoundTrip(t *testing.T) {
	src := populatedSource(t)
	dst := testutil.New()

	m, err := Copy(dst, src, func(o *Options) {
		o.SkipNames = true
	})
	require.NoError(t, err)

	requireEqualUpToRemap(t, dst, src, m)

	// The bijection covers every live element.
	assert.Equal(t, 3, m.NumVariables())
	assert.Equal(t, 4, m.NumConstraints())
}

func TestAllocateLoadMatchesDirect(t *testing.T) {
	src := populatedSource(t)

	direct := testutil.New()
	directMap, err := Copy(direct, src, func(o *Options) {
		o.SkipNames = true
	})
	require.NoError(t, err)

	twoPhase := testutil.NewAllocate()
	twoPhaseMap, err := Copy(twoPhase, src, func(o *Options) {
		o.SkipNames = true
	})
	require.NoError(t, err)

	// Identical resulting index correspondence.
	for _, vi := range src.ListVariables() {
		a, ok := directMap.SolverVariable(vi)
		require.True(t, ok)
		b, ok := twoPhaseMap.SolverVariable(vi)
		require.True(t, ok)
		assert.Equal(t, a, b)
	}
	for _, kind := range src.ListConstraintKinds() {
		for _, ci := range src.ListConstraints(kind) {
			a, ok := directMap.SolverConstraint(ci)
			require.True(t, ok)
			b, ok := twoPhaseMap.SolverConstraint(ci)
			require.True(t, ok)
			assert.Equal(t, a, b)
		}
	}

	// Identical final state.
	requireEqualUpToRemap(t, twoPhase, src, twoPhaseMap)
}

func TestCopyWithNames(t *testing.T) {
	src := populatedSource(t)
	dst := cache.New()

	m, err := Copy(dst, src)
	require.NoError(t, err)

	name, err := dst.Get(model.ModelName{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "diet", name)

	srcX, err := src.VariableByName("x")
	require.NoError(t, err)
	dstX, ok := m.SolverVariable(srcX)
	require.True(t, ok)

	gotX, err := dst.VariableByName("x")
	require.NoError(t, err)
	assert.Equal(t, dstX, gotX)

	_, err = dst.ConstraintByName("binary_x")
	require.NoError(t, err)
}

func TestCopySkipNames(t *testing.T) {
	src := populatedSource(t)
	dst := cache.New()

	_, err := Copy(dst, src, func(o *Options) {
		o.SkipNames = true
	})
	require.NoError(t, err)

	name, err := dst.Get(model.ModelName{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "", name)

	_, err = dst.VariableByName("x")
	assert.ErrorIs(t, err, cache.ErrNameNotFound)
}

func TestCopyUnsupportedConstraintKind(t *testing.T) {
	src := populatedSource(t)
	rejected := model.Kind(model.FunctionScalarQuadratic, model.SetEqualTo)

	for name, dst := range map[string]Destination{
		"direct": testutil.New(func(o *testutil.Options) {
			o.UnsupportedKinds = []model.ConstraintKind{rejected}
		}),
		"allocate_load": testutil.NewAllocate(func(o *testutil.Options) {
			o.UnsupportedKinds = []model.ConstraintKind{rejected}
		}),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Copy(dst, src, func(o *Options) {
				o.SkipNames = true
			})

			var uce *model.UnsupportedConstraintError
			require.ErrorAs(t, err, &uce)
			assert.Equal(t, rejected, uce.Kind)
		})
	}
}

func TestCopyUnsupportedAttribute(t *testing.T) {
	src := populatedSource(t)
	dst := testutil.New(func(o *testutil.Options) {
		o.UnsupportedAttributes = []model.Attribute{model.ObjectiveSense{}}
	})

	_, err := Copy(dst, src, func(o *Options) {
		o.SkipNames = true
	})

	var uae *model.UnsupportedAttributeError
	require.ErrorAs(t, err, &uae)
}
