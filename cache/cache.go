package cache

import (
	"errors"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/optigo/model"
)

var (
	// ErrNameNotFound is returned by name lookup when no element carries
	// the requested name.
	ErrNameNotFound = errors.New("no element with that name")

	// ErrDuplicateName is returned by name lookup when more than one
	// element carries the requested name.
	ErrDuplicateName = errors.New("name is ambiguous")
)

type constraintEntry struct {
	function model.Function
	set      model.Set
	name     string
}

// constraintStore holds the constraints of one (function, set) kind.
// Storage is partitioned by kind, so index values restart at zero per kind.
type constraintStore struct {
	next    int64
	order   []int64 // creation order of live values
	live    *roaring64.Bitmap
	entries map[int64]*constraintEntry
}

func newConstraintStore() *constraintStore {
	return &constraintStore{
		live:    roaring64.New(),
		entries: make(map[int64]*constraintEntry),
	}
}

// Model is an in-memory incremental model store. The zero value is not
// usable; use New.
//
// A Model is not safe for concurrent use.
type Model struct {
	name string

	nextVariable int64
	varOrder     []model.VariableIndex
	liveVars     *roaring64.Bitmap
	varNames     map[model.VariableIndex]string

	kindOrder   []model.ConstraintKind
	constraints map[model.ConstraintKind]*constraintStore

	sense        model.Sense
	objective    model.Function
	objectiveSet bool
}

// New creates an empty Model.
func New() *Model {
	m := &Model{}
	m.Empty()
	return m
}

// Empty implements model.Writer. It is idempotent; afterward IsEmpty
// reports true and all previously issued indices are invalid.
func (m *Model) Empty() {
	m.name = ""
	m.nextVariable = 0
	m.varOrder = nil
	m.liveVars = roaring64.New()
	m.varNames = make(map[model.VariableIndex]string)
	m.kindOrder = nil
	m.constraints = make(map[model.ConstraintKind]*constraintStore)
	m.sense = model.FeasibilitySense
	m.objective = nil
	m.objectiveSet = false
}

// IsEmpty implements model.Reader.
func (m *Model) IsEmpty() bool {
	if m.liveVars.GetCardinality() > 0 || m.name != "" {
		return false
	}
	for _, store := range m.constraints {
		if store.live.GetCardinality() > 0 {
			return false
		}
	}
	return m.sense == model.FeasibilitySense && !m.objectiveSet
}

// AddVariable implements model.Writer.
func (m *Model) AddVariable() (model.VariableIndex, error) {
	vi := model.VariableIndex(m.nextVariable)
	m.nextVariable++
	m.varOrder = append(m.varOrder, vi)
	m.liveVars.Add(uint64(vi))
	return vi, nil
}

// AddVariables implements model.Writer.
func (m *Model) AddVariables(n int) ([]model.VariableIndex, error) {
	out := make([]model.VariableIndex, n)
	for i := range out {
		vi, err := m.AddVariable()
		if err != nil {
			return nil, err
		}
		out[i] = vi
	}
	return out, nil
}

// ListVariables implements model.Reader.
func (m *Model) ListVariables() []model.VariableIndex {
	out := make([]model.VariableIndex, len(m.varOrder))
	copy(out, m.varOrder)
	return out
}

// NumberOfVariables implements model.Reader.
func (m *Model) NumberOfVariables() int {
	return int(m.liveVars.GetCardinality())
}

// AddConstraint implements model.Writer. Every variable referenced by f
// must be live.
func (m *Model) AddConstraint(f model.Function, s model.Set) (model.ConstraintIndex, error) {
	if err := m.validateFunction(f); err != nil {
		return model.ConstraintIndex{}, err
	}

	kind := model.KindOf(f, s)
	store, ok := m.constraints[kind]
	if !ok {
		store = newConstraintStore()
		m.constraints[kind] = store
		m.kindOrder = append(m.kindOrder, kind)
	}

	value := store.next
	store.next++
	store.order = append(store.order, value)
	store.live.Add(uint64(value))
	store.entries[value] = &constraintEntry{function: f.Clone(), set: s}

	return model.ConstraintIndex{Kind: kind, Value: value}, nil
}

// ListConstraintKinds implements model.Reader.
func (m *Model) ListConstraintKinds() []model.ConstraintKind {
	var out []model.ConstraintKind
	for _, kind := range m.kindOrder {
		if m.constraints[kind].live.GetCardinality() > 0 {
			out = append(out, kind)
		}
	}
	return out
}

// ListConstraints implements model.Reader.
func (m *Model) ListConstraints(kind model.ConstraintKind) []model.ConstraintIndex {
	store, ok := m.constraints[kind]
	if !ok {
		return nil
	}
	out := make([]model.ConstraintIndex, 0, len(store.order))
	for _, value := range store.order {
		out = append(out, model.ConstraintIndex{Kind: kind, Value: value})
	}
	return out
}

// NumberOfConstraints implements model.Reader.
func (m *Model) NumberOfConstraints(kind model.ConstraintKind) int {
	store, ok := m.constraints[kind]
	if !ok {
		return 0
	}
	return int(store.live.GetCardinality())
}

// ConstraintFunction implements model.Reader.
func (m *Model) ConstraintFunction(ci model.ConstraintIndex) (model.Function, error) {
	entry, err := m.constraintEntry(ci)
	if err != nil {
		return nil, err
	}
	return entry.function.Clone(), nil
}

// ConstraintSet implements model.Reader.
func (m *Model) ConstraintSet(ci model.ConstraintIndex) (model.Set, error) {
	entry, err := m.constraintEntry(ci)
	if err != nil {
		return nil, err
	}
	return entry.set, nil
}

// Delete implements model.Writer. Deleting a variable removes its terms
// from every stored function and deletes the single-variable constraints
// bound to it.
func (m *Model) Delete(index model.Index) error {
	switch idx := index.(type) {
	case model.VariableIndex:
		return m.deleteVariable(idx)
	case model.ConstraintIndex:
		return m.deleteConstraint(idx)
	default:
		return &model.InvalidIndexError{Index: index}
	}
}

func (m *Model) deleteVariable(vi model.VariableIndex) error {
	if !m.liveVars.Contains(uint64(vi)) {
		return &model.InvalidIndexError{Index: vi}
	}

	m.liveVars.Remove(uint64(vi))
	delete(m.varNames, vi)
	for i, v := range m.varOrder {
		if v == vi {
			m.varOrder = append(m.varOrder[:i], m.varOrder[i+1:]...)
			break
		}
	}

	// Cascade: drop single-variable constraints bound to vi, then filter
	// the variable's terms out of every remaining function.
	for kind, store := range m.constraints {
		if kind.Function != model.FunctionVariable {
			continue
		}
		for _, value := range append([]int64(nil), store.order...) {
			entry := store.entries[value]
			if v, ok := entry.function.(model.Variable); ok && v.Index == vi {
				_ = m.deleteConstraint(model.ConstraintIndex{Kind: kind, Value: value})
			}
		}
	}
	for _, store := range m.constraints {
		for _, entry := range store.entries {
			entry.function = dropVariable(entry.function, vi)
		}
	}
	if m.objective != nil {
		m.objective = dropVariable(m.objective, vi)
	}

	return nil
}

func (m *Model) deleteConstraint(ci model.ConstraintIndex) error {
	store, ok := m.constraints[ci.Kind]
	if !ok || !store.live.Contains(uint64(ci.Value)) {
		return &model.InvalidIndexError{Index: ci}
	}

	store.live.Remove(uint64(ci.Value))
	delete(store.entries, ci.Value)
	for i, value := range store.order {
		if value == ci.Value {
			store.order = append(store.order[:i], store.order[i+1:]...)
			break
		}
	}

	return nil
}

// Modify implements model.Writer.
func (m *Model) Modify(ci model.ConstraintIndex, change model.Modification) error {
	entry, err := m.constraintEntry(ci)
	if err != nil {
		return err
	}

	modified, err := model.ApplyModification(entry.function, change)
	if err != nil {
		return err
	}
	entry.function = modified

	return nil
}

// ModifyObjective implements model.Writer. Modifying an unset objective
// treats it as the zero affine function.
func (m *Model) ModifyObjective(change model.Modification) error {
	objective := m.objective
	if objective == nil {
		objective = model.ScalarAffine{}
	}

	modified, err := model.ApplyModification(objective, change)
	if err != nil {
		return err
	}
	m.objective = modified
	m.objectiveSet = true

	return nil
}

// Set implements model.Writer.
func (m *Model) Set(attr model.Attribute, target model.Index, value any) error {
	switch attr.(type) {
	case model.ModelName:
		name, ok := value.(string)
		if !ok {
			return &model.UnsupportedAttributeError{Attr: attr}
		}
		m.name = name
		return nil
	case model.ObjectiveSense:
		sense, ok := value.(model.Sense)
		if !ok {
			return &model.UnsupportedAttributeError{Attr: attr}
		}
		m.sense = sense
		return nil
	case model.ObjectiveFunction:
		f, ok := value.(model.Function)
		if !ok {
			return &model.UnsupportedAttributeError{Attr: attr}
		}
		if err := m.validateFunction(f); err != nil {
			return err
		}
		m.objective = f.Clone()
		m.objectiveSet = true
		return nil
	case model.VariableName:
		vi, ok := target.(model.VariableIndex)
		if !ok || !m.liveVars.Contains(uint64(vi)) {
			return &model.InvalidIndexError{Index: target}
		}
		name, ok := value.(string)
		if !ok {
			return &model.UnsupportedAttributeError{Attr: attr}
		}
		m.varNames[vi] = name
		return nil
	case model.ConstraintName:
		ci, ok := target.(model.ConstraintIndex)
		if !ok {
			return &model.InvalidIndexError{Index: target}
		}
		entry, err := m.constraintEntry(ci)
		if err != nil {
			return err
		}
		name, ok := value.(string)
		if !ok {
			return &model.UnsupportedAttributeError{Attr: attr}
		}
		entry.name = name
		return nil
	default:
		return &model.UnsupportedAttributeError{Attr: attr}
	}
}

// Get implements model.Reader.
func (m *Model) Get(attr model.Attribute, target model.Index) (any, error) {
	switch a := attr.(type) {
	case model.ModelName:
		return m.name, nil
	case model.ObjectiveSense:
		return m.sense, nil
	case model.ObjectiveFunction:
		if m.objective == nil {
			return model.ScalarAffine{}, nil
		}
		return m.objective.Clone(), nil
	case model.NumberOfVariables:
		return m.NumberOfVariables(), nil
	case model.NumberOfConstraints:
		return m.NumberOfConstraints(a.Kind), nil
	case model.ListOfConstraintKinds:
		return m.ListConstraintKinds(), nil
	case model.VariableName:
		vi, ok := target.(model.VariableIndex)
		if !ok || !m.liveVars.Contains(uint64(vi)) {
			return nil, &model.InvalidIndexError{Index: target}
		}
		return m.varNames[vi], nil
	case model.ConstraintName:
		ci, ok := target.(model.ConstraintIndex)
		if !ok {
			return nil, &model.InvalidIndexError{Index: target}
		}
		entry, err := m.constraintEntry(ci)
		if err != nil {
			return nil, err
		}
		return entry.name, nil
	default:
		return nil, &model.UnsupportedAttributeError{Attr: attr}
	}
}

// CanGet implements model.Reader. Result attributes are never answerable
// by a model store.
func (m *Model) CanGet(attr model.Attribute, target model.Index) bool {
	if model.IsResultAttribute(attr) {
		return false
	}
	_, err := m.Get(attr, target)
	return err == nil
}

// Supports implements model.Writer. Every settable non-result attribute is
// supported.
func (m *Model) Supports(attr model.Attribute) bool {
	switch attr.(type) {
	case model.ModelName, model.ObjectiveSense, model.ObjectiveFunction,
		model.VariableName, model.ConstraintName:
		return true
	default:
		return false
	}
}

// SupportsConstraint implements model.Writer. The cache accepts every
// constraint kind.
func (m *Model) SupportsConstraint(kind model.ConstraintKind) bool {
	return true
}

// VariableByName returns the variable carrying name. Duplicate names are
// detected at lookup time, not at Set time.
func (m *Model) VariableByName(name string) (model.VariableIndex, error) {
	var (
		found model.VariableIndex
		count int
	)
	for vi, n := range m.varNames {
		if n == name {
			found = vi
			count++
		}
	}
	switch count {
	case 0:
		return 0, ErrNameNotFound
	case 1:
		return found, nil
	default:
		return 0, ErrDuplicateName
	}
}

// ConstraintByName returns the constraint carrying name, searching across
// all kinds. Duplicate names are detected at lookup time.
func (m *Model) ConstraintByName(name string) (model.ConstraintIndex, error) {
	var (
		found model.ConstraintIndex
		count int
	)
	for kind, store := range m.constraints {
		for value, entry := range store.entries {
			if entry.name == name && entry.name != "" {
				found = model.ConstraintIndex{Kind: kind, Value: value}
				count++
			}
		}
	}
	switch count {
	case 0:
		return model.ConstraintIndex{}, ErrNameNotFound
	case 1:
		return found, nil
	default:
		return model.ConstraintIndex{}, ErrDuplicateName
	}
}

func (m *Model) constraintEntry(ci model.ConstraintIndex) (*constraintEntry, error) {
	store, ok := m.constraints[ci.Kind]
	if !ok || !store.live.Contains(uint64(ci.Value)) {
		return nil, &model.InvalidIndexError{Index: ci}
	}
	return store.entries[ci.Value], nil
}

// validateFunction checks that every variable referenced by f is live.
func (m *Model) validateFunction(f model.Function) error {
	_, err := model.RemapFunction(f, func(vi model.VariableIndex) (model.VariableIndex, bool) {
		return vi, m.liveVars.Contains(uint64(vi))
	})
	return err
}

// dropVariable filters vi's terms out of f.
func dropVariable(f model.Function, vi model.VariableIndex) model.Function {
	switch fn := f.(type) {
	case model.ScalarAffine:
		out := fn.Clone().(model.ScalarAffine)
		out.Terms = filterAffine(out.Terms, vi)
		return out
	case model.ScalarQuadratic:
		out := fn.Clone().(model.ScalarQuadratic)
		out.AffineTerms = filterAffine(out.AffineTerms, vi)
		qt := out.QuadraticTerms[:0]
		for _, t := range out.QuadraticTerms {
			if t.Variable1 != vi && t.Variable2 != vi {
				qt = append(qt, t)
			}
		}
		out.QuadraticTerms = qt
		return out
	default:
		return f
	}
}

func filterAffine(terms []model.AffineTerm, vi model.VariableIndex) []model.AffineTerm {
	out := terms[:0]
	for _, t := range terms {
		if t.Variable != vi {
			out = append(out, t)
		}
	}
	return out
}
