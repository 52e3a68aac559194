// Package indexmap maintains the bidirectional translation between a model
// cache's index space and an attached solver's index space.
//
// The map is a bijection over its current domain: every entry present in
// one direction has exactly the corresponding entry in the other. It is
// rebuilt wholesale when a solver is attached via bulk copy and updated
// incrementally on add/delete while attached.
package indexmap

import "github.com/hupe1980/optigo/model"

// Map is a bijective two-way mapping over variable and constraint indices.
// The zero value is not usable; use New.
//
// A Map is exclusively owned by its caching layer and is not safe for
// concurrent use.
type Map struct {
	varToSolver map[model.VariableIndex]model.VariableIndex
	varToModel  map[model.VariableIndex]model.VariableIndex
	conToSolver map[model.ConstraintIndex]model.ConstraintIndex
	conToModel  map[model.ConstraintIndex]model.ConstraintIndex
}

// New creates an empty Map.
func New() *Map {
	m := &Map{}
	m.Clear()
	return m
}

// Clear removes all entries in both directions.
func (m *Map) Clear() {
	m.varToSolver = make(map[model.VariableIndex]model.VariableIndex)
	m.varToModel = make(map[model.VariableIndex]model.VariableIndex)
	m.conToSolver = make(map[model.ConstraintIndex]model.ConstraintIndex)
	m.conToModel = make(map[model.ConstraintIndex]model.ConstraintIndex)
}

// InsertVariable records the correspondence cacheIdx <-> solverIdx.
func (m *Map) InsertVariable(cacheIdx, solverIdx model.VariableIndex) {
	m.varToSolver[cacheIdx] = solverIdx
	m.varToModel[solverIdx] = cacheIdx
}

// DeleteVariable removes the entry for cacheIdx from both directions.
func (m *Map) DeleteVariable(cacheIdx model.VariableIndex) {
	if solverIdx, ok := m.varToSolver[cacheIdx]; ok {
		delete(m.varToSolver, cacheIdx)
		delete(m.varToModel, solverIdx)
	}
}

// InsertConstraint records the correspondence cacheIdx <-> solverIdx.
func (m *Map) InsertConstraint(cacheIdx, solverIdx model.ConstraintIndex) {
	m.conToSolver[cacheIdx] = solverIdx
	m.conToModel[solverIdx] = cacheIdx
}

// DeleteConstraint removes the entry for cacheIdx from both directions.
func (m *Map) DeleteConstraint(cacheIdx model.ConstraintIndex) {
	if solverIdx, ok := m.conToSolver[cacheIdx]; ok {
		delete(m.conToSolver, cacheIdx)
		delete(m.conToModel, solverIdx)
	}
}

// SolverVariable translates a cache-space variable index to solver space.
func (m *Map) SolverVariable(cacheIdx model.VariableIndex) (model.VariableIndex, bool) {
	solverIdx, ok := m.varToSolver[cacheIdx]
	return solverIdx, ok
}

// ModelVariable translates a solver-space variable index to cache space.
func (m *Map) ModelVariable(solverIdx model.VariableIndex) (model.VariableIndex, bool) {
	cacheIdx, ok := m.varToModel[solverIdx]
	return cacheIdx, ok
}

// SolverConstraint translates a cache-space constraint index to solver space.
func (m *Map) SolverConstraint(cacheIdx model.ConstraintIndex) (model.ConstraintIndex, bool) {
	solverIdx, ok := m.conToSolver[cacheIdx]
	return solverIdx, ok
}

// ModelConstraint translates a solver-space constraint index to cache space.
func (m *Map) ModelConstraint(solverIdx model.ConstraintIndex) (model.ConstraintIndex, bool) {
	cacheIdx, ok := m.conToModel[solverIdx]
	return cacheIdx, ok
}

// ToSolver rewrites every variable index embedded in f from cache space to
// solver space.
func (m *Map) ToSolver(f model.Function) (model.Function, error) {
	return model.RemapFunction(f, m.SolverVariable)
}

// ToModel rewrites every variable index embedded in f from solver space to
// cache space.
func (m *Map) ToModel(f model.Function) (model.Function, error) {
	return model.RemapFunction(f, m.ModelVariable)
}

// NumVariables returns the number of variable entries.
func (m *Map) NumVariables() int { return len(m.varToSolver) }

// NumConstraints returns the number of constraint entries.
func (m *Map) NumConstraints() int { return len(m.conToSolver) }
