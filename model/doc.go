// Package model defines the solver-independent vocabulary for optimization
// models: index handles, scalar functions, constraint sets, attributes,
// modifications, and the Reader/Writer contracts implemented by model
// stores and solver adapters.
//
// Indices are opaque, model-local handles. A VariableIndex is unique within
// its model for the lifetime of the variable and is never reused after
// deletion. A ConstraintIndex is unique only within its (function, set)
// kind; the same numeric value may legitimately appear under two different
// kinds without the indices comparing equal.
package model
