// Package bulkcopy implements the whole-model transfer protocol used when
// a solver is attached to a model cache.
//
// Copy walks the source's variables, attributes, constraints (grouped by
// kind, in the order the source reports them), and objective, adding each
// to the destination in that order, and returns the resulting bijective
// source-to-destination index correspondence as an indexmap.Map.
//
// Destinations that must know the problem size before values are loaded
// implement the optional Allocator interface; Copy detects this and uses a
// two-phase allocate-then-load protocol instead, producing an identical
// correspondence and final state.
package bulkcopy
