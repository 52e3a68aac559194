// Package cache provides the in-memory model store backing a
// CachingOptimizer.
//
// The store is fully capable: it accepts every constraint kind and every
// non-result attribute, supports incremental add/delete/modify, and is the
// authoritative home of the model's names and of the index space callers
// see. Indices are never reused after deletion; live-index membership is
// tracked with roaring bitmaps.
package cache
