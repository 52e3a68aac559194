// Package testutil provides shared test collaborators.
//
// Optimizer is a scriptable in-memory solver adapter. Every index it hands
// out is xor-masked, so any code path that confuses cache-space and
// solver-space indices fails loudly in tests instead of silently working
// because the two spaces happen to coincide.
package testutil
