// Package ops implements the collection operation engine: a single
// dispatch entry point that builds, splices, queries, transforms, and
// (de)serializes value.V collections against a caller-owned Builder.
//
// Every operation is pure: inputs are read, never mutated, and results
// are freshly interned (or, for a failure of any kind, value.Invalid).
// There is exactly one way an operation fails, which matches the calling
// convention the rest of this codebase already uses throughout builder:
// no error return, just an Invalid result the caller checks for.
package ops
