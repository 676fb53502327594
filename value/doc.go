// Package value defines V, the single machine-word handle at the core of
// vtree's document representation, and the pure, allocation-free accessors
// over it.
//
// A V is a tagged 64-bit word. The low 4 bits are a [Tag] that discriminates
// between immediate values packed directly into the remaining 60 payload
// bits (null, true, false, small integer, reduced-precision float, short
// string) and out-of-line values whose payload bits instead hold an
// [arena.Ref] pointing at a payload record owned by some builder's arena.
//
// This package never allocates and never reads arena memory: every function
// here operates on the bit pattern of a V alone. Resolving an out-of-line V
// to its payload bytes, or unwrapping an indirect to find its effective
// [Kind], requires a builder and lives in package builder.
package value
