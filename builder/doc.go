// Package builder implements the arena-owning builder described by the
// spec: the single authority over payload lifetime for a tree of
// [value.V] handles.
//
// A Builder wraps an [arena.Arena] (linear or deduplicating) and
// optionally chains to a parent Builder, mirroring the nested-scope usage
// pattern of a short-lived computation whose results must [Builder.Export]
// into a longer-lived parent. Every factory (Int, String, Sequence,
// Mapping, Indirect, ...) returns a handle already contained by the
// builder: out-of-line payloads are written through [Builder.Internalize],
// which recursively copies foreign sub-values in and shares storage with
// whatever the arena's dedup index already holds.
//
// Failure throughout this package is reported the way the spec mandates:
// by returning [value.Invalid], never a Go error. The arena façade below
// still returns ordinary errors for truly mechanical failures (bad
// alignment, size overflow); Builder swallows those at the boundary and
// turns them into Invalid, consistent with §7 of the spec ("errors
// propagate outward silently as INVALID").
package builder
