// Package pool implements the worker pool the spec's collection
// operation engine uses for its optional parallel fan-out: a fixed
// number of workers, a single join point per call, and first-error
// cancellation of the rest of the batch.
//
// Pool deliberately does not expose anything resembling a task queue or
// persistent goroutines. Each Join call is the entire unit of
// parallelism the operation engine needs — there is no cross-call
// state — so the default implementation is a thin wrapper over
// golang.org/x/sync/errgroup rather than a hand-rolled scheduler.
package pool
