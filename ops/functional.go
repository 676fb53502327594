package ops

import (
	"context"
	"errors"

	"github.com/macropower/vtree/builder"
	"github.com/macropower/vtree/pool"
	"github.com/macropower/vtree/value"
)

// errAborted stands in for a user-callback INVALID inside a worker: it is
// never surfaced to the caller, only used to make errgroup cancel the
// rest of the batch the moment one worker's callback aborts.
var errAborted = errors.New("ops: callback aborted")

// workspaceElements gathers in's own elements followed by each same-kind
// item in args.Items, per the "iterate over in concatenated with each of
// args.items" rule shared by FILTER/MAP/MAP_FILTER/REDUCE. A mapping's
// elements are its pairs, each represented as a 2-item sequence so every
// caller-supplied callback sees one value.V per logical element
// regardless of collection kind, the same representation ITEMS uses.
func workspaceElements(b *builder.Builder, in value.V, args Args) (elems []value.V, isMapping bool, ok bool) {
	kind := b.TypeOf(in)
	if kind != value.KindSequence && kind != value.KindMapping {
		return nil, false, false
	}

	isMapping = kind == value.KindMapping

	gather := func(v value.V) []value.V {
		if !isMapping {
			return b.SequenceItems(v)
		}

		pairs := b.MappingPairs(v)
		out := make([]value.V, 0, len(pairs)/2)

		for i := 0; i < len(pairs); i += 2 {
			out = append(out, b.Sequence([]value.V{pairs[i], pairs[i+1]}))
		}

		return out
	}

	elems = append(elems, gather(in)...)

	for _, it := range args.Items {
		if b.TypeOf(it) != kind {
			return nil, false, false
		}

		elems = append(elems, gather(it)...)
	}

	return elems, isMapping, true
}

// rebuildElements turns a result element slice (sequence items, or
// mapping pairs each still wrapped as a 2-item sequence) back into the
// collection kind it came from.
func rebuildElements(b *builder.Builder, isMapping bool, elems []value.V) value.V {
	if !isMapping {
		return b.Sequence(elems)
	}

	pairs := make([]value.V, 0, len(elems)*2)

	for _, e := range elems {
		kv := b.SequenceItems(e)
		if len(kv) != 2 {
			return value.Invalid
		}

		pairs = append(pairs, kv[0], kv[1])
	}

	return b.Mapping(pairs)
}

func dispatchFunctional(b *builder.Builder, op Op, flags Flags, in value.V, args Args) value.V {
	elems, isMapping, ok := workspaceElements(b, in, args)
	if !ok {
		return value.Invalid
	}

	switch op {
	case Filter:
		return filterOp(b, flags, isMapping, elems, args)
	case Map:
		return mapOp(b, flags, isMapping, elems, args)
	case MapFilter:
		return mapFilterOp(b, flags, isMapping, elems, args)
	case Reduce:
		return reduceOp(b, flags, elems, args)
	default:
		return value.Invalid
	}
}

func wantParallel(flags Flags, n int) bool {
	return flags.has(Parallel) && n > parallelThreshold
}

func workerPool(args Args) pool.Pool {
	if args.Pool != nil {
		return args.Pool
	}

	return pool.New(pool.Config{})
}

// chunkBounds splits n items into parts contiguous, disjoint, pair-aligned
// (when unit==2) slices sized as evenly as possible.
func chunkBounds(n, parts, unit int) [][2]int {
	if parts < 1 {
		parts = 1
	}

	base := (n / unit) / parts
	rem := (n / unit) % parts

	bounds := make([][2]int, 0, parts)
	start := 0

	for i := 0; i < parts; i++ {
		count := base

		if i < rem {
			count++
		}

		end := start + count*unit
		if end > n {
			end = n
		}

		bounds = append(bounds, [2]int{start, end})
		start = end
	}

	return bounds
}

func filterOp(b *builder.Builder, flags Flags, isMapping bool, elems []value.V, args Args) value.V {
	if args.Predicate == nil {
		return value.Invalid
	}

	if !wantParallel(flags, len(elems)) {
		out := make([]value.V, 0, len(elems))

		for _, e := range elems {
			if args.Predicate(e) {
				out = append(out, e)
			}
		}

		return rebuildElements(b, isMapping, out)
	}

	// elems is already one V per logical element (a mapping's pairs are
	// pre-wrapped as 2-item sequences by workspaceElements), so chunking
	// is always unit-1 here regardless of collection kind.
	p := workerPool(args)
	bounds := chunkBounds(len(elems), p.NumThreads(), 1)
	results := make([][]value.V, len(bounds))

	works := make([]func() error, len(bounds))
	for i, bd := range bounds {
		i, bd := i, bd
		works[i] = func() error {
			local := make([]value.V, 0, bd[1]-bd[0])
			for _, e := range elems[bd[0]:bd[1]] {
				if args.Predicate(e) {
					local = append(local, e)
				}
			}

			results[i] = local

			return nil
		}
	}

	if err := p.Join(context.Background(), works); err != nil {
		return value.Invalid
	}

	out := make([]value.V, 0, len(elems))
	for _, r := range results {
		out = append(out, r...)
	}

	return rebuildElements(b, isMapping, out)
}

func mapOp(b *builder.Builder, flags Flags, isMapping bool, elems []value.V, args Args) value.V {
	if args.Transform == nil {
		return value.Invalid
	}

	if !wantParallel(flags, len(elems)) {
		out := make([]value.V, len(elems))

		for i, e := range elems {
			r := args.Transform(e)
			if r.IsInvalid() {
				return value.Invalid
			}

			out[i] = r
		}

		return rebuildElements(b, isMapping, out)
	}

	p := workerPool(args)
	bounds := chunkBounds(len(elems), p.NumThreads(), 1)
	out := make([]value.V, len(elems))

	works := make([]func() error, len(bounds))
	for i, bd := range bounds {
		bd := bd
		works[i] = func() error {
			for j := bd[0]; j < bd[1]; j++ {
				r := args.Transform(elems[j])
				if r.IsInvalid() {
					return errAborted
				}

				out[j] = r
			}

			return nil
		}
	}

	if err := p.Join(context.Background(), works); err != nil {
		return value.Invalid
	}

	return rebuildElements(b, isMapping, out)
}

func mapFilterOp(b *builder.Builder, flags Flags, isMapping bool, elems []value.V, args Args) value.V {
	if args.Transform == nil {
		return value.Invalid
	}

	if !wantParallel(flags, len(elems)) {
		out := make([]value.V, 0, len(elems))

		for _, e := range elems {
			r := args.Transform(e)
			if !r.IsInvalid() {
				out = append(out, r)
			}
		}

		return rebuildElements(b, isMapping, out)
	}

	p := workerPool(args)
	bounds := chunkBounds(len(elems), p.NumThreads(), 1)
	results := make([][]value.V, len(bounds))

	works := make([]func() error, len(bounds))
	for i, bd := range bounds {
		i, bd := i, bd
		works[i] = func() error {
			local := make([]value.V, 0, bd[1]-bd[0])

			for _, e := range elems[bd[0]:bd[1]] {
				r := args.Transform(e)
				if !r.IsInvalid() {
					local = append(local, r)
				}
			}

			results[i] = local

			return nil
		}
	}

	if err := p.Join(context.Background(), works); err != nil {
		return value.Invalid
	}

	out := make([]value.V, 0, len(elems))
	for _, r := range results {
		out = append(out, r...)
	}

	return rebuildElements(b, isMapping, out)
}

// reduceOp folds elems into a single accumulator seeded by args.Seed.
// The parallel path runs a two-phase reduce: each chunk folds locally
// from the seed, then the partial accumulators themselves fold together
// from the seed, matching the spec's "per-chunk local fold, then fold of
// partials from seed" rule rather than chaining chunk results pairwise.
func reduceOp(b *builder.Builder, flags Flags, elems []value.V, args Args) value.V {
	if args.Reducer == nil {
		return value.Invalid
	}

	if !wantParallel(flags, len(elems)) {
		acc := args.Seed
		for _, e := range elems {
			acc = args.Reducer(acc, e)
			if acc.IsInvalid() {
				return value.Invalid
			}
		}

		return acc
	}

	p := workerPool(args)
	bounds := chunkBounds(len(elems), p.NumThreads(), 1)
	partials := make([]value.V, len(bounds))

	works := make([]func() error, len(bounds))
	for i, bd := range bounds {
		i, bd := i, bd
		works[i] = func() error {
			acc := args.Seed

			for _, e := range elems[bd[0]:bd[1]] {
				acc = args.Reducer(acc, e)
				if acc.IsInvalid() {
					return errAborted
				}
			}

			partials[i] = acc

			return nil
		}
	}

	if err := p.Join(context.Background(), works); err != nil {
		return value.Invalid
	}

	acc := args.Seed
	for _, partial := range partials {
		acc = args.Reducer(acc, partial)
		if acc.IsInvalid() {
			return value.Invalid
		}
	}

	return acc
}
