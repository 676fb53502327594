package ops

import (
	"sort"

	"github.com/macropower/vtree/builder"
	"github.com/macropower/vtree/value"
)

// concat requires every item in args.Items to share in's collection
// kind, and produces in followed by each item's own elements in order.
func concat(b *builder.Builder, flags Flags, in value.V, args Args) value.V {
	kind := b.TypeOf(in)
	if kind != value.KindSequence && kind != value.KindMapping {
		return value.Invalid
	}

	isMapping := kind == value.KindMapping
	out := append([]value.V{}, rawItems(b, isMapping, in)...)

	for _, it := range args.Items {
		if b.TypeOf(it) != kind {
			return value.Invalid
		}

		out = append(out, rawItems(b, isMapping, it)...)
	}

	return rebuild(b, isMapping, out)
}

// reverse reverses element order for a sequence, or whole (key, value)
// pairs for a mapping. A naive reverse of the flattened pair list would
// pair each key with its neighbor's value instead, which is the bug the
// original implementation of this operation had.
func reverse(b *builder.Builder, in value.V) value.V {
	switch b.TypeOf(in) {
	case value.KindSequence:
		items := b.SequenceItems(in)
		out := make([]value.V, len(items))

		for i, it := range items {
			out[len(items)-1-i] = it
		}

		return b.Sequence(out)

	case value.KindMapping:
		pairs := b.MappingPairs(in)
		n := len(pairs) / 2
		out := make([]value.V, len(pairs))

		for i := 0; i < n; i++ {
			src := n - 1 - i
			out[i*2], out[i*2+1] = pairs[src*2], pairs[src*2+1]
		}

		return b.Mapping(out)

	default:
		return value.Invalid
	}
}

// unique dedups a sequence by Compare equality, preserving the first
// occurrence of each distinct value.
func unique(b *builder.Builder, in value.V) value.V {
	if b.TypeOf(in) != value.KindSequence {
		return value.Invalid
	}

	items := b.SequenceItems(in)
	out := make([]value.V, 0, len(items))

	for _, it := range items {
		dup := false

		for _, seen := range out {
			if b.Compare(it, seen) == 0 {
				dup = true

				break
			}
		}

		if !dup {
			out = append(out, it)
		}
	}

	return b.Sequence(out)
}

// sortOp orders a sequence by Compare, or a mapping's pairs by key,
// stably in both cases.
func sortOp(b *builder.Builder, in value.V) value.V {
	switch b.TypeOf(in) {
	case value.KindSequence:
		items := append([]value.V{}, b.SequenceItems(in)...)
		sort.SliceStable(items, func(i, j int) bool {
			return b.Compare(items[i], items[j]) < 0
		})

		return b.Sequence(items)

	case value.KindMapping:
		pairs := b.MappingPairs(in)
		n := len(pairs) / 2
		idx := make([]int, n)

		for i := range idx {
			idx[i] = i
		}

		sort.SliceStable(idx, func(i, j int) bool {
			return b.Compare(pairs[idx[i]*2], pairs[idx[j]*2]) < 0
		})

		out := make([]value.V, 0, len(pairs))
		for _, i := range idx {
			out = append(out, pairs[i*2], pairs[i*2+1])
		}

		return b.Mapping(out)

	default:
		return value.Invalid
	}
}

// setOp treats args.Items as (index, value) pairs for a sequence, padding
// any intermediate slots the highest index skips past with NULL, or as
// (key, value) pairs equivalent to assoc for a mapping.
func setOp(b *builder.Builder, flags Flags, in value.V, args Args) value.V {
	if len(args.Items)%2 != 0 {
		return value.Invalid
	}

	switch b.TypeOf(in) {
	case value.KindSequence:
		items := append([]value.V{}, b.SequenceItems(in)...)

		for i := 0; i < len(args.Items); i += 2 {
			idx := b.Int64(args.Items[i])
			if idx < 0 {
				return value.Invalid
			}

			for int64(len(items)) <= idx {
				items = append(items, b.Null())
			}

			items[idx] = args.Items[i+1]
		}

		return b.Sequence(items)

	case value.KindMapping:
		return assoc(b, flags, in, args)

	default:
		return value.Invalid
	}
}
