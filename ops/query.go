package ops

import (
	"github.com/macropower/vtree/builder"
	"github.com/macropower/vtree/value"
)

// containsOp reports membership: by element for a sequence, by key for a
// mapping.
func containsOp(b *builder.Builder, in value.V, args Args) value.V {
	switch b.TypeOf(in) {
	case value.KindSequence:
		for _, it := range b.SequenceItems(in) {
			if b.Compare(it, args.Key) == 0 {
				return b.Bool(true)
			}
		}

		return b.Bool(false)

	case value.KindMapping:
		pairs := b.MappingPairs(in)
		for i := 0; i < len(pairs); i += 2 {
			if b.Compare(pairs[i], args.Key) == 0 {
				return b.Bool(true)
			}
		}

		return b.Bool(false)

	default:
		return value.Invalid
	}
}

// getOp looks up args.Key: an index into a sequence, or the first
// equal-by-Compare key in a mapping. A miss returns Invalid, same as any
// other failure here, since the spec draws no distinction between "not
// found" and "malformed lookup" at this layer.
func getOp(b *builder.Builder, in value.V, args Args) value.V {
	switch b.TypeOf(in) {
	case value.KindSequence:
		items := b.SequenceItems(in)

		idx := b.Int64(args.Key)
		if idx < 0 || idx >= int64(len(items)) {
			return value.Invalid
		}

		return items[idx]

	case value.KindMapping:
		pairs := b.MappingPairs(in)
		for i := 0; i < len(pairs); i += 2 {
			if b.Compare(pairs[i], args.Key) == 0 {
				return pairs[i+1]
			}
		}

		return value.Invalid

	default:
		return value.Invalid
	}
}

// getAt and setAt are sequence-only index access/replacement.
func getAt(b *builder.Builder, in value.V, args Args) value.V {
	if b.TypeOf(in) != value.KindSequence {
		return value.Invalid
	}

	items := b.SequenceItems(in)
	if args.Index < 0 || args.Index >= len(items) {
		return value.Invalid
	}

	return items[args.Index]
}

func setAt(b *builder.Builder, flags Flags, in value.V, args Args) value.V {
	if b.TypeOf(in) != value.KindSequence {
		return value.Invalid
	}

	items := append([]value.V{}, b.SequenceItems(in)...)
	if args.Index < 0 || args.Index >= len(items) {
		return value.Invalid
	}

	items[args.Index] = args.Value

	return b.Sequence(items)
}

// pathKeys flattens args.Path, expanding a key that is itself a sequence
// inline when FlattenKeys is set, so a single path element can stand in
// for several descent steps.
func pathKeys(b *builder.Builder, flags Flags, path []value.V) []value.V {
	if !flags.has(FlattenKeys) {
		return path
	}

	out := make([]value.V, 0, len(path))

	for _, k := range path {
		if b.TypeOf(k) == value.KindSequence {
			out = append(out, b.SequenceItems(k)...)

			continue
		}

		out = append(out, k)
	}

	return out
}

// getAtPath walks a chain of keys through nested collections.
func getAtPath(b *builder.Builder, flags Flags, in value.V, args Args) value.V {
	cur := in

	for _, k := range pathKeys(b, flags, args.Path) {
		cur = getOp(b, cur, Args{Key: k})
		if cur.IsInvalid() {
			return value.Invalid
		}
	}

	return cur
}

// setAtPath walks down the path recording each container it passes
// through, then walks back up reconstructing every ancestor container
// around its (possibly just-replaced) child. Any failed descent aborts
// immediately with Invalid; there is no diagnostic tracing.
func setAtPath(b *builder.Builder, flags Flags, in value.V, args Args) value.V {
	path := pathKeys(b, flags, args.Path)
	if len(path) == 0 {
		return args.Value
	}

	containers := make([]value.V, len(path)+1)
	containers[0] = in

	cur := in

	for i, k := range path {
		next := getOp(b, cur, Args{Key: k})
		if next.IsInvalid() && i != len(path)-1 {
			return value.Invalid
		}

		containers[i+1] = next
		cur = next
	}

	updated := args.Value

	for i := len(path) - 1; i >= 0; i-- {
		container := containers[i]
		key := path[i]

		switch b.TypeOf(container) {
		case value.KindSequence:
			idx := b.Int64(key)
			if idx < 0 {
				return value.Invalid
			}

			updated = setOp(b, 0, container, Args{Items: []value.V{key, updated}})

		case value.KindMapping:
			updated = assoc(b, 0, container, Args{Items: []value.V{key, updated}})

		default:
			return value.Invalid
		}

		if updated.IsInvalid() {
			return value.Invalid
		}
	}

	return updated
}
