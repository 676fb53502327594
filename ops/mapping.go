package ops

import (
	"github.com/macropower/vtree/builder"
	"github.com/macropower/vtree/value"
)

// assoc replaces the value at an existing key (by Compare) or appends a
// new key,value pair at the tail, preserving original key order and
// appending genuinely new keys in the order supplied. args.Items is a
// flattened key,value,... list.
func assoc(b *builder.Builder, flags Flags, in value.V, args Args) value.V {
	if b.TypeOf(in) != value.KindMapping || len(args.Items)%2 != 0 {
		return value.Invalid
	}

	pairs := append([]value.V{}, b.MappingPairs(in)...)

	for i := 0; i < len(args.Items); i += 2 {
		k, v := args.Items[i], args.Items[i+1]

		replaced := false

		for j := 0; j < len(pairs); j += 2 {
			if b.Compare(pairs[j], k) == 0 {
				pairs[j+1] = v
				replaced = true

				break
			}
		}

		if !replaced {
			pairs = append(pairs, k, v)
		}
	}

	return b.Mapping(pairs)
}

// disassoc removes each key in args.Items (treated as a flat key list,
// not pairs) if present. If nothing was removed, in is returned
// unchanged.
func disassoc(b *builder.Builder, in value.V, args Args) value.V {
	if b.TypeOf(in) != value.KindMapping {
		return value.Invalid
	}

	pairs := b.MappingPairs(in)
	out := make([]value.V, 0, len(pairs))
	removed := false

	for i := 0; i < len(pairs); i += 2 {
		k, v := pairs[i], pairs[i+1]

		drop := false

		for _, rk := range args.Items {
			if b.Compare(k, rk) == 0 {
				drop = true

				break
			}
		}

		if drop {
			removed = true

			continue
		}

		out = append(out, k, v)
	}

	if !removed {
		return in
	}

	return b.Mapping(out)
}

// merge unions in with each mapping in args.Items by key, later
// definitions (later items, and within an item, its own key order)
// overriding earlier ones.
func merge(b *builder.Builder, flags Flags, in value.V, args Args) value.V {
	if b.TypeOf(in) != value.KindMapping {
		return value.Invalid
	}

	result := in

	for _, m := range args.Items {
		if b.TypeOf(m) != value.KindMapping {
			return value.Invalid
		}

		result = assoc(b, flags, result, Args{Items: b.MappingPairs(m)})
		if result.IsInvalid() {
			return value.Invalid
		}
	}

	return result
}

// keysOp, valuesOp, and itemsOp turn a mapping into sequences: keys,
// values, and (key,value) sub-sequences respectively.
func keysOp(b *builder.Builder, in value.V) value.V {
	if b.TypeOf(in) != value.KindMapping {
		return value.Invalid
	}

	pairs := b.MappingPairs(in)
	out := make([]value.V, 0, len(pairs)/2)

	for i := 0; i < len(pairs); i += 2 {
		out = append(out, pairs[i])
	}

	return b.Sequence(out)
}

func valuesOp(b *builder.Builder, in value.V) value.V {
	if b.TypeOf(in) != value.KindMapping {
		return value.Invalid
	}

	pairs := b.MappingPairs(in)
	out := make([]value.V, 0, len(pairs)/2)

	for i := 1; i < len(pairs); i += 2 {
		out = append(out, pairs[i])
	}

	return b.Sequence(out)
}

func itemsOp(b *builder.Builder, in value.V) value.V {
	if b.TypeOf(in) != value.KindMapping {
		return value.Invalid
	}

	pairs := b.MappingPairs(in)
	out := make([]value.V, 0, len(pairs)/2)

	for i := 0; i < len(pairs); i += 2 {
		out = append(out, b.Sequence([]value.V{pairs[i], pairs[i+1]}))
	}

	return b.Sequence(out)
}
