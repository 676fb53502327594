package ops

import (
	"github.com/macropower/vtree/builder"
	"github.com/macropower/vtree/value"
)

// collectionUnit reports how many flattened V slots make up one logical
// element of in: 1 for a sequence, 2 for a mapping's key,value pairs
// unless MapItemCount asks for raw per-slot addressing instead.
func collectionUnit(b *builder.Builder, flags Flags, in value.V) (unit int, isMapping bool, ok bool) {
	switch b.TypeOf(in) {
	case value.KindSequence:
		return 1, false, true
	case value.KindMapping:
		if flags.has(MapItemCount) {
			return 1, true, true
		}

		return 2, true, true
	default:
		return 0, false, false
	}
}

func rawItems(b *builder.Builder, isMapping bool, in value.V) []value.V {
	if isMapping {
		return b.MappingPairs(in)
	}

	return b.SequenceItems(in)
}

func rebuild(b *builder.Builder, isMapping bool, items []value.V) value.V {
	if isMapping {
		return b.Mapping(items)
	}

	return b.Sequence(items)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}

	return b
}

// insert splices args.Items into in at min(idx, len), in units of
// collectionUnit (whole pairs for a mapping, unless MapItemCount).
func insert(b *builder.Builder, flags Flags, in value.V, args Args) value.V {
	unit, isMapping, ok := collectionUnit(b, flags, in)
	if !ok || len(args.Items)%unit != 0 {
		return value.Invalid
	}

	items := rawItems(b, isMapping, in)
	at := minInt(args.Index*unit, len(items))

	out := make([]value.V, 0, len(items)+len(args.Items))
	out = append(out, items[:at]...)
	out = append(out, args.Items...)
	out = append(out, items[at:]...)

	return rebuild(b, isMapping, out)
}

// replace overwrites args.Count units starting at min(idx, len),
// growing in if the replacement run extends past its current end.
func replace(b *builder.Builder, flags Flags, in value.V, args Args) value.V {
	unit, isMapping, ok := collectionUnit(b, flags, in)
	if !ok || len(args.Items)%unit != 0 {
		return value.Invalid
	}

	items := rawItems(b, isMapping, in)
	at := minInt(args.Index*unit, len(items))
	end := minInt(at+args.Count*unit, len(items))

	out := make([]value.V, 0, len(items)+len(args.Items))
	out = append(out, items[:at]...)
	out = append(out, args.Items...)
	out = append(out, items[end:]...)

	return rebuild(b, isMapping, out)
}

// appendOp concatenates args.Items onto in's tail.
func appendOp(b *builder.Builder, flags Flags, in value.V, args Args) value.V {
	unit, isMapping, ok := collectionUnit(b, flags, in)
	if !ok || len(args.Items)%unit != 0 {
		return value.Invalid
	}

	items := rawItems(b, isMapping, in)
	out := make([]value.V, 0, len(items)+len(args.Items))
	out = append(out, items...)
	out = append(out, args.Items...)

	return rebuild(b, isMapping, out)
}
