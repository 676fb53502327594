package builder

import (
	"math"

	"github.com/macropower/vtree/value"
)

// Compare imposes a total order over values contained by this Builder (or
// its ancestors), returning -1, 0, or 1. The order is primarily by Kind,
// then by native value within a Kind.
//
// Sequence and mapping comparison is structural: elementwise, left to
// right, until the first difference or until the shorter one runs out
// (the shorter sorts first). A mapping is compared over its flattened
// key,value,... pairs in storage order, not a sorted order — two
// mappings holding the same pairs in different insertion order compare
// unequal, matching their unequal internal representation. This is one
// of the points the original spec left ambiguous; here it resolves to
// the same rule used for sequences rather than inventing a separate
// canonical-key-order pass.
//
// Two distinct but structurally identical mappings or sequences (possible
// on a non-deduplicating arena, where equal content can still occupy
// different Refs) compare equal: their Refs play no part in the order.
func (b *Builder) Compare(x, y value.V) int {
	kx, ky := b.TypeOf(x), b.TypeOf(y)
	if kx != ky {
		return cmpInt(int(kx), int(ky))
	}

	switch kx {
	case value.KindInvalid, value.KindNull:
		return 0
	case value.KindBool:
		return cmpBool(value.UnpackBool(x), value.UnpackBool(y))
	case value.KindInt:
		return b.cmpIntValues(x, y)
	case value.KindFloat:
		return cmpFloat64(b.Float64(x), b.Float64(y))
	case value.KindString:
		return cmpBytes(b.Bytes(x), b.Bytes(y))
	case value.KindSequence:
		return b.compareSeqs(b.readSequence(x), b.readSequence(y), x, y)
	case value.KindMapping:
		return b.compareSeqs(b.readMapping(x), b.readMapping(y), x, y)
	case value.KindAlias:
		_, _, ax, _ := b.readIndirect(x)
		_, _, ay, _ := b.readIndirect(y)

		return cmpBytes(b.Bytes(ax), b.Bytes(ay))
	default:
		return 0
	}
}

// cmpIntValues orders two KindInt values numerically. An unsigned value
// above math.MaxInt64 sorts after every signed one; an unsigned value
// within int64 range (Builder.Uint stores those out of line once they
// exceed 60 bits) compares as the int64 it equals; two unsigned values
// compare by their actual uint64 magnitude rather than a lossy int64
// reinterpretation.
func (b *Builder) cmpIntValues(x, y value.V) int {
	ux, uy := b.isUnsignedInt(x), b.isUnsignedInt(y)

	switch {
	case ux && uy:
		return cmpUint64(b.Uint64(x), b.Uint64(y))
	case ux && b.Uint64(x) > math.MaxInt64:
		return 1
	case uy && b.Uint64(y) > math.MaxInt64:
		return -1
	default:
		return cmpInt64(b.Int64(x), b.Int64(y))
	}
}

func (b *Builder) isUnsignedInt(v value.V) bool {
	return v.Tag() == value.TagOOLInt && b.IntIsUnsigned(v)
}

func (b *Builder) compareSeqs(xs, ys []value.V, x, y value.V) int {
	for i := 0; i < len(xs) && i < len(ys); i++ {
		if c := b.Compare(xs[i], ys[i]); c != 0 {
			return c
		}
	}

	return cmpInt(len(xs), len(ys))
}

func cmpBool(a, b bool) int {
	if a == b {
		return 0
	}

	if !a {
		return -1
	}

	return 1
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpBytes(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}

			return 1
		}
	}

	return cmpInt(len(a), len(b))
}
