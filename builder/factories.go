package builder

import (
	"fmt"
	"math"

	"github.com/macropower/vtree/arena"
	"github.com/macropower/vtree/value"
)

// packRef combines a tag and an arena Ref into an out-of-place V. Callers
// must only use it with one of the OOL/Sequence/Mapping/Indirect tags.
func packRef(tag value.Tag, ref arena.Ref) value.V {
	return withRef(value.V(tag), ref)
}

// Null returns the immediate null value. It never fails.
func (b *Builder) Null() value.V { return value.Null }

// Bool returns an immediate boolean. It never fails.
func (b *Builder) Bool(v bool) value.V { return value.Bool(v) }

// Int packs i as an immediate integer if it fits in 60 bits, otherwise
// interns a signed out-of-line payload.
func (b *Builder) Int(i int64) value.V {
	if v, ok := value.PackInt(i); ok {
		return v
	}

	return b.packOOLInt(uint64(i), false)
}

// Uint packs u as an immediate integer if its magnitude fits, otherwise
// interns an unsigned out-of-line payload (needed once u exceeds what a
// signed 60-bit payload can represent).
func (b *Builder) Uint(u uint64) value.V {
	if u <= math.MaxInt64 {
		if v, ok := value.PackInt(int64(u)); ok {
			return v
		}
	}

	return b.packOOLInt(u, true)
}

// Float packs f as an immediate reduced-precision float if the round trip
// through float32 is exact, otherwise interns a full-precision
// out-of-line float64 payload.
func (b *Builder) Float(f float64) value.V {
	if v, ok := value.PackFloat(f); ok {
		return v
	}

	return b.packOOLFloat(f)
}

// String packs s as an immediate short string if it fits in 7 bytes,
// otherwise interns an out-of-line string payload.
func (b *Builder) String(s string) value.V {
	return b.StringBytes([]byte(s))
}

// StringBytes is String for callers that already have a []byte.
func (b *Builder) StringBytes(s []byte) value.V {
	if v, ok := value.PackShortString(s); ok {
		return v
	}

	return b.packOOLString(s)
}

// StringFmt formats args per format and packs the result, per String.
func (b *Builder) StringFmt(format string, args ...any) value.V {
	return b.String(fmt.Sprintf(format, args...))
}

func (b *Builder) packOOLInt(bits uint64, unsigned bool) value.V {
	ref, err := b.alloc.Store(encodeOOLInt(bits, unsigned), 8)
	if err != nil {
		return value.Invalid
	}

	return packRef(value.TagOOLInt, ref)
}

func (b *Builder) packOOLFloat(f float64) value.V {
	ref, err := b.alloc.Store(encodeOOLFloat(f), 8)
	if err != nil {
		return value.Invalid
	}

	return packRef(value.TagOOLFloat, ref)
}

func (b *Builder) packOOLString(s []byte) value.V {
	ref, err := b.alloc.Store(encodeOOLString(s), 1)
	if err != nil {
		return value.Invalid
	}

	return packRef(value.TagOOLString, ref)
}

func (b *Builder) readOOLInt(v value.V) (bits uint64, unsigned bool) {
	a := b.resolveArena(refOf(v))
	if a == nil {
		return 0, false
	}

	return decodeOOLInt(a.Load(refOf(v), 9))
}

func (b *Builder) readOOLFloat(v value.V) float64 {
	a := b.resolveArena(refOf(v))
	if a == nil {
		return 0
	}

	return decodeOOLFloat(a.Load(refOf(v), 8))
}

func (b *Builder) readOOLStringBytes(v value.V) []byte {
	a := b.resolveArena(refOf(v))
	if a == nil {
		return nil
	}

	return decodeOOLString(a, refOf(v))
}

// Int64 returns the native value of an integer V, immediate or
// out-of-line, reinterpreting an unsigned out-of-line payload per two's
// complement. Use Uint64 if the payload may be genuinely unsigned and
// exceed math.MaxInt64.
func (b *Builder) Int64(v value.V) int64 {
	if v.Tag() == value.TagInt {
		return value.UnpackInt(v)
	}

	bits, _ := b.readOOLInt(v)

	return int64(bits)
}

// Uint64 returns the native unsigned value of an integer V.
func (b *Builder) Uint64(v value.V) uint64 {
	if v.Tag() == value.TagInt {
		return uint64(value.UnpackInt(v))
	}

	bits, _ := b.readOOLInt(v)

	return bits
}

// IntIsUnsigned reports whether an out-of-line integer V was interned via
// Uint rather than Int. Immediate integers are always signed.
func (b *Builder) IntIsUnsigned(v value.V) bool {
	if v.Tag() != value.TagOOLInt {
		return false
	}

	_, unsigned := b.readOOLInt(v)

	return unsigned
}

// Float64 returns the native value of a float V, immediate or
// out-of-line.
func (b *Builder) Float64(v value.V) float64 {
	if v.Tag() == value.TagFloat {
		return value.UnpackFloat(v)
	}

	return b.readOOLFloat(v)
}

// Bytes returns the native bytes of a string V, immediate or out-of-line.
func (b *Builder) Bytes(v value.V) []byte {
	if v.Tag() == value.TagString {
		return value.UnpackShortString(v)
	}

	return b.readOOLStringBytes(v)
}

// Str is Bytes converted to a string.
func (b *Builder) Str(v value.V) string {
	return string(b.Bytes(v))
}

// Sequence publishes items as a sequence. Every item is internalized
// into this Builder first, so foreign handles are copied in rather than
// rejected; an Invalid item (explicit, or a failed internalize) fails the
// whole construction, since a published collection must never contain
// Invalid.
func (b *Builder) Sequence(items []value.V) value.V {
	encoded := make([][]byte, 0, len(items)+1)
	encoded = append(encoded, encodeU64(uint64(len(items))))

	for _, it := range items {
		if it.IsInvalid() {
			return value.Invalid
		}

		rv := b.Internalize(it)
		if rv.IsInvalid() {
			return value.Invalid
		}

		encoded = append(encoded, encodeV(rv))
	}

	ref, err := b.alloc.StoreV(encoded, 8)
	if err != nil {
		return value.Invalid
	}

	return packRef(value.TagSequence, ref)
}

// Mapping publishes pairs, a flattened key,value,key,value,... list, as a
// mapping. An odd-length pairs list is an arity violation and fails the
// whole construction, as does any Invalid key or value.
func (b *Builder) Mapping(pairs []value.V) value.V {
	if len(pairs)%2 != 0 {
		return value.Invalid
	}

	encoded := make([][]byte, 0, len(pairs)+1)
	encoded = append(encoded, encodeU64(uint64(len(pairs)/2)))

	for _, it := range pairs {
		if it.IsInvalid() {
			return value.Invalid
		}

		rv := b.Internalize(it)
		if rv.IsInvalid() {
			return value.Invalid
		}

		encoded = append(encoded, encodeV(rv))
	}

	ref, err := b.alloc.StoreV(encoded, 8)
	if err != nil {
		return value.Invalid
	}

	return packRef(value.TagMapping, ref)
}

// SequenceItems returns the items of a sequence value, in storage order.
// The caller must have already checked v.IsSequence().
func (b *Builder) SequenceItems(v value.V) []value.V {
	return b.readSequence(v)
}

// MappingPairs returns a mapping value's flattened key,value,... list, in
// storage order. The caller must have already checked v.IsMapping().
func (b *Builder) MappingPairs(v value.V) []value.V {
	return b.readMapping(v)
}

// IndirectParts returns the decorated value, anchor, and tag fields of an
// indirect value, each value.Invalid if absent. The caller must have
// already checked v.IsIndirect().
func (b *Builder) IndirectParts(v value.V) (val, anchor, tag value.V) {
	_, val, anchor, tag = b.readIndirect(v)

	return val, anchor, tag
}

// AliasAnchor returns the anchor name of an alias value (an indirect
// with no decorated value, only an anchor), and whether v is in fact an
// alias with a resolvable string anchor.
func (b *Builder) AliasAnchor(v value.V) (string, bool) {
	if b.TypeOf(v) != value.KindAlias {
		return "", false
	}

	_, anchor, _ := b.IndirectParts(v)
	if !anchor.IsString() {
		return "", false
	}

	return b.Str(anchor), true
}

func (b *Builder) readSequence(v value.V) []value.V {
	a := b.resolveArena(refOf(v))
	if a == nil {
		return nil
	}

	ref := refOf(v)
	n := decodeU64(a.Load(ref, 8))
	out := make([]value.V, n)

	for i := range out {
		out[i] = decodeV(a.Load(shiftRef(ref, 8+i*8), 8))
	}

	return out
}

func (b *Builder) readMapping(v value.V) []value.V {
	a := b.resolveArena(refOf(v))
	if a == nil {
		return nil
	}

	ref := refOf(v)
	pairs := decodeU64(a.Load(ref, 8))
	out := make([]value.V, pairs*2)

	for i := range out {
		out[i] = decodeV(a.Load(shiftRef(ref, 8+i*8), 8))
	}

	return out
}

// Indirect publishes a record carrying any combination of a decorated
// value, an anchor name, and a type tag; at least one must be present
// (all-Invalid is rejected). An anchor, if present, must be a string.
func (b *Builder) Indirect(val, anchor, tag value.V) value.V {
	if val.IsInvalid() && anchor.IsInvalid() && tag.IsInvalid() {
		return value.Invalid
	}

	if !anchor.IsInvalid() && !anchor.IsString() {
		return value.Invalid
	}

	var flags byte

	parts := [][]byte{{0}} // flags byte placeholder, patched below

	if !val.IsInvalid() {
		rv := b.Internalize(val)
		if rv.IsInvalid() {
			return value.Invalid
		}

		flags |= indirectHasValue
		parts = append(parts, encodeV(rv))
	}

	if !anchor.IsInvalid() {
		rv := b.Internalize(anchor)
		if rv.IsInvalid() {
			return value.Invalid
		}

		flags |= indirectHasAnchor
		parts = append(parts, encodeV(rv))
	}

	if !tag.IsInvalid() {
		rv := b.Internalize(tag)
		if rv.IsInvalid() {
			return value.Invalid
		}

		flags |= indirectHasTag
		parts = append(parts, encodeV(rv))
	}

	parts[0] = []byte{flags}

	ref, err := b.alloc.StoreV(parts, 8)
	if err != nil {
		return value.Invalid
	}

	return packRef(value.TagIndirect, ref)
}

// Alias publishes a bare-anchor indirect referring to anchorName, the
// form used to resolve a YAML alias node.
func (b *Builder) Alias(anchorName string) value.V {
	return b.Indirect(value.Invalid, b.String(anchorName), value.Invalid)
}
