package builder_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/vtree/arena"
	"github.com/macropower/vtree/builder"
	"github.com/macropower/vtree/value"
)

func TestScalarRoundTrip(t *testing.T) {
	b := builder.New()

	i := b.Int(1 << 40)
	assert.True(t, i.IsInt())
	assert.Equal(t, int64(1<<40), b.Int64(i))

	big := b.Int(1 << 62)
	assert.True(t, big.IsOutOfPlace(), "60-bit immediate range must overflow to out-of-line")
	assert.Equal(t, int64(1<<62), b.Int64(big))

	u := b.Uint(^uint64(0))
	assert.True(t, u.IsOutOfPlace())
	assert.Equal(t, ^uint64(0), b.Uint64(u))
	assert.True(t, b.IntIsUnsigned(u))

	f := b.Float(0.1)
	assert.True(t, f.IsOutOfPlace(), "0.1 cannot round-trip through float32")
	assert.InDelta(t, 0.1, b.Float64(f), 0)

	s := b.String("this string is definitely longer than seven bytes")
	assert.True(t, s.IsOutOfPlace())
	assert.Equal(t, "this string is definitely longer than seven bytes", b.Str(s))

	short := b.String("hi")
	assert.True(t, short.IsImmediate())
	assert.Equal(t, "hi", b.Str(short))
}

func TestSequenceRoundTrip(t *testing.T) {
	b := builder.New()

	seq := b.Sequence([]value.V{b.Int(1), b.Int(2), b.String("three")})
	require.True(t, b.Contains(seq))
	assert.True(t, seq.IsSequence())
	assert.Equal(t, value.KindSequence, b.TypeOf(seq))
}

func TestSequenceRejectsInvalidMember(t *testing.T) {
	b := builder.New()

	seq := b.Sequence([]value.V{b.Int(1), value.Invalid})
	assert.True(t, seq.IsInvalid())
}

func TestMappingRejectsOddArity(t *testing.T) {
	b := builder.New()

	m := b.Mapping([]value.V{b.String("k")})
	assert.True(t, m.IsInvalid())
}

func TestIndirectAndAlias(t *testing.T) {
	b := builder.New()

	decorated := b.Indirect(b.Int(7), b.String("anchor1"), value.Invalid)
	assert.Equal(t, value.KindInt, b.TypeOf(decorated))

	alias := b.Alias("anchor1")
	assert.Equal(t, value.KindAlias, b.TypeOf(alias))
}

func TestIndirectRejectsNonStringAnchor(t *testing.T) {
	b := builder.New()

	bad := b.Indirect(b.Int(1), b.Int(2), value.Invalid)
	assert.True(t, bad.IsInvalid())
}

func TestIndirectRejectsAllAbsent(t *testing.T) {
	b := builder.New()

	bad := b.Indirect(value.Invalid, value.Invalid, value.Invalid)
	assert.True(t, bad.IsInvalid())
}

func TestContainsRejectsForeignValue(t *testing.T) {
	b1 := builder.New()
	b2 := builder.New()

	v := b1.String("this string is definitely longer than seven bytes")
	assert.True(t, b1.Contains(v))
	assert.False(t, b2.Contains(v))
}

func TestInternalizeCopiesAcrossBuilders(t *testing.T) {
	b1 := builder.New()
	b2 := builder.New()

	v := b1.Sequence([]value.V{b1.Int(1), b1.String("this string is definitely longer than seven bytes")})

	copied := b2.Internalize(v)
	require.False(t, copied.IsInvalid())
	assert.True(t, b2.Contains(copied))
	assert.Equal(t, 0, b2.Compare(v, copied))
}

func TestScopedBuilderExportsToParent(t *testing.T) {
	parent := builder.New()
	scope := builder.NewScoped(parent)

	tmp := scope.String("this string is definitely longer than seven bytes")
	exported := scope.Export(tmp)
	require.False(t, exported.IsInvalid())

	scope.Destroy()

	assert.True(t, parent.Contains(exported))
}

func TestExportRefusesWithoutReachableScopeLeaderParent(t *testing.T) {
	root := builder.New()
	tmp := root.String("this string is definitely longer than seven bytes")

	// root is not a scope leader and has no parent: nothing to export into.
	assert.True(t, root.Export(tmp).IsInvalid())

	// A plain (non-scoped) child with a parent but no AsScopeLeader marker
	// still has no reachable scope leader in its chain.
	plainChild := builder.New(builder.WithParent(root))
	assert.True(t, plainChild.Export(tmp).IsInvalid())
}

func TestCompareOrdersByKindThenValue(t *testing.T) {
	b := builder.New()

	assert.Equal(t, -1, b.Compare(value.Null, value.True))
	assert.Equal(t, -1, b.Compare(b.Int(1), b.Int(2)))
	assert.Equal(t, 1, b.Compare(b.Int(2), b.Int(1)))
	assert.Equal(t, 0, b.Compare(b.Int(5), b.Int(5)))
	assert.Equal(t, -1, b.Compare(b.String("a"), b.String("b")))
}

func TestCompareDistinctUnsignedIntegersAreNotSaturatedToEqual(t *testing.T) {
	b := builder.New()

	lo := b.Uint(5000000000000000000)
	hi := b.Uint(9000000000000000000)

	assert.Equal(t, -1, b.Compare(lo, hi))
	assert.Equal(t, 1, b.Compare(hi, lo))
	assert.Equal(t, 0, b.Compare(lo, b.Uint(5000000000000000000)))

	// An unsigned value within int64 range compares numerically with a
	// signed one; only an unsigned value above math.MaxInt64 sorts after
	// every signed one.
	assert.Equal(t, -1, b.Compare(lo, b.Int(math.MaxInt64)))
	assert.Equal(t, 1, b.Compare(b.Uint(math.MaxUint64), b.Int(math.MaxInt64)))
}

func TestCompareSequencesLexicographic(t *testing.T) {
	b := builder.New()

	x := b.Sequence([]value.V{b.Int(1), b.Int(2)})
	y := b.Sequence([]value.V{b.Int(1), b.Int(3)})
	z := b.Sequence([]value.V{b.Int(1)})

	assert.Equal(t, -1, b.Compare(x, y))
	assert.Equal(t, 1, b.Compare(x, z), "shorter prefix-equal sequence sorts first")
}

func TestRelocateRootRewritesArenaIdentity(t *testing.T) {
	a := arena.New()
	b := builder.New(builder.WithAllocator(a))

	longStr := b.String("this string is definitely longer than seven bytes")
	root := b.Sequence([]value.V{b.Int(1 << 40), longStr})

	const newID arena.ID = 0xBEEF

	relocated := builder.RelocateRoot(a, root, a.ID(), newID)

	rootRef := arena.Ref(relocated.Payload())
	assert.Equal(t, newID, rootRef.ID(), "the root handle's own Ref identity must change")

	// Read the second sequence item's raw bytes back out at the same
	// offset it always occupied, and confirm its embedded Ref was
	// patched to the new identity too, not just the root's.
	itemBytes := a.Load(arena.Pack(newID, rootRef.Offset()+8+8), 8)
	itemV := value.V(binary.LittleEndian.Uint64(itemBytes))
	itemRef := arena.Ref(itemV.Payload())

	assert.Equal(t, newID, itemRef.ID())
	assert.Equal(t, arena.Ref(longStr.Payload()).Offset(), itemRef.Offset())
}
