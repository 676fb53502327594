package ops_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/vtree/builder"
	"github.com/macropower/vtree/ops"
	"github.com/macropower/vtree/value"
)

func newB(t *testing.T) *builder.Builder {
	t.Helper()

	return builder.New()
}

func seqOfInts(t *testing.T, b *builder.Builder, xs ...int64) value.V {
	t.Helper()

	items := make([]value.V, len(xs))
	for i, x := range xs {
		items[i] = b.Int(x)
	}

	return b.Sequence(items)
}

func ints(t *testing.T, b *builder.Builder, v value.V) []int64 {
	t.Helper()

	items := b.SequenceItems(v)
	out := make([]int64, len(items))

	for i, it := range items {
		out[i] = b.Int64(it)
	}

	return out
}

func TestCreateAppend(t *testing.T) {
	b := newB(t)

	seq := ops.Dispatch(b, ops.CreateSequence, 0, value.Invalid, ops.Args{
		Items: []value.V{b.Int(1), b.Int(2), b.Int(3)},
	})
	require.False(t, seq.IsInvalid())

	out := ops.Dispatch(b, ops.Append, 0, seq, ops.Args{Items: []value.V{b.Int(4), b.Int(5)}})
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ints(t, b, out))

	same := ops.Dispatch(b, ops.Append, 0, seq, ops.Args{Items: nil})
	assert.Equal(t, ints(t, b, seq), ints(t, b, same))
}

func TestInsertReplace(t *testing.T) {
	b := newB(t)
	seq := seqOfInts(t, b, 1, 2, 3)

	inserted := ops.Dispatch(b, ops.Insert, 0, seq, ops.Args{Index: 1, Items: []value.V{b.Int(9)}})
	assert.Equal(t, []int64{1, 9, 2, 3}, ints(t, b, inserted))

	replaced := ops.Dispatch(b, ops.Replace, 0, seq, ops.Args{Index: 0, Count: 2, Items: []value.V{b.Int(9)}})
	assert.Equal(t, []int64{9, 3}, ints(t, b, replaced))
}

func TestAssocDisassoc(t *testing.T) {
	b := newB(t)
	m := b.Mapping([]value.V{b.String("a"), b.Int(1), b.String("b"), b.Int(2)})

	assoced := ops.Dispatch(b, ops.Assoc, 0, m, ops.Args{Items: []value.V{b.String("b"), b.Int(99), b.String("c"), b.Int(3)}})
	pairs := b.MappingPairs(assoced)
	require.Len(t, pairs, 6)
	assert.Equal(t, "a", b.Str(pairs[0]))
	assert.Equal(t, int64(1), b.Int64(pairs[1]))
	assert.Equal(t, "b", b.Str(pairs[2]))
	assert.Equal(t, int64(99), b.Int64(pairs[3]))
	assert.Equal(t, "c", b.Str(pairs[4]))

	disassoced := ops.Dispatch(b, ops.Disassoc, 0, m, ops.Args{Items: []value.V{b.String("a")}})
	assert.Len(t, b.MappingPairs(disassoced), 2)

	unchanged := ops.Dispatch(b, ops.Disassoc, 0, m, ops.Args{Items: []value.V{b.String("z")}})
	assert.Equal(t, 0, b.Compare(unchanged, m))
}

func TestKeysValuesItems(t *testing.T) {
	b := newB(t)
	m := b.Mapping([]value.V{b.String("a"), b.Int(1), b.String("b"), b.Int(2)})

	keys := ops.Dispatch(b, ops.Keys, 0, m, ops.Args{})
	assert.Equal(t, []string{"a", "b"}, strs(b, keys))

	vals := ops.Dispatch(b, ops.Values, 0, m, ops.Args{})
	assert.Equal(t, []int64{1, 2}, ints(t, b, vals))

	items := ops.Dispatch(b, ops.Items, 0, m, ops.Args{})
	require.Equal(t, 2, len(b.SequenceItems(items)))
}

func strs(b *builder.Builder, v value.V) []string {
	items := b.SequenceItems(v)
	out := make([]string, len(items))

	for i, it := range items {
		out[i] = b.Str(it)
	}

	return out
}

func TestMergeOrdersByLatest(t *testing.T) {
	b := newB(t)
	m1 := b.Mapping([]value.V{b.String("a"), b.Int(1), b.String("b"), b.Int(2)})
	m2 := b.Mapping([]value.V{b.String("b"), b.Int(3), b.String("c"), b.Int(4)})

	merged := ops.Dispatch(b, ops.Merge, 0, m1, ops.Args{Items: []value.V{m2}})
	pairs := b.MappingPairs(merged)
	require.Len(t, pairs, 6)
	assert.Equal(t, "a", b.Str(pairs[0]))
	assert.Equal(t, "b", b.Str(pairs[2]))
	assert.Equal(t, int64(3), b.Int64(pairs[3]))
	assert.Equal(t, "c", b.Str(pairs[4]))
}

func TestReverseSequenceAndMapping(t *testing.T) {
	b := newB(t)
	seq := seqOfInts(t, b, 1, 2, 3)

	rev := ops.Dispatch(b, ops.Reverse, 0, seq, ops.Args{})
	assert.Equal(t, []int64{3, 2, 1}, ints(t, b, rev))

	m := b.Mapping([]value.V{b.String("a"), b.Int(1), b.String("b"), b.Int(2)})
	revM := ops.Dispatch(b, ops.Reverse, 0, m, ops.Args{})
	pairs := b.MappingPairs(revM)
	require.Len(t, pairs, 4)
	assert.Equal(t, "b", b.Str(pairs[0]))
	assert.Equal(t, int64(2), b.Int64(pairs[1]))
	assert.Equal(t, "a", b.Str(pairs[2]))
	assert.Equal(t, int64(1), b.Int64(pairs[3]))
}

func TestUniqueAndSort(t *testing.T) {
	b := newB(t)
	seq := seqOfInts(t, b, 3, 1, 2, 1, 3)

	uniq := ops.Dispatch(b, ops.Unique, 0, seq, ops.Args{})
	assert.Equal(t, []int64{3, 1, 2}, ints(t, b, uniq))

	sorted := ops.Dispatch(b, ops.Sort, 0, seq, ops.Args{})
	assert.Equal(t, []int64{1, 1, 2, 3, 3}, ints(t, b, sorted))
}

func TestSetPadsWithNull(t *testing.T) {
	b := newB(t)
	seq := seqOfInts(t, b, 10, 20, 30)

	set := ops.Dispatch(b, ops.Set, 0, seq, ops.Args{Items: []value.V{b.Int(5), b.Int(99)}})
	items := b.SequenceItems(set)
	require.Len(t, items, 6)
	assert.Equal(t, value.KindNull, b.TypeOf(items[3]))
	assert.Equal(t, value.KindNull, b.TypeOf(items[4]))
	assert.Equal(t, int64(99), b.Int64(items[5]))
}

func TestGetAndGetAt(t *testing.T) {
	b := newB(t)
	seq := seqOfInts(t, b, 10, 20, 30)

	got := ops.Dispatch(b, ops.Get, 0, seq, ops.Args{Key: b.Int(1)})
	assert.Equal(t, int64(20), b.Int64(got))

	miss := ops.Dispatch(b, ops.Get, 0, seq, ops.Args{Key: b.Int(99)})
	assert.True(t, miss.IsInvalid())

	at := ops.Dispatch(b, ops.GetAt, 0, seq, ops.Args{Index: 2})
	assert.Equal(t, int64(30), b.Int64(at))
}

func TestGetAtPathSetAtPath(t *testing.T) {
	b := newB(t)
	inner := b.Mapping([]value.V{b.String("x"), b.Int(1)})
	outer := b.Mapping([]value.V{b.String("a"), inner})

	got := ops.Dispatch(b, ops.GetAtPath, 0, outer, ops.Args{Path: []value.V{b.String("a"), b.String("x")}})
	assert.Equal(t, int64(1), b.Int64(got))

	updated := ops.Dispatch(b, ops.SetAtPath, 0, outer, ops.Args{
		Path:  []value.V{b.String("a"), b.String("x")},
		Value: b.Int(42),
	})
	require.False(t, updated.IsInvalid())

	roundTrip := ops.Dispatch(b, ops.GetAtPath, 0, updated, ops.Args{Path: []value.V{b.String("a"), b.String("x")}})
	assert.Equal(t, int64(42), b.Int64(roundTrip))
}

func TestFilterMapMapFilterReduce(t *testing.T) {
	b := newB(t)
	seq := seqOfInts(t, b, 1, 2, 3, 4, 5)

	filtered := ops.Dispatch(b, ops.Filter, 0, seq, ops.Args{
		Predicate: func(v value.V) bool { return b.Int64(v)%2 == 0 },
	})
	assert.Equal(t, []int64{2, 4}, ints(t, b, filtered))

	mapped := ops.Dispatch(b, ops.Map, 0, seq, ops.Args{
		Transform: func(v value.V) value.V { return b.Int(b.Int64(v) * 2) },
	})
	assert.Equal(t, []int64{2, 4, 6, 8, 10}, ints(t, b, mapped))

	mappedAbort := ops.Dispatch(b, ops.Map, 0, seq, ops.Args{
		Transform: func(v value.V) value.V {
			if b.Int64(v) == 3 {
				return value.Invalid
			}

			return v
		},
	})
	assert.True(t, mappedAbort.IsInvalid())

	mapFiltered := ops.Dispatch(b, ops.MapFilter, 0, seq, ops.Args{
		Transform: func(v value.V) value.V {
			if b.Int64(v)%2 == 0 {
				return value.Invalid
			}

			return v
		},
	})
	assert.Equal(t, []int64{1, 3, 5}, ints(t, b, mapFiltered))

	reduced := ops.Dispatch(b, ops.Reduce, 0, seq, ops.Args{
		Seed: b.Int(0),
		Reducer: func(acc, v value.V) value.V {
			return b.Int(b.Int64(acc) + b.Int64(v))
		},
	})
	assert.Equal(t, int64(15), b.Int64(reduced))
}

func TestParallelMapMatchesSequential(t *testing.T) {
	b := newB(t)

	xs := make([]int64, 1000)
	for i := range xs {
		xs[i] = int64(i)
	}

	seq := seqOfInts(t, b, xs...)

	double := func(v value.V) value.V { return b.Int(b.Int64(v) * 2) }

	sequential := ops.Dispatch(b, ops.Map, 0, seq, ops.Args{Transform: double})
	parallel := ops.Dispatch(b, ops.Map, ops.Parallel, seq, ops.Args{Transform: double})

	assert.Equal(t, ints(t, b, sequential), ints(t, b, parallel))
}

func TestContainsSequenceAndMapping(t *testing.T) {
	b := newB(t)
	seq := seqOfInts(t, b, 1, 2, 3)

	has := ops.Dispatch(b, ops.Contains, 0, seq, ops.Args{Key: b.Int(2)})
	assert.True(t, value.UnpackBool(has))

	hasNot := ops.Dispatch(b, ops.Contains, 0, seq, ops.Args{Key: b.Int(9)})
	assert.False(t, value.UnpackBool(hasNot))

	m := b.Mapping([]value.V{b.String("a"), b.Int(1)})
	hasKey := ops.Dispatch(b, ops.Contains, 0, m, ops.Args{Key: b.String("a")})
	assert.True(t, value.UnpackBool(hasKey))
}

func TestConcatRequiresSameKind(t *testing.T) {
	b := newB(t)
	seq := seqOfInts(t, b, 1, 2)
	m := b.Mapping([]value.V{b.String("a"), b.Int(1)})

	bad := ops.Dispatch(b, ops.Concat, 0, seq, ops.Args{Items: []value.V{m}})
	assert.True(t, bad.IsInvalid())

	good := ops.Dispatch(b, ops.Concat, 0, seq, ops.Args{Items: []value.V{seqOfInts(t, b, 3, 4)}})
	assert.Equal(t, []int64{1, 2, 3, 4}, ints(t, b, good))
}

func TestEmitAndParseRoundTrip(t *testing.T) {
	b := builder.New(builder.WithSchema(builder.SchemaYAML12Core))
	m := b.Mapping([]value.V{b.String("a"), b.Int(1)})

	emitted := ops.Dispatch(b, ops.Emit, 0, m, ops.Args{})
	require.False(t, emitted.IsInvalid())

	parsed := ops.Dispatch(b, ops.Parse, 0, value.Invalid, ops.Args{Str: b.Str(emitted)})
	require.False(t, parsed.IsInvalid())
	assert.True(t, parsed.IsMapping())
}
