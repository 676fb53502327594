package ops

import (
	"github.com/macropower/vtree/builder"
	"github.com/macropower/vtree/pool"
	"github.com/macropower/vtree/value"
	"github.com/macropower/vtree/yamlio"
)

// Op identifies a single collection operation, matching the
// builder,flags,in,args dispatch shape used throughout this package.
type Op uint8

const (
	OpInvalid Op = iota
	CreateNull
	CreateBool
	CreateInt
	CreateFloat
	CreateString
	CreateSequence
	CreateMapping
	Insert
	Replace
	Append
	Assoc
	Disassoc
	Keys
	Values
	Items
	Contains
	Concat
	Reverse
	Merge
	Unique
	Sort
	Set
	Get
	GetAt
	SetAt
	GetAtPath
	SetAtPath
	Filter
	Map
	MapFilter
	Reduce
	Parse
	Emit
)

// Flags are dispatch-time modifiers, orthogonal to the operation code.
type Flags uint16

const (
	// NoChecks skips the Validate pre-check on in, for callers that
	// already know their input is sound and want to skip the redundant
	// walk. args.Items is not pre-checked with or without it.
	NoChecks Flags = 1 << iota

	// DontInternalize is accepted but no operation reads it: collections
	// are always built through the builder's factories, which pass every
	// item through Builder.Internalize.
	DontInternalize

	// MapItemCount makes INSERT/REPLACE/APPEND address a mapping by flat
	// key/value slot (index, count, and args.Items length in single
	// items) instead of the default whole (key, value) pairs.
	MapItemCount

	// Parallel permits FILTER/MAP/MAP_FILTER/REDUCE to shard across
	// args.Pool once the working item count exceeds the 100-item
	// threshold. Below the threshold, execution stays sequential even
	// with Parallel set.
	Parallel

	// FlattenKeys expands a GET_AT_PATH key that is itself a sequence
	// inline into the path, instead of treating it as one opaque key.
	FlattenKeys

	// BlockFn documents that args carries a user callback (Predicate,
	// Transform, or Reducer). It has no behavior of its own: Dispatch
	// decides whether to invoke a callback by whether Args supplies one,
	// not by this bit. It exists so callers translating the op code +
	// modifier vocabulary directly (e.g. from a script document) have a
	// flag bit to set, matching the rest of the flags.
	BlockFn
)

func (f Flags) has(bit Flags) bool { return f&bit != 0 }

// parallelThreshold is the working item count above which Parallel
// actually shards work instead of running sequentially.
const parallelThreshold = 100

// Args bundles every per-operation input Dispatch might need. Only the
// fields relevant to the requested Op are read; the rest are ignored.
type Args struct {
	// Scalar inputs for CREATE_{NULL,BOOL,INT,FLT,STR}.
	Bool   bool
	Int    int64
	Uint   uint64
	Unsigned bool
	Float  float64
	Str    string

	// Items backs CREATE_SEQ/CREATE_MAP, INSERT, REPLACE, APPEND,
	// ASSOC/DISASSOC (key[,value] pairs), CONCAT (each item must be a
	// same-kind collection), SET (index/key,value pairs), and the extra
	// operands concatenated onto `in` for FILTER/MAP/MAP_FILTER/REDUCE.
	Items []value.V

	// Index for INSERT/REPLACE/GET_AT/SET_AT.
	Index int

	// Count is the number of items REPLACE overwrites. SET and ASSOC do
	// not read it; they always consume all of Items.
	Count int

	// Key for GET (sequence: index value, mapping: key by Compare) and
	// SET_AT_PATH's terminal value.
	Key   value.V
	Value value.V

	// Path for GET_AT_PATH/SET_AT_PATH, each element a key as for GET.
	Path []value.V

	// Predicate backs FILTER: keep an element iff it returns true.
	Predicate func(value.V) bool

	// Transform backs MAP (returning value.Invalid aborts the whole
	// operation) and MAP_FILTER (returning value.Invalid drops the
	// element and continues).
	Transform func(value.V) value.V

	// Reducer and Seed back REDUCE.
	Reducer func(acc, v value.V) value.V
	Seed    value.V

	// Pool backs parallel fan-out for FILTER/MAP/MAP_FILTER/REDUCE. A
	// nil Pool with Parallel set falls back to a default pool sized by
	// runtime.GOMAXPROCS, via pool.New.
	Pool pool.Pool

	// Parser/Decoder back PARSE; Emitter backs EMIT. A nil field falls
	// back to the default yamlio implementation.
	Parser  yamlio.Parser
	Decoder yamlio.Decoder
	Emitter yamlio.Emitter

	ParseOptions yamlio.ParseOptions
	EmitOptions  yamlio.EmitOptions
}

// Dispatch runs op against in with args under b, honoring flags. It
// returns value.Invalid for any construction failure, type violation,
// arity violation, validation failure, or user-callback failure; see
// each op's implementation for its specific failure conditions.
func Dispatch(b *builder.Builder, op Op, flags Flags, in value.V, args Args) value.V {
	if !flags.has(NoChecks) && !in.IsInvalid() && b.Validate(in).IsInvalid() {
		return value.Invalid
	}

	switch op {
	case CreateNull:
		return b.Null()
	case CreateBool:
		return b.Bool(args.Bool)
	case CreateInt:
		if args.Unsigned {
			return b.Uint(args.Uint)
		}

		return b.Int(args.Int)
	case CreateFloat:
		return b.Float(args.Float)
	case CreateString:
		return b.String(args.Str)
	case CreateSequence:
		return createSequence(b, args)
	case CreateMapping:
		return createMapping(b, args)

	case Insert:
		return insert(b, flags, in, args)
	case Replace:
		return replace(b, flags, in, args)
	case Append:
		return appendOp(b, flags, in, args)
	case Assoc:
		return assoc(b, flags, in, args)
	case Disassoc:
		return disassoc(b, in, args)

	case Keys:
		return keysOp(b, in)
	case Values:
		return valuesOp(b, in)
	case Items:
		return itemsOp(b, in)
	case Contains:
		return containsOp(b, in, args)
	case Concat:
		return concat(b, flags, in, args)
	case Reverse:
		return reverse(b, in)
	case Merge:
		return merge(b, flags, in, args)
	case Unique:
		return unique(b, in)
	case Sort:
		return sortOp(b, in)

	case Set:
		return setOp(b, flags, in, args)
	case Get:
		return getOp(b, in, args)
	case GetAt:
		return getAt(b, in, args)
	case SetAt:
		return setAt(b, flags, in, args)
	case GetAtPath:
		return getAtPath(b, flags, in, args)
	case SetAtPath:
		return setAtPath(b, flags, in, args)

	case Filter, Map, MapFilter, Reduce:
		return dispatchFunctional(b, op, flags, in, args)

	case Parse:
		return parseOp(b, args)
	case Emit:
		return emitOp(b, in, args)

	default:
		return value.Invalid
	}
}
