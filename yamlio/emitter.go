package yamlio

import (
	"encoding/json"
	"fmt"
	"strings"

	goyaml "github.com/goccy/go-yaml"

	"github.com/macropower/vtree/builder"
	"github.com/macropower/vtree/value"
)

// gocyEmitter is the default Emitter. It lowers a value.V tree to plain
// Go values (map[string]any, []any, and the native scalar types) and
// hands the result to goccy/go-yaml's Marshal for YAML mode or
// encoding/json for JSON mode, rather than driving an event-based
// emitter API: no retrieved example in this corpus exercises
// goccy/go-yaml's encoder directly (only Unmarshal, via
// magicschema/generator.go's ast walk, was observed), so this avoids
// assuming an event/writer surface this codebase has never seen in use.
//
// One consequence: anchor/alias sharing is not preserved on re-emit. The
// decoder deliberately leaves every alias node as an unresolved ALIAS
// value (see yamlio/decoder.go) rather than substituting the anchor's
// content, so toNative here has no value to lower an alias to and falls
// back to emitting its bare anchor name (mapKeyHint) instead of a real
// YAML anchor/alias pair. Round-tripping anchors byte-for-byte was not a
// requirement called out anywhere in this system's scope; a resolver
// built on top of Builder.AliasAnchor could restore sharing before emit
// if that ever becomes one.
type gocyEmitter struct{}

// NewEmitter returns the default Emitter.
func NewEmitter() Emitter { return gocyEmitter{} }

func (gocyEmitter) Emit(b *builder.Builder, docs []value.V, opts EmitOptions) (string, error) {
	if opts.Mode == ModeJSON {
		if len(docs) != 1 {
			return "", fmt.Errorf("yamlio: JSON mode emits exactly one document, got %d", len(docs))
		}

		native, err := toNative(b, docs[0])
		if err != nil {
			return "", err
		}

		out, err := json.Marshal(native)
		if err != nil {
			return "", fmt.Errorf("yamlio: json marshal: %w", err)
		}

		return string(out), nil
	}

	parts := make([]string, 0, len(docs))

	for _, d := range docs {
		native, err := toNative(b, d)
		if err != nil {
			return "", err
		}

		out, err := goyaml.Marshal(native)
		if err != nil {
			return "", fmt.Errorf("yamlio: yaml marshal: %w", err)
		}

		parts = append(parts, strings.TrimSuffix(string(out), "\n"))
	}

	return strings.Join(parts, "\n---\n") + "\n", nil
}

// toNative lowers v into the plain Go value goyaml.Marshal/json.Marshal
// already know how to render: nil, bool, int64/uint64/float64, string,
// []any, or map[string]any.
func toNative(b *builder.Builder, v value.V) (any, error) {
	switch b.TypeOf(v) {
	case value.KindInvalid:
		return nil, fmt.Errorf("yamlio: cannot emit an invalid value")
	case value.KindNull:
		return nil, nil
	case value.KindBool:
		return value.UnpackBool(v), nil
	case value.KindInt:
		if b.IntIsUnsigned(v) {
			return b.Uint64(v), nil
		}

		return b.Int64(v), nil
	case value.KindFloat:
		return b.Float64(v), nil
	case value.KindString:
		return b.Str(v), nil
	case value.KindSequence:
		return sequenceToNative(b, v)
	case value.KindMapping:
		return mappingToNative(b, v)
	case value.KindAlias:
		return mapKeyHint(b, v)
	default:
		return nil, fmt.Errorf("yamlio: unhandled kind in emit")
	}
}

func sequenceToNative(b *builder.Builder, v value.V) (any, error) {
	items := b.SequenceItems(v)
	out := make([]any, len(items))

	for i, it := range items {
		n, err := toNative(b, it)
		if err != nil {
			return nil, err
		}

		out[i] = n
	}

	return out, nil
}

func mappingToNative(b *builder.Builder, v value.V) (any, error) {
	pairs := b.MappingPairs(v)
	out := make(map[string]any, len(pairs)/2)

	for i := 0; i < len(pairs); i += 2 {
		key, err := toNative(b, pairs[i])
		if err != nil {
			return nil, err
		}

		val, err := toNative(b, pairs[i+1])
		if err != nil {
			return nil, err
		}

		out[fmt.Sprint(key)] = val
	}

	return out, nil
}

func mapKeyHint(b *builder.Builder, v value.V) (any, error) {
	// An alias used as an emitted value, rather than as a decorated
	// value's anchor, has no native representation once anchor sharing
	// is lowered away; emit its anchor name as a plain string rather
	// than failing the whole document.
	name, ok := b.AliasAnchor(v)
	if !ok {
		return nil, fmt.Errorf("yamlio: alias with no resolvable anchor name")
	}

	return name, nil
}
