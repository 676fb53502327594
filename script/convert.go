package script

import (
	"encoding/json"
	"fmt"

	"github.com/macropower/vtree/builder"
	"github.com/macropower/vtree/value"
)

// anyToValue converts a decoded JSON literal (from json.Unmarshal into
// `any`: nil, bool, float64, string, []any, or map[string]any) into a
// value.V, recursing into arrays and objects. encoding/json decodes an
// object into a Go map, which does not preserve source key order; a
// mapping built this way has its keys in whatever order map iteration
// happens to produce, which is fine for lookup-shaped args (ASSOC
// key/value pairs, GET keys) but means a literal mapping embedded in a
// script document should not be relied on for its own internal order.
func anyToValue(b *builder.Builder, v any) value.V {
	switch x := v.(type) {
	case nil:
		return b.Null()
	case bool:
		return b.Bool(x)
	case float64:
		if x == float64(int64(x)) {
			return b.Int(int64(x))
		}

		return b.Float(x)
	case string:
		return b.String(x)
	case []any:
		items := make([]value.V, len(x))
		for i, it := range x {
			items[i] = anyToValue(b, it)
		}

		return b.Sequence(items)
	case map[string]any:
		pairs := make([]value.V, 0, len(x)*2)
		for k, val := range x {
			pairs = append(pairs, b.String(k), anyToValue(b, val))
		}

		return b.Mapping(pairs)
	default:
		return value.Invalid
	}
}

// decodeLiteral decodes a raw JSON/YAML literal from a script document
// into a value.V. An empty/absent raw message decodes to Invalid, the
// same "field not present" signal ops.Args uses for every optional
// value.V field.
func decodeLiteral(b *builder.Builder, raw json.RawMessage) value.V {
	if len(raw) == 0 {
		return value.Invalid
	}

	var v any

	if err := json.Unmarshal(raw, &v); err != nil {
		return value.Invalid
	}

	return anyToValue(b, v)
}

func decodeLiterals(b *builder.Builder, raws []json.RawMessage) []value.V {
	out := make([]value.V, len(raws))
	for i, raw := range raws {
		out[i] = decodeLiteral(b, raw)
	}

	return out
}

// unknownNameError is returned by opFromName/flagFromName for a name not
// in the fixed vocabulary; it is never an ops.Dispatch failure (INVALID),
// since it happens before Dispatch is ever reached.
type unknownNameError struct {
	kind, name string
}

func (e *unknownNameError) Error() string {
	return fmt.Sprintf("script: unknown %s %q", e.kind, e.name)
}
