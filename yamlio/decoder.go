package yamlio

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml/ast"

	"github.com/macropower/vtree/builder"
	"github.com/macropower/vtree/scalar"
	"github.com/macropower/vtree/value"
)

// gocyDecoder is the default Decoder, walking the *ast.Node tree a
// gocyParser produced. The walk shape (type switch over node kinds,
// recursing into mapping values and sequence items) mirrors
// magicschema/infer.go's own node-kind dispatch, generalized from "infer
// a JSON Schema type" to "build a value.V".
type gocyDecoder struct{}

// NewDecoder returns the default Decoder.
func NewDecoder() Decoder { return gocyDecoder{} }

func (gocyDecoder) Decode(b *builder.Builder, doc Document, opts ParseOptions) (value.V, error) {
	d, ok := doc.(gocyDocument)
	if !ok {
		return value.Invalid, fmt.Errorf("yamlio: document from a different Parser implementation")
	}

	w := &walker{b: b}

	v := w.decode(d.body)
	if v.IsInvalid() {
		return value.Invalid, fmt.Errorf("yamlio: failed to decode document")
	}

	return v, nil
}

type walker struct {
	b *builder.Builder
}

func (w *walker) decode(node ast.Node) value.V {
	if node == nil {
		return w.b.Null()
	}

	switch n := node.(type) {
	case *ast.MappingNode:
		pairs := make([]value.V, 0, len(n.Values)*2)

		for _, mv := range n.Values {
			pairs = append(pairs, w.decode(mv.Key), w.decode(mv.Value))
		}

		return w.b.Mapping(pairs)

	case *ast.MappingValueNode:
		return w.b.Mapping([]value.V{w.decode(n.Key), w.decode(n.Value)})

	case *ast.SequenceNode:
		items := make([]value.V, 0, len(n.Values))
		for _, item := range n.Values {
			items = append(items, w.decode(item))
		}

		return w.b.Sequence(items)

	case *ast.NullNode:
		return w.b.Null()

	case *ast.StringNode:
		return w.decodeForced(n.String(), value.KindString)

	case *ast.LiteralNode:
		return w.decodeForced(n.String(), value.KindString)

	case *ast.TagNode:
		val := w.decode(n.Value)
		tag := w.b.String(tagName(n))

		return w.b.Indirect(val, value.Invalid, tag)

	case *ast.AnchorNode:
		val := w.decode(n.Value)
		anchorStr := w.b.String(anchorName(n))

		return w.b.Indirect(val, anchorStr, value.Invalid)

	case *ast.AliasNode:
		// Aliases are by-name references, not dereferenced here: an
		// external resolver, not the decoder, is responsible for
		// traversing from an ALIAS value back to its anchor.
		return w.b.Alias(aliasName(n))

	default:
		return w.decodeFree(node.String())
	}
}

// decodeForced builds a value that YAML's surface syntax has already
// disambiguated (a quoted or block-literal scalar, which is always a
// string regardless of its content).
func (w *walker) decodeForced(text string, kind value.Kind) value.V {
	return scalar.Decode(w.b, []byte(text), &kind)
}

// decodeFree builds a plain scalar, letting scalar.Decode apply the
// builder's own schema (per §4.4: "given... the builder's schema") to
// decide its kind. This covers bool/int/float/null nodes and any node
// type this walker does not special-case.
func (w *walker) decodeFree(text string) value.V {
	return scalar.Decode(w.b, []byte(text), nil)
}

// tagName extracts just the tag token (e.g. "!!str") from a TagNode's
// stringification, which embeds the tagged value's own text after it.
// goccy/go-yaml's ast package was not observed exposing the tag token as
// a separate field in the retrieved example source, so this takes the
// first whitespace-delimited word of String() as a best-effort split
// rather than guessing at an unverified field name.
func tagName(n *ast.TagNode) string {
	s := n.String()
	if i := strings.IndexAny(s, " \t\n"); i >= 0 {
		return s[:i]
	}

	return s
}

func anchorName(n *ast.AnchorNode) string {
	if n.Name != nil {
		return n.Name.String()
	}

	return ""
}

func aliasName(n *ast.AliasNode) string {
	if n.Value != nil {
		return n.Value.String()
	}

	return ""
}
