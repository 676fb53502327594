package ops

import (
	"github.com/macropower/vtree/builder"
	"github.com/macropower/vtree/value"
	"github.com/macropower/vtree/yamlio"
)

// parseOp decodes args.Str (or, if unset, the string value carried by
// args.Value) through the external Parser/Decoder pair. With
// MultiDocument unset, input must contain exactly one document and the
// result is that document's own value. With MultiDocument set, every
// document found is decoded and the result is a sequence of them, in
// document order.
func parseOp(b *builder.Builder, args Args) value.V {
	text := args.Str
	if text == "" && args.Value.IsString() {
		text = b.Str(args.Value)
	}

	p := args.Parser
	if p == nil {
		p = yamlio.NewParser()
	}

	dec := args.Decoder
	if dec == nil {
		dec = yamlio.NewDecoder()
	}

	docs, err := p.ParseDocuments([]byte(text))
	if err != nil {
		return value.Invalid
	}

	if !args.ParseOptions.MultiDocument {
		if len(docs) != 1 {
			return value.Invalid
		}

		v, err := dec.Decode(b, docs[0], args.ParseOptions)
		if err != nil {
			return value.Invalid
		}

		return v
	}

	out := make([]value.V, 0, len(docs))

	for _, d := range docs {
		v, err := dec.Decode(b, d, args.ParseOptions)
		if err != nil {
			return value.Invalid
		}

		out = append(out, v)
	}

	return b.Sequence(out)
}

// emitOp renders in through the external Emitter into a fresh string
// value. A sequence input under EmitOptions.Mode == ModeYAML is treated
// as a multi-document batch (one emitted document per sequence element);
// any other input emits as the single document itself.
func emitOp(b *builder.Builder, in value.V, args Args) value.V {
	em := args.Emitter
	if em == nil {
		em = yamlio.NewEmitter()
	}

	docs := []value.V{in}
	if args.EmitOptions.Mode == yamlio.ModeYAML && b.TypeOf(in) == value.KindSequence {
		docs = b.SequenceItems(in)
	}

	out, err := em.Emit(b, docs, args.EmitOptions)
	if err != nil {
		return value.Invalid
	}

	return b.String(out)
}
