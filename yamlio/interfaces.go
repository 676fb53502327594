package yamlio

import (
	"github.com/macropower/vtree/builder"
	"github.com/macropower/vtree/value"
)

// Mode selects the textual syntax a Parser or Emitter speaks.
type Mode uint8

const (
	ModeYAML Mode = iota
	ModeJSON
)

// ParseOptions configures a Decoder call. Schema documents which scalar
// decoding rules the call is expected to apply; the default Decoder
// reads the schema to actually use off the builder passed to Decode
// (per §4.4, the scalar decoder always takes "the builder's schema"), so
// callers should construct that builder with builder.WithSchema(Schema)
// before calling Decode. Mode selects surface syntax and is independent
// of Schema.
type ParseOptions struct {
	Mode          Mode
	Schema        builder.Schema
	MultiDocument bool
}

// EmitOptions configures an Emitter call.
type EmitOptions struct {
	Mode   Mode
	Schema builder.Schema
	Indent int
}

// Parser turns raw bytes into a sequence of document ASTs, one per YAML
// document separator (or exactly one for JSON input, which has no
// equivalent separator). It is the tokenize/structure half of what the
// spec names a single "Parser" collaborator. ParseDocuments returns every
// document at once, so a caller can reject multi-document input by the
// length of its result before ever touching a builder, without a second
// call to discover how many documents were found.
type Parser interface {
	// ParseDocuments returns one opaque document handle per document in
	// data. The handles are only meaningful to the Decoder returned
	// alongside this Parser by the same constructor.
	ParseDocuments(data []byte) ([]Document, error)
}

// Document is an opaque parsed document handle, produced by a Parser and
// consumed by the matching Decoder. Its only purpose is to let Parser and
// Decoder stay separate interfaces, per §6, without forcing every
// implementation through a shared concrete AST type.
type Document interface{ document() }

// Decoder builds a value.V tree from a single parsed Document, using b to
// intern every scalar and collection it constructs.
type Decoder interface {
	Decode(b *builder.Builder, doc Document, opts ParseOptions) (value.V, error)
}

// Emitter renders one or more values back to text. Multiple docs are
// separated the way the target Mode expects (YAML "---" markers; JSON
// emits a single value, so multiple docs is a caller error for that
// Mode).
type Emitter interface {
	Emit(b *builder.Builder, docs []value.V, opts EmitOptions) (string, error)
}
