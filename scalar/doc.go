// Package scalar implements the schema-aware text-to-value decoder: given
// raw bytes, an optional forced kind, and a builder's schema, it decides
// whether the text is null, a boolean, a number, or an opaque string, and
// builds the corresponding value through the builder.
//
// The rule tables mirror the node-type dispatch magicschema/infer.go
// applies to already-parsed YAML AST nodes, but operate one level lower:
// here the input is still raw text, so this package owns deciding what
// kind that text denotes in the first place.
package scalar
