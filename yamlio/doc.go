// Package yamlio defines the narrow external-collaborator interfaces the
// core depends on for turning bytes into a value tree and back (§6:
// Parser, Decoder, Emitter), and provides the default implementations
// the rest of this module wires in, grounded on goccy/go-yaml.
//
// The core (builder, ops) only ever sees the interfaces in
// interfaces.go. Nothing in this package, or in ops' PARSE/EMIT
// handlers, assumes a particular backing library; swapping the default
// adapters for a JSON-only or libyaml-backed pair would not require
// touching ops.
package yamlio
