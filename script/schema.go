package script

import "github.com/google/jsonschema-go/jsonschema"

// Schema returns a JSON Schema describing the Document format, for
// tooling that wants to validate or autocomplete a script document
// externally (an editor plugin, `vtree script schema`). It is built by
// hand from *jsonschema.Schema literals, assembling a schema fragment
// field by field, rather than through a struct-reflection generator: no
// retrieved example in this corpus exercises jsonschema-go's reflection
// entry point, only direct *jsonschema.Schema construction.
//
// Document instance validation itself (Pipeline.Validate) is plain Go
// structural checking against opByName/flagByName, not a call through
// this schema, for the same reason: no retrieved example calls
// jsonschema-go's validate-an-instance entry point, and guessing at its
// exact signature would be fabricating familiarity with an unobserved
// API rather than following one the corpus already shows in use.
func Schema() *jsonschema.Schema {
	stepSchema := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"as":     {Type: "string"},
			"op":     {Type: "string", Enum: toAnySlice(OpNames())},
			"in":     {Type: "string"},
			"flags":  {Type: "array", Items: &jsonschema.Schema{Type: "string", Enum: toAnySlice(FlagNames())}},
			"args":   {Type: "object"},
		},
		Required: []string{"op"},
	}

	return &jsonschema.Schema{
		Schema: "https://json-schema.org/draft/2020-12/schema",
		Type:   "object",
		Properties: map[string]*jsonschema.Schema{
			"steps": {Type: "array", Items: stepSchema},
		},
		Required: []string{"steps"},
	}
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}

	return out
}
