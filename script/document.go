package script

import "encoding/json"

// Document is the top-level ops-pipeline script format: an ordered list
// of steps run against the input passed to Pipeline.Run.
type Document struct {
	Steps []Step `json:"steps"`
}

// Step describes one ops.Dispatch call. In names the value this step
// operates on: the literal "$input" for the pipeline's own input, or
// another step's As name to chain off a prior result. Op and each Flags
// entry are the string names from OpNames/FlagNames. As, if set, makes
// this step's result addressable by later steps' In.
type Step struct {
	As    string   `json:"as,omitempty"`
	Op    string   `json:"op"`
	In    string   `json:"in,omitempty"`
	Flags []string `json:"flags,omitempty"`
	Args  StepArgs `json:"args,omitempty"`
}

// StepArgs mirrors ops.Args field for field, but with every value.V
// input expressed as a raw JSON/YAML literal (decoded later against a
// builder) and every callback expressed as a Registry name instead of a
// Go func value, since a script document cannot embed executable code.
type StepArgs struct {
	Bool     bool            `json:"bool,omitempty"`
	Int      int64           `json:"int,omitempty"`
	Uint     uint64          `json:"uint,omitempty"`
	Unsigned bool            `json:"unsigned,omitempty"`
	Float    float64         `json:"float,omitempty"`
	Str      string          `json:"str,omitempty"`
	Items    []json.RawMessage `json:"items,omitempty"`
	Index    int             `json:"index,omitempty"`
	Count    int             `json:"count,omitempty"`
	Key      json.RawMessage `json:"key,omitempty"`
	Value    json.RawMessage `json:"value,omitempty"`
	Path     []json.RawMessage `json:"path,omitempty"`

	// Predicate, Transform, and Reducer name a callback registered in
	// this Pipeline's Registry (see registry.go), looked up at Run time
	// rather than at decode time, so a Document can be validated and
	// inspected before any Registry is attached to it.
	Predicate string          `json:"predicate,omitempty"`
	Transform string          `json:"transform,omitempty"`
	Reducer   string          `json:"reducer,omitempty"`
	Seed      json.RawMessage `json:"seed,omitempty"`

	MultiDocument bool   `json:"multiDocument,omitempty"`
	EmitMode      string `json:"emitMode,omitempty"`

	// Schema names a builder.Schema constant (e.g. "yaml12-core", "json")
	// to apply for this step's ParseOptions/EmitOptions, for a PARSE or
	// EMIT step that needs a schema other than the Builder's own default.
	// See schemaFromName in pipeline.go for the accepted names.
	Schema string `json:"schema,omitempty"`
}
