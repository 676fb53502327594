package script

import (
	"encoding/json"
	"fmt"

	goyaml "github.com/goccy/go-yaml"
)

// LoadDocument decodes a script Document from YAML or JSON bytes (JSON
// is valid YAML, so one path covers both). It goes through an
// intermediate generic Unmarshal/re-Marshal round trip rather than
// decoding into Document directly with goccy/go-yaml, since this
// package's retrieved examples only ever exercise goccy/go-yaml against
// `any` (helpers.go's ParseYAMLValue), never against a tagged struct;
// routing through encoding/json for the struct decode relies only on
// the standard library's own well-defined `json` tag behavior.
func LoadDocument(data []byte) (Document, error) {
	var generic any

	if err := goyaml.Unmarshal(data, &generic); err != nil {
		return Document{}, fmt.Errorf("script: parse: %w", err)
	}

	raw, err := json.Marshal(generic)
	if err != nil {
		return Document{}, fmt.Errorf("script: normalize: %w", err)
	}

	var doc Document

	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, fmt.Errorf("script: decode: %w", err)
	}

	return doc, nil
}
