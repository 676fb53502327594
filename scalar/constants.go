package scalar

import "github.com/macropower/vtree/builder"

// constantSet is the per-schema table of exact-match spellings for the
// null, boolean, and non-finite float constants. A nil set field means
// that schema never resolves a string to that constant implicitly. The
// YAML-1.2-failsafe set is empty, so under that schema no text resolves
// to null, a boolean, or a non-finite float; numeric text is still typed
// by Decode's numeric rule, which applies under every schema.
type constantSet struct {
	null     map[string]bool
	trueSet  map[string]bool
	falseSet map[string]bool
	posInf   map[string]bool
	negInf   map[string]bool
	nan      map[string]bool
}

func set(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}

	return m
}

var (
	jsonConstants = constantSet{
		null:     set("null"),
		trueSet:  set("true"),
		falseSet: set("false"),
	}

	// yaml12CoreConstants also backs SchemaAuto: absent an explicit
	// schema, a plain scalar is resolved the way a YAML 1.2 core-schema
	// decoder would, which is what goccy/go-yaml itself implements by
	// default.
	yaml12CoreConstants = constantSet{
		null:     set("~", "null", "Null", "NULL"),
		trueSet:  set("true", "True", "TRUE"),
		falseSet: set("false", "False", "FALSE"),
		posInf:   set(".inf", ".Inf", ".INF", "+.inf", "+.Inf", "+.INF"),
		negInf:   set("-.inf", "-.Inf", "-.INF"),
		nan:      set(".nan", ".NaN", ".NAN"),
	}

	yaml11Constants = constantSet{
		null:     set("~", "null", "Null", "NULL", ""),
		trueSet:  set("true", "True", "TRUE", "y", "Y", "on", "On", "ON"),
		falseSet: set("false", "False", "FALSE", "n", "N", "off", "Off", "OFF"),
		posInf:   set(".inf", ".Inf", ".INF", "+.inf", "+.Inf", "+.INF"),
		negInf:   set("-.inf", "-.Inf", "-.INF"),
		nan:      set(".nan", ".NaN", ".NAN"),
	}

	yaml12FailsafeConstants = constantSet{}
)

func constantsFor(schema builder.Schema) constantSet {
	switch schema {
	case builder.SchemaJSON, builder.SchemaYAML12JSON:
		return jsonConstants
	case builder.SchemaYAML11:
		return yaml11Constants
	case builder.SchemaYAML12Failsafe:
		return yaml12FailsafeConstants
	case builder.SchemaYAML12Core, builder.SchemaAuto:
		return yaml12CoreConstants
	default:
		return yaml12CoreConstants
	}
}
