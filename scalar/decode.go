package scalar

import (
	"github.com/macropower/vtree/builder"
	"github.com/macropower/vtree/value"
)

// maxInlineTextLen is the performance cutoff past which text is always
// built as a string without attempting constant or numeric matching.
const maxInlineTextLen = 4096

// Decode builds a value.V from raw scalar text, applying the builder's
// schema to decide whether it denotes null, a boolean, a number, or an
// opaque string. If forced is non-nil, the decoded value's Kind must
// match *forced or Decode returns value.Invalid; passing
// value.KindString as forced short-circuits every other rule, since a
// forced string never fails.
func Decode(b *builder.Builder, text []byte, forced *value.Kind) value.V {
	if forced != nil && *forced == value.KindString {
		return b.StringBytes(text)
	}

	if len(text) > maxInlineTextLen {
		return checkForced(b, b.StringBytes(text), forced)
	}

	s := string(text)
	consts := constantsFor(b.Schema())

	switch {
	case consts.null[s]:
		return checkForced(b, b.Null(), forced)
	case consts.trueSet[s]:
		return checkForced(b, b.Bool(true), forced)
	case consts.falseSet[s]:
		return checkForced(b, b.Bool(false), forced)
	case consts.posInf[s]:
		return checkForced(b, b.Float(posInf()), forced)
	case consts.negInf[s]:
		return checkForced(b, b.Float(negInf()), forced)
	case consts.nan[s]:
		return checkForced(b, b.Float(nan()), forced)
	}

	isJSON := b.Schema() == builder.SchemaJSON || b.Schema() == builder.SchemaYAML12JSON

	switch kind, i64, u64, f64 := parseNumeric(s, isJSON); kind {
	case numSigned:
		return checkForced(b, b.Int(i64), forced)
	case numUnsigned:
		return checkForced(b, b.Uint(u64), forced)
	case numFloat:
		return checkForced(b, b.Float(f64), forced)
	}

	return checkForced(b, b.StringBytes(text), forced)
}

func checkForced(b *builder.Builder, v value.V, forced *value.Kind) value.V {
	if forced == nil || v.IsInvalid() {
		return v
	}

	if b.TypeOf(v) != *forced {
		return value.Invalid
	}

	return v
}
