package scalar

import (
	"math"
	"strconv"
)

type numShape struct {
	token      string // full validated token, sign included
	digitsBase int
	isFloat    bool
}

// scanNumber validates text against the numeric grammar (§4.4 rule 4) and
// reports the shape it matched, without doing the arbitrary-precision
// conversion itself; that is left to strconv once the shape is known to
// be exactly what strconv expects.
func scanNumber(text string, isJSON bool) (numShape, bool) {
	i := 0
	n := len(text)

	if i < n && (text[i] == '+' || text[i] == '-') {
		if text[i] == '+' && isJSON {
			return numShape{}, false
		}

		i++
	}

	base := 10
	intStart := i

	if !isJSON && i+1 < n && text[i] == '0' && (text[i+1] == 'x' || text[i+1] == 'X') {
		base = 16
		i += 2
		intStart = i
	} else if !isJSON && i+1 < n && text[i] == '0' && (text[i+1] == 'o' || text[i+1] == 'O') {
		base = 8
		i += 2
		intStart = i
	}

	digitCount := 0
	for i < n && isDigitBase(text[i], base) {
		i++
		digitCount++
	}

	if digitCount == 0 {
		return numShape{}, false
	}

	if isJSON && digitCount > 1 && text[intStart] == '0' {
		return numShape{}, false
	}

	isFloat := false

	if base == 10 && i < n && text[i] == '.' {
		isFloat = true
		i++

		fracDigits := 0
		for i < n && isDigitBase(text[i], 10) {
			i++
			fracDigits++
		}

		if fracDigits == 0 {
			return numShape{}, false
		}
	}

	if base == 10 && i < n && (text[i] == 'e' || text[i] == 'E') {
		isFloat = true
		i++

		if i < n && (text[i] == '+' || text[i] == '-') {
			i++
		}

		expDigits := 0
		for i < n && isDigitBase(text[i], 10) {
			i++
			expDigits++
		}

		if expDigits == 0 {
			return numShape{}, false
		}
	}

	if i != n {
		return numShape{}, false
	}

	return numShape{token: text, digitsBase: base, isFloat: isFloat}, true
}

func isDigitBase(c byte, base int) bool {
	switch base {
	case 16:
		return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
	case 8:
		return c >= '0' && c <= '7'
	default:
		return c >= '0' && c <= '9'
	}
}

// numericKind distinguishes which of the three builder factories a parsed
// token should go through.
type numericKind int

const (
	numNone numericKind = iota
	numSigned
	numUnsigned
	numFloat
)

// parseNumeric applies §4.4 rule 4 in full: scan the shape, then convert,
// falling back through signed -> unsigned -> string on overflow exactly as
// specified.
func parseNumeric(text string, isJSON bool) (kind numericKind, i64 int64, u64 uint64, f64 float64) {
	shape, ok := scanNumber(text, isJSON)
	if !ok {
		return numNone, 0, 0, 0
	}

	if shape.isFloat {
		f, err := strconv.ParseFloat(shape.token, 64)
		if err != nil {
			return numNone, 0, 0, 0
		}

		return numFloat, 0, 0, f
	}

	negative := shape.token[0] == '-'

	digitsStart := 0
	if shape.token[0] == '+' || shape.token[0] == '-' {
		digitsStart = 1
	}

	if shape.digitsBase != 10 {
		digitsStart += 2 // skip 0x/0o prefix
	}

	mag, err := strconv.ParseUint(shape.token[digitsStart:], shape.digitsBase, 64)
	if err != nil {
		return numNone, 0, 0, 0
	}

	if !negative {
		if mag <= uint64(math.MaxInt64) {
			return numSigned, int64(mag), 0, 0
		}

		// Overflows signed 64-bit; retry unsigned (mag already fits uint64,
		// since ParseUint above succeeded at bitSize 64).
		return numUnsigned, 0, mag, 0
	}

	const signedMagLimit = uint64(1) << 63 // magnitude of math.MinInt64

	if mag > signedMagLimit {
		return numNone, 0, 0, 0
	}

	if mag == signedMagLimit {
		return numSigned, math.MinInt64, 0, 0
	}

	return numSigned, -int64(mag), 0, 0
}
