package textutil

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// Float is the set of floating-point types ParseReal can produce.
type Float interface {
	~float32 | ~float64
}

var (
	ErrEmpty          = errors.New("empty input")
	ErrMultipleTokens = errors.New("more than one token")
	ErrInvalidReal    = errors.New("not a real number")
)

// ParseError records a failed conversion.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse real %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// cSpace is the set of bytes isspace accepts in the C locale.
const cSpace = " \t\n\v\f\r"

// specialValues maps upper-cased spellings of infinity and NaN, including the
// ones printed by the MSVC runtime, to their values.
var specialValues = sync.OnceValue(func() map[string]float64 {
	inf := math.Inf(1)
	nan := math.NaN()
	negNaN := math.Copysign(nan, -1)
	return map[string]float64{
		"INF":       inf,
		"+INF":      inf,
		"-INF":      -inf,
		"INFINITY":  inf,
		"+INFINITY": inf,
		"-INFINITY": -inf,
		"NAN":       nan,
		"+NAN":      nan,
		"-NAN":      negNaN,
		"1.#INF":    inf,
		"-1.#INF":   -inf,
		"1.#QNAN":   nan,
		"-1.#QNAN":  negNaN,
	}
})

// ParseReal converts s to a float32 or float64.
//
// A plain decimal or scientific literal is tried first; surrounding
// whitespace is allowed, anything else after the number is not. Failing
// that, s must hold exactly one token that matches, ignoring ASCII case, one
// of the spellings of infinity or NaN listed in specialValues.
func ParseReal[T Float](s string) (T, error) {
	var zero T
	bitSize := reflect.TypeFor[T]().Bits()

	trimmed := strings.Trim(s, cSpace)
	if isDecimal(trimmed) {
		if f, err := strconv.ParseFloat(trimmed, bitSize); err == nil {
			return T(f), nil
		}
	}

	fields := strings.FieldsFunc(s, IsSpace)
	switch {
	case len(fields) == 0:
		return zero, &ParseError{Input: s, Err: ErrEmpty}
	case len(fields) > 1:
		return zero, &ParseError{Input: s, Err: ErrMultipleTokens}
	}
	if v, ok := specialValues()[asciiUpper(fields[0])]; ok {
		return T(v), nil
	}
	return zero, &ParseError{Input: s, Err: ErrInvalidReal}
}

// ParseFloat32 is ParseReal for float32.
func ParseFloat32(s string) (float32, error) { return ParseReal[float32](s) }

// ParseFloat64 is ParseReal for float64.
func ParseFloat64(s string) (float64, error) { return ParseReal[float64](s) }

// ParseReals splits full on delims and parses every fragment with ParseReal.
// An empty full yields an empty slice. On the first bad fragment the whole
// call fails and no values are returned.
func ParseReals[T Float](full, delims string, omitEmpty bool) ([]T, error) {
	if full == "" {
		return []T{}, nil
	}
	fragments := SplitString(full, delims, omitEmpty)
	out := make([]T, len(fragments))
	for i, frag := range fragments {
		v, err := ParseReal[T](frag)
		if err != nil {
			return nil, fmt.Errorf("fragment %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// isDecimal reports whether s is [+-]digits[.digits][(e|E)[+-]digits] with at
// least one mantissa digit. strconv alone would also take hex floats,
// underscores and the inf/nan words.
func isDecimal(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for i < len(s) && isDigit(s[i]) {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// IsSpace is isspace in the C locale: ASCII whitespace only.
func IsSpace(r rune) bool { return r < 0x80 && strings.IndexByte(cSpace, byte(r)) >= 0 }

// asciiUpper upper-cases ASCII letters only, like toupper in the C locale.
func asciiUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}
