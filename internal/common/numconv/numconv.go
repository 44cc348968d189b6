// internal/common/numconv/numconv.go

// Package numconv converts strings to numbers the way a browser script does: Number() for
// whole-string conversion, parseInt and parseFloat for prefixes.
package numconv

import (
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	decimalLiteral = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?$`)
	decimalPrefix  = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?`)
)

// IsSpace reports whether r is white space or a line terminator to a script engine.
// U+0085 is not, unlike unicode.IsSpace.
func IsSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// ToNumber converts a whole string to a number. Anything that is not a numeric literal
// yields NaN; blank input yields 0.
func ToNumber(s string) float64 {
	s = strings.TrimFunc(s, IsSpace)
	if s == "" {
		return 0
	}

	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			return radixToFloat(s[2:], base)
		}
	}

	if !decimalLiteral.MatchString(s) {
		return math.NaN()
	}
	return parseDecimal(s)
}

func radixToFloat(digits string, base int) float64 {
	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return math.NaN()
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return math.NaN()
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	return f
}

// parseDecimal parses a literal already known to be well formed. Out of range values
// become ±Inf or ±0, which is what the browser produces too.
func parseDecimal(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return f
		}
		return math.NaN()
	}
	return f
}

// ParseInt parses the longest integer prefix after optional whitespace, sign and 0x
// prefix. ok is false when there are no digits or the value does not fit in an int64.
func ParseInt(s string) (int64, bool) {
	s = strings.TrimLeftFunc(s, IsSpace)

	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	base := 10
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	end := 0
	for end < len(s) && isDigit(s[end], base) {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, ok := new(big.Int).SetString(s[:end], base)
	if !ok {
		return 0, false
	}
	if negative {
		n.Neg(n)
	}
	if !n.IsInt64() {
		return 0, false
	}
	return n.Int64(), true
}

func isDigit(c byte, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case base == 16 && c >= 'a' && c <= 'f':
		return true
	case base == 16 && c >= 'A' && c <= 'F':
		return true
	}
	return false
}

// ParseFloat parses the longest decimal prefix after optional whitespace.
// ok is false when nothing parses or the result is not finite, "Infinity" included.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, IsSpace)

	literal := decimalPrefix.FindString(s)
	if literal == "" {
		return 0, false
	}

	f := parseDecimal(literal)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
