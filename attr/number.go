package attr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Number is a numeric attribute value. It remembers whether it was written
// as an integer so that re-serializing keeps the same lexical form.
type Number struct {
	f     float64
	i     int64
	isInt bool
}

func Int(v int64) Number {
	return Number{f: float64(v), i: v, isInt: true}
}

func Float(v float64) Number {
	return Number{f: v}
}

// SyntaxError reports a token that is not a numeric literal.
type SyntaxError struct {
	Token string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid numeric literal %q", e.Token)
}

// ParseNumber reads an integer or float literal. The lexical form decides
// which one it becomes: "4" is an integer, "4.0" and "4e0" are floats.
func ParseNumber(s string) (Number, error) {
	tok := strings.TrimSpace(s)
	if tok == "" {
		return Number{}, &SyntaxError{Token: s}
	}
	if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return Int(i), nil
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return Number{}, &SyntaxError{Token: s}
	}
	// ParseFloat accepts these spellings but they are not number literals
	lower := strings.ToLower(strings.TrimLeft(tok, "+-"))
	if strings.HasPrefix(lower, "inf") || strings.HasPrefix(lower, "nan") || strings.HasPrefix(lower, "0x") {
		return Number{}, &SyntaxError{Token: s}
	}
	return Float(f), nil
}

// parseField is ParseNumber with the empty-field rule shared by every
// delimited sequence: an empty token stands for integer 0.
func parseField(tok string) (Number, error) {
	if strings.TrimSpace(tok) == "" {
		return Int(0), nil
	}
	return ParseNumber(tok)
}

func (n Number) IsInt() bool {
	return n.isInt
}

func (n Number) Float64() float64 {
	return n.f
}

// Int64 truncates float values toward zero.
func (n Number) Int64() int64 {
	if n.isInt {
		return n.i
	}
	return int64(n.f)
}

func (n Number) IsZero() bool {
	return n.f == 0
}

// Equal compares kind and value, so Int(1) and Float(1) differ.
func (n Number) Equal(o Number) bool {
	if n.isInt != o.isInt {
		return false
	}
	if n.isInt {
		return n.i == o.i
	}
	return n.f == o.f || (math.IsNaN(n.f) && math.IsNaN(o.f))
}

func (n Number) String() string {
	if n.isInt {
		return strconv.FormatInt(n.i, 10)
	}
	// exponent form only outside [1e-4, 1e16), like the files UTAU writes
	if abs := math.Abs(n.f); abs >= 1e16 || (abs != 0 && abs < 1e-4) || math.IsInf(n.f, 0) || math.IsNaN(n.f) {
		return strconv.FormatFloat(n.f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(n.f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
