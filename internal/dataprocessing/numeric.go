package dataprocessing

import (
	"math"
	"strconv"
	"strings"
)

// Bounds of the magnitude range rendered in positional notation.
const (
	fixedLowerBound = 1e-4
	fixedUpperBound = 1e16
)

// FormatNumber renders v as the shortest decimal that reads back as the same
// float64. Values in [1e-4, 1e16) use positional notation and always carry a
// fractional part ("6.0"); other magnitudes use exponent notation ("1e+16",
// "1.5e-05").
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	abs := math.Abs(v)
	if abs != 0 && (abs < fixedLowerBound || abs >= fixedUpperBound) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// ParseNumber reads a single value token. Surrounding whitespace is ignored.
func ParseNumber(token string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(token), 64)
}
