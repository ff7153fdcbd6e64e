package dataprocessing

import (
	"strconv"
	"strings"
	"unicode"
)

// LineKind tags a classified input line.
type LineKind int

const (
	LineBlank LineKind = iota
	LineHeader
	LineMultiplier
	LineData
)

// String returns the kind name used in logs.
func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineHeader:
		return "header"
	case LineMultiplier:
		return "multiplier"
	case LineData:
		return "data"
	default:
		return "unknown"
	}
}

// Line is the result of classifying one trimmed input line. Only the fields
// matching Kind are set.
type Line struct {
	Kind LineKind

	Header Header

	// Multiplier directives keep the unparsed number so a bad token can be
	// reported verbatim.
	Factor    float64
	FactorRaw string

	Location string
	Values   string
	Times    string
}

// multiplierPrefix is the directive keyword; at least one whitespace
// character must follow it.
const multiplierPrefix = "mult"

// TrimLine removes the trailing newline and whitespace of a raw line.
func TrimLine(raw string) string {
	return strings.TrimRightFunc(raw, unicode.IsSpace)
}

// ClassifyFirst classifies the first line of a file. ok is false when the
// line is not a valid header.
func ClassifyFirst(line string) (Line, bool) {
	h, ok := ParseHeader(line)
	if !ok {
		return Line{}, false
	}
	return Line{Kind: LineHeader, Header: h}, true
}

// Classify classifies a line after the header. The returned error is non-nil
// only for a multiplier directive whose number cannot be parsed; the Line is
// still tagged LineMultiplier in that case.
func Classify(line string) (Line, error) {
	if strings.TrimSpace(line) == "" {
		return Line{Kind: LineBlank}, nil
	}
	if raw, ok := multiplierOperand(line); ok {
		l := Line{Kind: LineMultiplier, FactorRaw: raw}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return l, err
		}
		l.Factor = f
		return l, nil
	}

	location, rest, _ := strings.Cut(line, ";")
	values, times, _ := strings.Cut(rest, ";")
	return Line{
		Kind:     LineData,
		Location: strings.TrimSpace(location),
		Values:   strings.TrimSpace(values),
		Times:    strings.TrimSpace(times),
	}, nil
}

// multiplierOperand returns the operand of a "mult <number>" directive. A
// line containing ';' is never a directive, so a location named "mult ..."
// stays a data line.
func multiplierOperand(line string) (string, bool) {
	if strings.Contains(line, ";") || !strings.HasPrefix(line, multiplierPrefix) {
		return "", false
	}
	rest := line[len(multiplierPrefix):]
	if rest == "" || !unicode.IsSpace(rune(rest[0])) {
		return "", false
	}
	return strings.TrimSpace(rest), true
}
