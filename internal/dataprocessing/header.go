package dataprocessing

import (
	"regexp"
)

// headerRe matches a full header line: "# <code> <yyyy>-<mm>-<dd>".
var headerRe = regexp.MustCompile(`^#\s+(\d+)\s+(\d+)-(\d+)-(\d+)$`)

// DateParts holds the date components of a header exactly as written.
type DateParts struct {
	Year  string
	Month string
	Day   string
}

// Header is a parsed header line.
type Header struct {
	Code string
	Date DateParts
}

// ParseHeader parses a header line whose trailing whitespace has been trimmed.
// The second return value is false when the line is not a valid header.
func ParseHeader(line string) (Header, bool) {
	m := headerRe.FindStringSubmatch(line)
	if m == nil {
		return Header{}, false
	}
	return Header{
		Code: m[1],
		Date: DateParts{Year: m[2], Month: m[3], Day: m[4]},
	}, true
}

// ValidateHeader checks the first line of a file and extracts its date.
// No range checks are made on the components.
func ValidateHeader(line string) (DateParts, bool) {
	h, ok := ParseHeader(line)
	return h.Date, ok
}
