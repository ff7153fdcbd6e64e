package dataprocessing

import (
	"strings"
)

// NotAvailable fills value and time slots a data line does not supply.
const NotAvailable = "N/A"

// Row is one report row built from a data line. Values and Times hold the
// comma-separated observations as they will be printed, before padding.
type Row struct {
	File     string
	Location string
	Date     DateParts
	Values   string
	Times    string
	// Count is the number of observations on the line.
	Count int
	// MaxTimes is the report width the row is padded to.
	MaxTimes int
}

// padding returns the ", N/A" suffix appended to both lists.
func (r Row) padding() string {
	missing := r.MaxTimes - r.Count
	if missing <= 0 {
		return ""
	}
	return strings.Repeat(", "+NotAvailable, missing)
}

// String renders the row in report form:
//
//	"file", "location", yyyy, mm, dd, v1,...,vN[, N/A...], t1,...,tN[, N/A...]
func (r Row) String() string {
	pad := r.padding()
	var b strings.Builder
	b.WriteString(`"`)
	b.WriteString(r.File)
	b.WriteString(`", "`)
	b.WriteString(r.Location)
	b.WriteString(`", `)
	b.WriteString(strings.Join([]string{r.Date.Year, r.Date.Month, r.Date.Day}, ", "))
	b.WriteString(", ")
	b.WriteString(r.Values)
	b.WriteString(pad)
	b.WriteString(", ")
	b.WriteString(r.Times)
	b.WriteString(pad)
	return b.String()
}

// Cells splits the row into one string per report column: filename,
// location, year, month, day, MaxTimes values then MaxTimes times.
func (r Row) Cells() []string {
	cells := make([]string, 0, 5+2*r.MaxTimes)
	cells = append(cells, r.File, r.Location, r.Date.Year, r.Date.Month, r.Date.Day)
	cells = append(cells, padCells(r.Values, r.MaxTimes)...)
	cells = append(cells, padCells(r.Times, r.MaxTimes)...)
	return cells
}

func padCells(list string, width int) []string {
	tokens := strings.Split(list, ",")
	out := make([]string, 0, width)
	for _, tok := range tokens {
		out = append(out, strings.TrimSpace(tok))
	}
	for len(out) < width {
		out = append(out, NotAvailable)
	}
	return out
}
