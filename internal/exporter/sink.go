package exporter

import (
	"errors"
	"fmt"
	"strings"

	"emicli/internal/dataprocessing"
)

// Sink receives the report: one header, then rows in report order.
type Sink interface {
	WriteHeader(maxTimes int) error
	WriteRow(row dataprocessing.Row) error
	Close() error
}

// HeaderColumns returns the report column titles for maxTimes observations.
func HeaderColumns(maxTimes int) []string {
	cols := make([]string, 0, 5+2*maxTimes)
	cols = append(cols, "filename", "location", "year", "month", "day")
	for i := 1; i <= maxTimes; i++ {
		cols = append(cols, fmt.Sprintf("v%d", i))
	}
	for i := 1; i <= maxTimes; i++ {
		cols = append(cols, fmt.Sprintf("t%d", i))
	}
	return cols
}

// HeaderLine renders the header row of the text report, every title quoted:
//
//	"filename", "location", "year", "month", "day", "v1", ..., "vM", "t1", ..., "tM"
func HeaderLine(maxTimes int) string {
	cols := HeaderColumns(maxTimes)
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = `"` + c + `"`
	}
	return strings.Join(quoted, ", ")
}

// MultiSink fans the report out to several sinks.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink creates a sink writing to every given sink in order.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// WriteHeader writes the header to every sink, stopping at the first failure.
func (m *MultiSink) WriteHeader(maxTimes int) error {
	for _, s := range m.sinks {
		if err := s.WriteHeader(maxTimes); err != nil {
			return err
		}
	}
	return nil
}

// WriteRow writes row to every sink, stopping at the first failure.
func (m *MultiSink) WriteRow(row dataprocessing.Row) error {
	for _, s := range m.sinks {
		if err := s.WriteRow(row); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink and joins their errors.
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
