package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"emicli/internal/dataprocessing"
)

// CSVSink writes the report as RFC 4180 CSV with one cell per column, for
// tools that cannot read the quoted text layout.
type CSVSink struct {
	w         io.Writer
	writer    *csv.Writer
	closer    io.Closer
	bomPrefix bool
}

// CSVOption configures a CSVSink.
type CSVOption func(*CSVSink)

// WithBOM prefixes the output with a UTF-8 BOM for Excel compatibility.
func WithBOM() CSVOption {
	return func(s *CSVSink) {
		s.bomPrefix = true
	}
}

// NewCSVSink creates a CSV sink on w; closer, when non-nil, is closed by Close.
func NewCSVSink(w io.Writer, closer io.Closer, opts ...CSVOption) *CSVSink {
	s := &CSVSink{w: w, writer: csv.NewWriter(w), closer: closer}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WriteHeader writes the column titles, after the BOM if requested.
func (s *CSVSink) WriteHeader(maxTimes int) error {
	if s.bomPrefix {
		if _, err := s.w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}
	if err := s.writer.Write(HeaderColumns(maxTimes)); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	return nil
}

// WriteRow writes one record.
func (s *CSVSink) WriteRow(row dataprocessing.Row) error {
	if err := s.writer.Write(row.Cells()); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// Close flushes and closes the stream writer.
func (s *CSVSink) Close() error {
	s.writer.Flush()
	err := s.writer.Error()
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
