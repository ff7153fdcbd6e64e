package exporter

import (
	"bufio"
	"fmt"
	"io"

	"emicli/internal/dataprocessing"
)

// TextSink writes the report as plain lines, the format redirected to a
// .csv file by users of the tool.
type TextSink struct {
	w      *bufio.Writer
	closer io.Closer
}

// NewTextSink creates a text sink on w. If w is an io.Closer other than the
// process's standard streams, pass it as closer to have Close release it.
func NewTextSink(w io.Writer, closer io.Closer) *TextSink {
	return &TextSink{w: bufio.NewWriter(w), closer: closer}
}

// WriteHeader writes the quoted column titles.
func (s *TextSink) WriteHeader(maxTimes int) error {
	return s.writeLine(HeaderLine(maxTimes))
}

// WriteRow writes one report row.
func (s *TextSink) WriteRow(row dataprocessing.Row) error {
	return s.writeLine(row.String())
}

func (s *TextSink) writeLine(line string) error {
	if _, err := s.w.WriteString(line); err != nil {
		return fmt.Errorf("failed to write report line: %w", err)
	}
	return s.w.WriteByte('\n')
}

// Close flushes buffered lines and closes the underlying writer if owned.
func (s *TextSink) Close() error {
	err := s.w.Flush()
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
