package exporter

import (
	"fmt"
	"math"
	"strconv"

	"github.com/xuri/excelize/v2"

	"emicli/internal/dataprocessing"
)

// XLSXSink writes the report to a single-sheet workbook. Rows are streamed
// and the file is only written by Close.
type XLSXSink struct {
	path   string
	sheet  string
	file   *excelize.File
	stream *excelize.StreamWriter
	row    int
}

// NewXLSXSink prepares a workbook that Close saves to path.
func NewXLSXSink(path, sheet string) (*XLSXSink, error) {
	f := excelize.NewFile()
	if sheet != f.GetSheetName(0) {
		if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to name sheet %q: %w", sheet, err)
		}
	}
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create stream writer: %w", err)
	}
	return &XLSXSink{path: path, sheet: sheet, file: f, stream: sw}, nil
}

// WriteHeader writes the column titles on the first row.
func (s *XLSXSink) WriteHeader(maxTimes int) error {
	cols := HeaderColumns(maxTimes)
	values := make([]interface{}, len(cols))
	for i, c := range cols {
		values[i] = c
	}
	return s.appendRow(values)
}

// WriteRow appends a report row. Finite observations are stored as numeric
// cells; the date parts stay text to keep leading zeros.
func (s *XLSXSink) WriteRow(row dataprocessing.Row) error {
	cells := row.Cells()
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
		if i < 5 {
			continue
		}
		if f, err := strconv.ParseFloat(c, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			values[i] = f
		}
	}
	return s.appendRow(values)
}

func (s *XLSXSink) appendRow(values []interface{}) error {
	s.row++
	cell, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		return err
	}
	if err := s.stream.SetRow(cell, values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", s.row, err)
	}
	return nil
}

// Close flushes the stream and saves the workbook.
func (s *XLSXSink) Close() error {
	defer s.file.Close()
	if err := s.stream.Flush(); err != nil {
		return fmt.Errorf("failed to flush workbook: %w", err)
	}
	if err := s.file.SaveAs(s.path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", s.path, err)
	}
	return nil
}
