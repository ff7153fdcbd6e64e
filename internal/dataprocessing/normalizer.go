package dataprocessing

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	apperrors "emicli/internal/errors"
)

// defaultMaxLineBytes bounds a single input line.
const defaultMaxLineBytes = 1 << 20

// FileStatus is the outcome of normalizing one file.
type FileStatus string

const (
	StatusOK            FileStatus = "ok"
	StatusInvalidHeader FileStatus = "invalid_header"
	StatusFailed        FileStatus = "failed"
)

// FileResult holds the rows produced for one file.
type FileResult struct {
	File   string
	Status FileStatus
	Date   DateParts
	Rows   []Row
	// Lines is the number of lines read, header included.
	Lines int
}

// Normalizer turns measurement files into report rows of a fixed width.
type Normalizer struct {
	maxTimes     int
	maxLineBytes int
	logger       *slog.Logger
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithLogger sets the logger used for per-line debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Normalizer) {
		n.logger = logger
	}
}

// WithMaxLineBytes sets the longest line accepted, in bytes.
func WithMaxLineBytes(limit int) Option {
	return func(n *Normalizer) {
		if limit > 0 {
			n.maxLineBytes = limit
		}
	}
}

// NewNormalizer creates a normalizer padding rows to maxTimes observations.
func NewNormalizer(maxTimes int, opts ...Option) (*Normalizer, error) {
	if maxTimes < 1 {
		return nil, apperrors.InvalidArgumentsError(fmt.Sprintf("maxTimes must be positive, got %d", maxTimes))
	}
	n := &Normalizer{
		maxTimes:     maxTimes,
		maxLineBytes: defaultMaxLineBytes,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.logger = n.logger.With(slog.String("component", "normalizer"))
	return n, nil
}

// MaxTimes returns the report width.
func (n *Normalizer) MaxTimes() int {
	return n.maxTimes
}

// Normalize reads one file and returns its rows. name may be a full path;
// only its base name appears in the rows.
//
// A file whose first line is not a valid header yields StatusInvalidHeader
// and no rows without error. On error the result holds the rows built before
// the failing line and has StatusFailed.
func (n *Normalizer) Normalize(ctx context.Context, r io.Reader, name string) (*FileResult, error) {
	base := filepath.Base(name)
	result := &FileResult{File: base, Status: StatusOK}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(64*1024, n.maxLineBytes)), n.maxLineBytes)

	var (
		state          MultiplierState
		headerConsumed bool
	)
	fail := func(err error) (*FileResult, error) {
		result.Status = StatusFailed
		return result, err
	}

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}
		result.Lines++
		text := TrimLine(scanner.Text())

		if !headerConsumed {
			l, ok := ClassifyFirst(text)
			if !ok {
				n.logger.DebugContext(ctx, "Invalid header, skipping file",
					slog.String("file", base),
					slog.String("line", text))
				return &FileResult{File: base, Status: StatusInvalidHeader, Lines: result.Lines}, nil
			}
			result.Date = l.Header.Date
			headerConsumed = true
			continue
		}

		l, err := Classify(text)
		if err != nil {
			return fail(apperrors.MalformedNumericError(base, result.Lines, l.FactorRaw, err))
		}

		switch l.Kind {
		case LineBlank:
			continue
		case LineMultiplier:
			state = state.OnMultiplier(l.Factor)
			n.logger.DebugContext(ctx, "Multiplier pending",
				slog.String("file", base),
				slog.Int("line", result.Lines),
				slog.Float64("factor", l.Factor))
		case LineData:
			var factor float64
			factor, state = state.OnData()
			row, err := n.buildRow(base, result.Lines, result.Date, l, factor)
			if err != nil {
				return fail(err)
			}
			result.Rows = append(result.Rows, row)
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return fail(apperrors.LineTooLongError(base, result.Lines+1, n.maxLineBytes, err))
		}
		return fail(apperrors.UnreadableFileError(base, err))
	}
	if !headerConsumed {
		// Empty file: there is no header to validate.
		result.Status = StatusInvalidHeader
	}
	return result, nil
}

// buildRow converts a data line into a row, applying factor to its values.
func (n *Normalizer) buildRow(file string, lineNo int, date DateParts, l Line, factor float64) (Row, error) {
	count := strings.Count(l.Values, ",") + 1
	if count > n.maxTimes {
		return Row{}, apperrors.TooManyValuesError(file, lineNo, count, n.maxTimes)
	}

	values := l.Values
	if factor != identityFactor {
		scaled, err := scaleValues(values, factor)
		if err != nil {
			return Row{}, apperrors.MalformedNumericError(file, lineNo, err.token, err.cause)
		}
		values = scaled
	}

	return Row{
		File:     file,
		Location: l.Location,
		Date:     date,
		Values:   values,
		Times:    l.Times,
		Count:    count,
		MaxTimes: n.maxTimes,
	}, nil
}

type tokenError struct {
	token string
	cause error
}

// scaleValues multiplies every comma-separated value by factor and joins the
// results with bare commas.
func scaleValues(values string, factor float64) (string, *tokenError) {
	tokens := strings.Split(values, ",")
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		v, err := ParseNumber(tok)
		if err != nil {
			return "", &tokenError{token: strings.TrimSpace(tok), cause: err}
		}
		out[i] = FormatNumber(factor * v)
	}
	return strings.Join(out, ","), nil
}
