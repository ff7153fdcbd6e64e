package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"emicli/internal/config"
	"emicli/internal/dataprocessing"
	apperrors "emicli/internal/errors"
	"emicli/internal/exporter"
	"emicli/internal/files"
	"emicli/internal/infrastructure"
)

// FileFailure records a file that could not be normalized.
type FileFailure struct {
	File string
	Err  error
}

// RunSummary describes one report run.
type RunSummary struct {
	RunID          string
	FilesSeen      int
	FilesProcessed int
	// FilesSkipped counts files without a valid header.
	FilesSkipped int
	FilesFailed  int
	Rows         int
	Failures     []FileFailure
	Duration     time.Duration
}

// ReportService drives a report run: it discovers the input files,
// normalizes them one at a time and feeds the rows to a sink.
type ReportService struct {
	cfg        config.ReportConfig
	discovery  *files.Discovery
	files      *files.Manager
	normalizer *dataprocessing.Normalizer
	logger     *slog.Logger
	metrics    *infrastructure.ReportMetrics
	tracer     trace.Tracer
}

// NewReportService creates the report driver. metrics and tracer may be nil.
func NewReportService(
	cfg config.ReportConfig,
	discovery *files.Discovery,
	manager *files.Manager,
	logger *slog.Logger,
	metrics *infrastructure.ReportMetrics,
	tracer trace.Tracer,
) (*ReportService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	normalizer, err := dataprocessing.NewNormalizer(cfg.MaxTimes, dataprocessing.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if discovery == nil {
		discovery = files.NewDiscovery("")
	}
	if manager == nil {
		manager = files.NewManager(logger)
	}
	logger = logger.With(slog.String("component", "report_service"))
	if tracer == nil {
		tracer = tracenoop.NewTracerProvider().Tracer(infrastructure.MeterName)
	}

	return &ReportService{
		cfg:        cfg,
		discovery:  discovery,
		files:      manager,
		normalizer: normalizer,
		logger:     logger,
		metrics:    metrics,
		tracer:     tracer,
	}, nil
}

// MaxTimes returns the report width.
func (s *ReportService) MaxTimes() int {
	return s.normalizer.MaxTimes()
}

// Run writes the report for every matching file in folder to sink. The sink
// is not closed. A file's rows are written only once the whole file has been
// normalized, so a failing file never contributes rows. With the abort policy
// the first failing file ends the run; with skip the failure is recorded in
// the summary and the run continues.
func (s *ReportService) Run(ctx context.Context, folder string, sink exporter.Sink) (*RunSummary, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	summary := &RunSummary{RunID: infrastructure.GetRunID(ctx)}
	start := time.Now()
	defer func() { summary.Duration = time.Since(start) }()

	ctx, span := s.tracer.Start(ctx, "report.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("report.folder", folder),
			attribute.Int("report.max_times", s.MaxTimes()),
			attribute.String("report.on_error", s.cfg.OnError),
		),
	)
	defer span.End()

	fail := func(err error) (*RunSummary, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return summary, err
	}

	if err := s.discovery.CheckFolder(folder); err != nil {
		return fail(err)
	}
	inputs, err := s.discovery.FindFilesByExtension(folder, s.cfg.Extension)
	if err != nil {
		return fail(err)
	}
	summary.FilesSeen = len(inputs)

	s.logger.InfoContext(ctx, "Report run started",
		slog.String("folder", folder),
		slog.Int("files", len(inputs)),
		slog.Int("max_times", s.MaxTimes()),
		slog.String("on_error", s.cfg.OnError))

	if err := sink.WriteHeader(s.MaxTimes()); err != nil {
		return fail(apperrors.SinkWriteError(err))
	}

	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}

		result, ferr := s.processFile(ctx, input)
		switch {
		case ferr == nil && result.Status == dataprocessing.StatusInvalidHeader:
			summary.FilesSkipped++
			continue
		case ferr == nil:
			summary.FilesProcessed++
		case errors.Is(ferr, context.Canceled) || errors.Is(ferr, context.DeadlineExceeded):
			return fail(ferr)
		default:
			summary.FilesFailed++
			summary.Failures = append(summary.Failures, FileFailure{File: input.Name, Err: ferr})
			if s.cfg.OnError == config.OnErrorSkip {
				s.logger.WarnContext(ctx, "Skipping file after error",
					slog.String("file", input.Name),
					slog.String("error", ferr.Error()))
				continue
			}
			s.logger.ErrorContext(ctx, "Aborting report run",
				slog.String("file", input.Name),
				slog.String("error", ferr.Error()))
			return fail(ferr)
		}

		if err := s.emit(sink, result, summary); err != nil {
			return fail(err)
		}
	}

	span.SetAttributes(
		attribute.Int("report.files_processed", summary.FilesProcessed),
		attribute.Int("report.files_skipped", summary.FilesSkipped),
		attribute.Int("report.files_failed", summary.FilesFailed),
		attribute.Int("report.rows", summary.Rows),
	)
	s.logger.InfoContext(ctx, "Report run completed",
		slog.Int("files_processed", summary.FilesProcessed),
		slog.Int("files_skipped", summary.FilesSkipped),
		slog.Int("files_failed", summary.FilesFailed),
		slog.Int("rows", summary.Rows))
	return summary, nil
}

// processFile normalizes one file. The file is closed on every path.
func (s *ReportService) processFile(ctx context.Context, input files.FileInfo) (*dataprocessing.FileResult, error) {
	ctx, span := s.tracer.Start(ctx, "report.file",
		trace.WithAttributes(attribute.String("file.name", input.Name)))
	defer span.End()
	start := time.Now()

	result, err := s.normalizeFile(ctx, input)
	status := string(dataprocessing.StatusFailed)
	rows := 0
	if result != nil {
		status = string(result.Status)
		rows = len(result.Rows)
	}
	if s.metrics != nil {
		s.metrics.RecordFile(ctx, status, rows, time.Since(start))
	}

	span.SetAttributes(
		attribute.String("file.status", status),
		attribute.Int("file.rows", rows),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return result, err
	}

	s.logger.DebugContext(ctx, "File normalized",
		slog.String("file", input.Name),
		slog.String("status", status),
		slog.Int("rows", rows),
		slog.Duration("elapsed", time.Since(start)))
	return result, nil
}

func (s *ReportService) normalizeFile(ctx context.Context, input files.FileInfo) (*dataprocessing.FileResult, error) {
	r, err := s.files.Open(input.Path)
	if err != nil {
		return &dataprocessing.FileResult{File: filepath.Base(input.Path), Status: dataprocessing.StatusFailed}, err
	}
	defer r.Close()
	return s.normalizer.Normalize(ctx, r, input.Path)
}

func (s *ReportService) emit(sink exporter.Sink, result *dataprocessing.FileResult, summary *RunSummary) error {
	for _, row := range result.Rows {
		if err := sink.WriteRow(row); err != nil {
			return apperrors.SinkWriteError(fmt.Errorf("%s: %w", result.File, err))
		}
		summary.Rows++
	}
	return nil
}
