package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"emicli/internal/config"
	apperrors "emicli/internal/errors"
	"emicli/internal/exporter"
	"emicli/internal/files"
	"emicli/internal/infrastructure"
	"emicli/internal/services"
)

const (
	AppName = "processfiles"
	// shutdownTimeout bounds telemetry flushing at exit.
	shutdownTimeout = 5 * time.Second
)

// Application represents the main application container.
type Application struct {
	Config        *config.Config
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Discovery     *files.Discovery
	Files         *files.Manager
	ReportService *services.ReportService

	// stdout receives the text report when no output path is configured.
	stdout io.Writer
}

// NewApplication wires logging, telemetry and the report service from cfg.
// stdout receives the text report when cfg.Report.Output is empty.
func NewApplication(cfg *config.Config, stdout io.Writer) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.NewOTelConfig(cfg.Telemetry), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.CreateReportMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create report metrics: %w", err)
	}

	discovery := files.NewDiscovery("")
	manager := files.NewManager(logger)
	reportService, err := services.NewReportService(
		cfg.Report,
		discovery,
		manager,
		logger,
		metrics,
		otelProviders.Tracer,
	)
	if err != nil {
		return nil, err
	}

	logger.Debug("Application initialized",
		slog.String("name", AppName),
		slog.String("version", infrastructure.ServiceVersion))

	return &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		Discovery:     discovery,
		Files:         manager,
		ReportService: reportService,
		stdout:        stdout,
	}, nil
}

// Run produces the report for the configured folder. SIGINT and SIGTERM
// cancel the run between lines. The folder is checked before any output
// file is created, so a usage error leaves existing reports untouched.
// Every sink is closed before Run returns, including on failure.
func (a *Application) Run(ctx context.Context) (*services.RunSummary, error) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = infrastructure.EnsureRunID(ctx)

	folder := a.Config.Report.Folder
	if folder == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		folder = wd
	}

	if err := a.Discovery.CheckFolder(folder); err != nil {
		return nil, err
	}

	sink, err := a.openSinks()
	if err != nil {
		return nil, err
	}

	summary, runErr := a.ReportService.Run(ctx, folder, sink)
	if err := sink.Close(); err != nil && runErr == nil {
		runErr = apperrors.SinkWriteError(err)
	}

	if summary != nil && len(summary.Failures) > 0 {
		for _, f := range summary.Failures {
			a.Logger.WarnContext(ctx, "File failed",
				slog.String("file", f.File),
				slog.String("code", apperrors.Code(f.Err)),
				slog.String("error", f.Err.Error()))
		}
	}
	return summary, runErr
}

// openSinks builds the sinks named by the report configuration. The text
// report always exists; the CSV and workbook copies are optional.
func (a *Application) openSinks() (exporter.Sink, error) {
	rc := a.Config.Report
	var sinks []exporter.Sink
	closeAll := func() {
		for _, s := range sinks {
			s.Close()
		}
	}

	if rc.Output == "" {
		sinks = append(sinks, exporter.NewTextSink(a.stdout, nil))
	} else {
		f, err := a.Files.Create(rc.Output)
		if err != nil {
			return nil, apperrors.SinkWriteError(err)
		}
		sinks = append(sinks, exporter.NewTextSink(f, f))
	}

	if rc.CSVPath != "" {
		f, err := a.Files.Create(rc.CSVPath)
		if err != nil {
			closeAll()
			return nil, apperrors.SinkWriteError(err)
		}
		var opts []exporter.CSVOption
		if rc.CSVBOM {
			opts = append(opts, exporter.WithBOM())
		}
		sinks = append(sinks, exporter.NewCSVSink(f, f, opts...))
	}

	if rc.XLSXPath != "" {
		if err := a.Files.EnsureDirectory(filepath.Dir(rc.XLSXPath)); err != nil {
			closeAll()
			return nil, apperrors.SinkWriteError(err)
		}
		xs, err := exporter.NewXLSXSink(rc.XLSXPath, rc.Sheet)
		if err != nil {
			closeAll()
			return nil, apperrors.SinkWriteError(err)
		}
		sinks = append(sinks, xs)
	}

	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return exporter.NewMultiSink(sinks...), nil
}

// Stop flushes telemetry and releases the log file.
func (a *Application) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	var err error
	if a.OTelProviders != nil {
		if err = a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}
	if cerr := infrastructure.CloseLogFile(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
