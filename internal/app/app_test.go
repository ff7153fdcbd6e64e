package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"emicli/internal/config"
	apperrors "emicli/internal/errors"
	"emicli/internal/exporter"
	"emicli/internal/infrastructure"
	"emicli/internal/shared/testutil"
)


func testConfig(t *testing.T, folder string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Logging.Level = "error"
	cfg.Report.Folder = folder
	cfg.Report.MaxTimes = 4
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config, stdout *bytes.Buffer) *Application {
	t.Helper()
	infrastructure.ResetLoggerForTesting()
	t.Cleanup(infrastructure.ResetLoggerForTesting)

	application, err := NewApplication(cfg, stdout)
	require.NoError(t, err)
	t.Cleanup(func() { application.Stop(context.Background()) })
	return application
}

func inputFolder(t *testing.T) string {
	t.Helper()
	return testutil.WriteMeasurementFiles(t, map[string]string{"a.txt": testutil.ExampleMeasurementFile})
}

func TestApplicationRunToStdout(t *testing.T) {
	var stdout bytes.Buffer
	application := newTestApp(t, testConfig(t, inputFolder(t)), &stdout)

	summary, err := application.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Rows)

	want := exporter.HeaderLine(4) + "\n" + strings.Join(testutil.ExampleReportRows, "\n") + "\n"
	assert.Equal(t, want, stdout.String())
}

func TestApplicationRunToFiles(t *testing.T) {
	out := t.TempDir()
	cfg := testConfig(t, inputFolder(t))
	cfg.Report.Output = filepath.Join(out, "report", "report.csv")
	cfg.Report.CSVPath = filepath.Join(out, "cells.csv")
	cfg.Report.XLSXPath = filepath.Join(out, "report.xlsx")
	cfg.Telemetry.MetricsFile = filepath.Join(out, "processfiles.prom")

	var stdout bytes.Buffer
	application := newTestApp(t, cfg, &stdout)
	_, err := application.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, application.Stop(context.Background()))

	assert.Empty(t, stdout.String(), "stdout is unused when an output path is set")

	text, err := os.ReadFile(cfg.Report.Output)
	require.NoError(t, err)
	assert.Contains(t, string(text), `"a.txt", "loc2", 2018, 10, 05, 6.0,8.0,10.0, N/A, 30,40,50, N/A`)

	cells, err := os.ReadFile(cfg.Report.CSVPath)
	require.NoError(t, err)
	assert.Contains(t, string(cells), "a.txt,loc1,2018,10,05,1,2,N/A,N/A,10,20,N/A,N/A")

	f, err := excelize.OpenFile(cfg.Report.XLSXPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(cfg.Report.Sheet)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	metrics, err := os.ReadFile(cfg.Telemetry.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "report_rows_total")
}

func TestApplicationRunInvalidFolder(t *testing.T) {
	var stdout bytes.Buffer
	application := newTestApp(t, testConfig(t, filepath.Join(t.TempDir(), "missing")), &stdout)

	_, err := application.Run(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsUsage(err))
}

func TestApplicationRunInvalidFolderKeepsOutputs(t *testing.T) {
	out := t.TempDir()
	cfg := testConfig(t, filepath.Join(t.TempDir(), "missing"))
	cfg.Report.Output = filepath.Join(out, "report.csv")
	cfg.Report.CSVPath = filepath.Join(out, "cells.csv")
	cfg.Report.XLSXPath = filepath.Join(out, "report.xlsx")
	require.NoError(t, os.WriteFile(cfg.Report.Output, []byte("previous report\n"), 0644))
	require.NoError(t, os.WriteFile(cfg.Report.CSVPath, []byte("previous cells\n"), 0644))

	application := newTestApp(t, cfg, &bytes.Buffer{})
	_, err := application.Run(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsUsage(err))

	text, err := os.ReadFile(cfg.Report.Output)
	require.NoError(t, err)
	assert.Equal(t, "previous report\n", string(text))
	cells, err := os.ReadFile(cfg.Report.CSVPath)
	require.NoError(t, err)
	assert.Equal(t, "previous cells\n", string(cells))
	assert.NoFileExists(t, cfg.Report.XLSXPath)
}

func TestApplicationRunAbortDropsFailingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"),
		[]byte("# 1 2018-10-05\nok; 1; 1\nbad; 1,2,3,4,5; 1\n"), 0644))

	var stdout bytes.Buffer
	application := newTestApp(t, testConfig(t, dir), &stdout)

	_, err := application.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrTooManyValues))
	assert.Equal(t, exporter.HeaderLine(4)+"\n", stdout.String(), "only the header is written")
}

func TestNewApplicationRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t, t.TempDir())
	cfg.Report.OnError = "retry"
	infrastructure.ResetLoggerForTesting()

	_, err := NewApplication(cfg, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidConfig))
}
