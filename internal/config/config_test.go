package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	apperrors "emicli/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load reads so the host environment cannot
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		"EMI_LOGGING_LEVEL", "EMI_LOGGING_FORMAT", "EMI_LOGGING_OUTPUT", "EMI_LOGGING_FILE_PATH",
		"EMI_REPORT_FOLDER", "EMI_REPORT_MAX_TIMES", "EMI_REPORT_EXTENSION", "EMI_REPORT_ON_ERROR",
		"EMI_REPORT_OUTPUT", "EMI_REPORT_CSV_PATH", "EMI_REPORT_CSV_BOM", "EMI_REPORT_XLSX_PATH", "EMI_REPORT_SHEET",
		"EMI_TELEMETRY_ENABLE_TRACING", "EMI_TELEMETRY_TRACE_EXPORTER", "EMI_TELEMETRY_ENABLE_METRICS",
		"EMI_TELEMETRY_METRICS_FILE", "EMI_TELEMETRY_ENVIRONMENT",
	}
	for _, envVar := range envVars {
		if val, ok := os.LookupEnv(envVar); ok {
			t.Setenv(envVar, val) // restored after the test
			os.Unsetenv(envVar)
		}
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "emicli.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoad tests the Load function with various scenarios
func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 10, cfg.Report.MaxTimes)
				assert.Equal(t, ".txt", cfg.Report.Extension)
				assert.Equal(t, OnErrorAbort, cfg.Report.OnError)
				assert.Equal(t, "", cfg.Report.Output)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "console", cfg.Logging.Output)
				assert.True(t, cfg.Telemetry.EnableMetrics)
				assert.False(t, cfg.Telemetry.EnableTracing)
			},
		},
		{
			name: "environment variables",
			env: map[string]string{
				"EMI_REPORT_MAX_TIMES":         "4",
				"EMI_REPORT_ON_ERROR":          "skip",
				"EMI_LOGGING_LEVEL":            "debug",
				"EMI_TELEMETRY_ENABLE_TRACING": "true",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 4, cfg.Report.MaxTimes)
				assert.Equal(t, OnErrorSkip, cfg.Report.OnError)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.True(t, cfg.Telemetry.EnableTracing)
			},
		},
		{
			name: "file values",
			file: "report:\n  max_times: 6\n  extension: .dat\nlogging:\n  output: file\n  file_path: /tmp/x.log\n",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 6, cfg.Report.MaxTimes)
				assert.Equal(t, ".dat", cfg.Report.Extension)
				assert.Equal(t, OnErrorAbort, cfg.Report.OnError, "unset keys keep defaults")
				assert.Equal(t, "file", cfg.Logging.Output)
			},
		},
		{
			name: "environment overrides file",
			file: "report:\n  max_times: 6\n",
			env:  map[string]string{"EMI_REPORT_MAX_TIMES": "8"},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8, cfg.Report.MaxTimes)
			},
		},
		{
			name:    "zero max times",
			env:     map[string]string{"EMI_REPORT_MAX_TIMES": "0"},
			wantErr: true,
		},
		{
			name:    "unknown error policy",
			env:     map[string]string{"EMI_REPORT_ON_ERROR": "retry"},
			wantErr: true,
		},
		{
			name:    "non numeric max times",
			env:     map[string]string{"EMI_REPORT_MAX_TIMES": "many"},
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			file:    "report: [unclosed\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeConfigFile(t, tt.file)
			}

			cfg, err := Load(path)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperrors.ErrInvalidConfig))
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidConfig))
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Logging.Output = "file"
	cfg.Logging.FilePath = ""
	assert.Error(t, cfg.Validate(), "file output needs a path")

	cfg = Default()
	cfg.Report.XLSXPath = "out.xlsx"
	cfg.Report.Sheet = ""
	assert.Error(t, cfg.Validate(), "workbook output needs a sheet name")

	cfg = Default()
	cfg.Telemetry.TraceExporter = "otlp"
	assert.Error(t, cfg.Validate())
}
