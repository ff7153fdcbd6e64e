package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "emicli/internal/errors"
)

// EnvPrefix namespaces every environment variable, e.g. EMI_REPORT_MAX_TIMES.
const EnvPrefix = "EMI"

// Error policies applied by the report driver when a file fails.
const (
	OnErrorAbort = "abort"
	OnErrorSkip  = "skip"
)

// Config represents the complete application configuration.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Report    ReportConfig    `yaml:"report" envconfig:"REPORT"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// ReportConfig controls which files are read and where the report goes.
type ReportConfig struct {
	Folder    string `yaml:"folder" envconfig:"FOLDER"`
	MaxTimes  int    `yaml:"max_times" envconfig:"MAX_TIMES" validate:"min=1"`
	Extension string `yaml:"extension" envconfig:"EXTENSION" validate:"required"`
	OnError   string `yaml:"on_error" envconfig:"ON_ERROR" validate:"oneof=abort skip"`
	// Output is the text report path; empty means stdout.
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	// CSVPath receives a one-cell-per-column CSV copy of the report.
	CSVPath  string `yaml:"csv_path" envconfig:"CSV_PATH"`
	CSVBOM   bool   `yaml:"csv_bom" envconfig:"CSV_BOM"`
	XLSXPath string `yaml:"xlsx_path" envconfig:"XLSX_PATH"`
	Sheet    string `yaml:"sheet" envconfig:"SHEET" validate:"required_with=XLSXPath"`
}

// TelemetryConfig contains tracing and metrics configuration.
type TelemetryConfig struct {
	EnableTracing bool   `yaml:"enable_tracing" envconfig:"ENABLE_TRACING"`
	TraceExporter string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=stdout none"`
	EnableMetrics bool   `yaml:"enable_metrics" envconfig:"ENABLE_METRICS"`
	// MetricsFile receives the metrics in Prometheus textfile format at exit.
	MetricsFile string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
	Environment string `yaml:"environment" envconfig:"ENVIRONMENT"`
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/processfiles.log",
		},
		Report: ReportConfig{
			MaxTimes:  10,
			Extension: ".txt",
			OnError:   OnErrorAbort,
			Sheet:     "Report",
		},
		Telemetry: TelemetryConfig{
			EnableTracing: false,
			TraceExporter: "stdout",
			EnableMetrics: true,
			Environment:   "production",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (or the
// first file found in the usual locations when path is empty) and EMI_*
// environment variables, in increasing order of precedence.
func Load(path string) (*Config, error) {
	cfg := Default()

	configFile := path
	if configFile == "" {
		configFile = getConfigFilePath()
	} else if _, err := os.Stat(configFile); err != nil {
		return nil, apperrors.NewConfigError("config file not found", err).WithContext("path", configFile)
	}

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).WithContext("path", configFile)
		}
	}

	// Fields without a matching variable keep their current value.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			first := verrs[0]
			return apperrors.NewConfigError(
				fmt.Sprintf("config validation failed: %s failed on '%s'", first.Namespace(), first.Tag()), err).
				WithContext("field", first.Namespace())
		}
		return apperrors.NewConfigError("config validation failed", err)
	}
	return nil
}

// getConfigFilePath returns the path to the config file.
func getConfigFilePath() string {
	locations := []string{
		"emicli.yaml",
		"configs/emicli.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}
