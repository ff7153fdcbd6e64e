// Package config provides configuration management for the processfiles tool.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Command-line flags (applied by the caller after Load)
//	2. Environment variables
//	3. A YAML configuration file
//	4. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern EMI_<SECTION>_<FIELD>:
//
//	EMI_REPORT_MAX_TIMES=12
//	EMI_REPORT_ON_ERROR=skip
//	EMI_LOGGING_LEVEL=debug
//	EMI_TELEMETRY_METRICS_FILE=/var/lib/node_exporter/emicli.prom
//
// # Configuration File
//
// Without an explicit path, emicli.yaml and configs/emicli.yaml are tried:
//
//	report:
//	  max_times: 10
//	  extension: .txt
//	  on_error: abort
//	logging:
//	  level: info
//	  output: console
//
// # Validation
//
// Load validates the result with struct tags and returns an
// *errors.AppError of type CONFIG on failure.
package config
