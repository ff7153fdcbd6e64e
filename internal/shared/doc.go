// Package shared holds helpers used across packages.
//
// Subpackage testutil provides test fixtures: a slog handler that records
// log output and helpers that write measurement files to a temporary folder.
package shared
