// Package services contains the report driver, the layer between the
// command line and the normalization core.
//
// ReportService discovers input files, normalizes them in name order and
// writes the rows to an exporter.Sink, applying the configured error policy
// to files that fail.
package services
