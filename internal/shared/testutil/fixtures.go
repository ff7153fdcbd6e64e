package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// ExampleMeasurementFile is the two-row reference input: one plain data
// line, then a data line scaled by a multiplier.
const ExampleMeasurementFile = "# 7 2018-10-05\nloc1; 1,2; 10,20\nmult 2\nloc2; 3,4,5; 30,40,50\n"

// ExampleReportRows are the rows ExampleMeasurementFile yields as a.txt
// with four observations per row.
var ExampleReportRows = []string{
	`"a.txt", "loc1", 2018, 10, 05, 1,2, N/A, N/A, 10,20, N/A, N/A`,
	`"a.txt", "loc2", 2018, 10, 05, 6.0,8.0,10.0, N/A, 30,40,50, N/A`,
}

// WriteMeasurementFiles creates a temporary folder holding the given files,
// keyed by name.
func WriteMeasurementFiles(t testing.TB, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write fixture %s: %v", name, err)
		}
	}
	return dir
}
