// Package exporter writes the report to its destinations.
//
// Every destination implements Sink. TextSink produces the quoted text layout
// that users redirect into a .csv file, CSVSink a strict one-cell-per-column
// CSV, and XLSXSink a workbook. MultiSink fans one report out to several of
// them.
//
//	sink := exporter.NewMultiSink(
//		exporter.NewTextSink(os.Stdout, nil),
//		xlsxSink,
//	)
//	defer sink.Close()
package exporter
