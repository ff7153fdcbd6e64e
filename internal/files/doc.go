// Package files locates measurement files and manages the report's file
// handles.
//
// Discovery lists the candidate input files of a folder in a stable order.
// Manager opens inputs (wrapping failures as UNREADABLE_FILE errors) and
// creates output files together with their parent directories.
//
// Example usage:
//
//	discovery := files.NewDiscovery("")
//	inputs, err := discovery.FindFilesByExtension("/data/site", ".txt")
//
//	manager := files.NewManager(logger)
//	f, err := manager.Open(inputs[0].Path)
package files
