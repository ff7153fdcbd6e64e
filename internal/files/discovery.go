package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "emicli/internal/errors"
)

// FileInfo represents information about a discovered file.
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery operations.
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance. Relative directories
// passed to its methods are resolved against basePath.
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// resolve joins relative directories onto the base path.
func (d *Discovery) resolve(dir string) string {
	if dir == "" {
		return d.basePath
	}
	if filepath.IsAbs(dir) || d.basePath == "" {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}

// CheckFolder reports an error unless dir is an existing directory.
func (d *Discovery) CheckFolder(dir string) error {
	fullPath := d.resolve(dir)
	info, err := os.Stat(fullPath)
	if err != nil || !info.IsDir() {
		return apperrors.InvalidFolderError(fullPath)
	}
	return nil
}

// FindFilesByExtension returns the regular files in dir whose name ends with
// ext, sorted by name. The match is case-sensitive; subdirectories are not
// searched.
func (d *Discovery) FindFilesByExtension(dir, ext string) ([]FileInfo, error) {
	if err := d.CheckFolder(dir); err != nil {
		return nil, err
	}
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ext) {
			continue
		}

		// Stat follows symlinks so a link to a regular file is kept.
		info, err := os.Stat(filepath.Join(fullPath, name))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// FindTextFiles finds all .txt files in the specified directory.
func (d *Discovery) FindTextFiles(dir string) ([]FileInfo, error) {
	return d.FindFilesByExtension(dir, ".txt")
}
