package files

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "emicli/internal/errors"
)

// Manager opens input files and creates report outputs.
type Manager struct {
	logger *slog.Logger
}

// NewManager creates a new file manager instance.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{logger: logger.With(slog.String("component", "file_manager"))}
}

// Open opens an input file for reading. Failures are returned as
// UNREADABLE_FILE errors.
func (m *Manager) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.UnreadableFileError(filepath.Base(path), err)
	}
	return f, nil
}

// Create creates or truncates an output file, making parent directories as needed.
func (m *Manager) Create(path string) (*os.File, error) {
	if err := m.EnsureDirectory(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	m.logger.Debug("Creating output file", slog.String("path", path))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, nil
}

// EnsureDirectory creates a directory if it doesn't exist.
func (m *Manager) EnsureDirectory(path string) error {
	if path == "" || path == "." {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, 0755)
	}
	return nil
}
