package files

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	apperrors "emicli/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerOpen(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0644))

	m := NewManager(nil)
	rc, err := m.Open(path)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestManagerOpenMissing(t *testing.T) {
	m := NewManager(nil)
	_, err := m.Open(filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnreadableFile)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestManagerCreate(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "out", "report.csv")

	m := NewManager(nil)
	f, err := m.Create(path)
	require.NoError(t, err)
	_, err = f.WriteString("first")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	// A second Create truncates.
	f, err = m.Create(path)
	require.NoError(t, err)
	_, err = f.WriteString("x")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestEnsureDirectory(t *testing.T) {
	m := NewManager(nil)
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, m.EnsureDirectory(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.NoError(t, m.EnsureDirectory(""))
	assert.NoError(t, m.EnsureDirectory("."))
}
