// Package testutil provides file fixtures for ownerswap tests.
//
// Fixtures are either written under a t.TempDir() for tests that go through
// the real filesystem, or held in an afero in-memory filesystem.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/ownerswap/pkg/filesystem"
)

// CreateFile creates a file with the given content in dir, creating parent
// directories as needed, and returns its path.
func CreateFile(t *testing.T, fsys filesystem.FS, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755), "create parent of %s", path)
	require.NoError(t, fsys.WriteFile(path, []byte(content), 0644), "create %s", path)
	return path
}

// CreateFiles creates every name/content pair of files in dir. dir is
// created even when files is empty.
func CreateFiles(t *testing.T, fsys filesystem.FS, dir string, files map[string]string) {
	t.Helper()

	require.NoError(t, fsys.MkdirAll(dir, 0755), "create %s", dir)
	for name, content := range files {
		CreateFile(t, fsys, dir, name, content)
	}
}

// ReadFile returns the content of path, failing the test when it cannot be read.
func ReadFile(t *testing.T, fsys filesystem.FS, path string) string {
	t.Helper()

	data, err := fsys.ReadFile(path)
	require.NoError(t, err, "read %s", path)
	return string(data)
}

// MemoryFS returns an in-memory filesystem holding files under dir.
func MemoryFS(t *testing.T, dir string, files map[string]string) filesystem.FS {
	t.Helper()

	fsys := filesystem.NewAferoFS(afero.NewMemMapFs())
	CreateFiles(t, fsys, dir, files)
	return fsys
}
