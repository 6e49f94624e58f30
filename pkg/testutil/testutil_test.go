package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/ownerswap/pkg/filesystem"
)

func TestMemoryFS(t *testing.T) {
	fsys := MemoryFS(t, "/org", map[string]string{
		"web":        "* @a\n",
		"nested/api": "* @b\n",
	})

	assert.Equal(t, "* @a\n", ReadFile(t, fsys, "/org/web"))
	assert.Equal(t, "* @b\n", ReadFile(t, fsys, "/org/nested/api"))

	names, err := filesystem.RegularFiles(fsys, "/org")
	require.NoError(t, err)
	assert.Equal(t, []string{"web"}, names)
}

func TestMemoryFSEmpty(t *testing.T) {
	fsys := MemoryFS(t, "/empty", nil)

	info, err := fsys.Stat("/empty")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCreateFileOnDisk(t *testing.T) {
	dir := t.TempDir()
	path := CreateFile(t, filesystem.NewOS(), dir, "a/b/CODEOWNERS", "* @a\n")

	assert.Equal(t, filepath.Join(dir, "a", "b", "CODEOWNERS"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "* @a\n", string(data))
}
