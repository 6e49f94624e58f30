package filesystem

import (
	"io"
	"io/fs"
	"sort"
)

// File is an open file handle for appending.
type File interface {
	io.Writer
	io.Closer
	Sync() error
}

// FS is the filesystem interface required for ownerswap operations
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)
	MkdirAll(path string, perm fs.FileMode) error
	OpenFile(name string, flag int, perm fs.FileMode) (File, error)
}

// RegularFiles returns the names of the regular files directly inside dir,
// sorted. Subdirectories are not descended into.
func RegularFiles(fsys FS, dir string) ([]string, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}
