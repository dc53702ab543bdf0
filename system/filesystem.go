// Package system abstracts the file system so sources, configs and type facts
// can be loaded from disk or from an in-memory fs.FS in tests.
package system

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// VirtualFS is the file system the loaders read from.
type VirtualFS interface {
	fs.FS
}

// FileSystem is a VirtualFS backed by the operating system. Names are used as
// given, so absolute and relative paths both work.
type FileSystem struct{}

var _ VirtualFS = (*FileSystem)(nil)

func (fs *FileSystem) Open(name string) (fs.File, error) {
	return os.Open(filepath.Clean(name))
}

// ReadFile reads a whole file from fsys.
func ReadFile(fsys VirtualFS, name string) ([]byte, error) {
	if fsys == nil {
		fsys = &FileSystem{}
	}

	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}
