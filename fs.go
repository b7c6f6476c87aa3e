package fixedfile

import (
	"io"
	"os"
)

// FileSystem opens the files behind Readers, Writers and delimited output.
// OSFileSystem is used unless WithFileSystem says otherwise.
type FileSystem interface {
	Open(name string) (io.ReadCloser, error)
	Create(name string) (io.WriteCloser, error)
}

// OSFileSystem is a FileSystem backed by the os package.
type OSFileSystem struct{}

// Open opens the named file for reading.
func (OSFileSystem) Open(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

// Create creates or truncates the named file for writing.
func (OSFileSystem) Create(name string) (io.WriteCloser, error) {
	return os.Create(name)
}
