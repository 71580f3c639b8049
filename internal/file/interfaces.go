package file

import (
	"io"
)

// Service handles local filesystem access for uploads and downloads
type Service interface {
	// Stat introspects a single local path
	Stat(path string) (Entry, error)

	// Walk lists every regular file under dir in lexical order
	Walk(dir string) ([]Entry, error)

	// OpenReader opens a file for reading
	OpenReader(path string) (Reader, error)

	// CreateWriter creates a file for writing, making parent directories as needed
	CreateWriter(dstPath string) (Writer, error)
}

// Reader represents a file opened for reading
type Reader interface {
	io.Reader
	io.Closer

	// Size returns the file size in bytes
	Size() int64

	// Name returns the file name
	Name() string
}

// Writer represents a file opened for writing
type Writer interface {
	io.Writer
	io.Closer

	// Path returns the file path
	Path() string
}
