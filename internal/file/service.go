package file

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// fileService implements Service on the local disk
type fileService struct{}

// NewFileService creates a new file service
func NewFileService() Service {
	return &fileService{}
}

// Stat introspects a single local path
func (f *fileService) Stat(path string) (Entry, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to get file info: %w", err)
	}

	return Entry{
		Name:  stat.Name(),
		Path:  path,
		Size:  stat.Size(),
		IsDir: stat.IsDir(),
	}, nil
}

// Walk lists every regular file under dir in lexical order
func (f *fileService) Walk(dir string) ([]Entry, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve folder: %w", err)
	}

	stat, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to get folder info: %w", err)
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("not a folder: %s", dir)
	}

	var entries []Entry
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := relativeTo(root, p)
		if err != nil {
			return err
		}

		entries = append(entries, Entry{
			Name:         d.Name(),
			Path:         p,
			RelativePath: rel,
			Size:         info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk folder: %w", err)
	}

	return entries, nil
}

// OpenReader opens a file for reading
func (f *fileService) OpenReader(path string) (Reader, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := fh.Stat()
	if err != nil {
		fh.Close()
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}
	return &localReader{File: fh, info: info}, nil
}

// CreateWriter creates a file for writing, making parent directories as needed
func (f *fileService) CreateWriter(dstPath string) (Writer, error) {
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	fh, err := os.Create(dstPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return &localWriter{File: fh}, nil
}

// localReader is an open file with the info captured at open time
type localReader struct {
	*os.File
	info fs.FileInfo
}

func (r *localReader) Size() int64 { return r.info.Size() }

// Name is the base name, not the path os.File reports
func (r *localReader) Name() string { return r.info.Name() }

type localWriter struct {
	*os.File
}

func (w *localWriter) Path() string { return w.File.Name() }
