package processor

import (
	"fmt"
	"mime"
	"path/filepath"

	"fileshare/internal/file"
)

const defaultMimeType = "application/octet-stream"

// Content is a local file opened for transfer
type Content struct {
	Name     string // Base file name
	Size     int64  // File size in bytes
	MimeType string // MIME type detected from the extension
	Reader   file.Reader
}

// Close closes the underlying file
func (c *Content) Close() error {
	return c.Reader.Close()
}

// Open opens a local file for upload and detects its MIME type
func Open(files file.Service, path string) (*Content, error) {
	reader, err := files.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open content: %w", err)
	}

	return &Content{
		Name:     reader.Name(),
		Size:     reader.Size(),
		MimeType: DetectMimeType(path),
		Reader:   reader,
	}, nil
}

// DetectMimeType returns the MIME type for a path's extension
func DetectMimeType(path string) string {
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		return defaultMimeType
	}
	return mimeType
}
