package remote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinks(t *testing.T) {
	l := NewLinks("http://localhost:8080/share/")

	assert.Equal(t, "http://localhost:8080/share", l.Base())
	assert.Equal(t, "http://localhost:8080/share/download/b.txt", l.FileURL("/download/b.txt"))
	assert.Equal(t, "http://localhost:8080/share/download/b.txt", l.FileURL("download/b.txt"))
	assert.Equal(t, "http://localhost:8080/share/download-zip/photos", l.ZipURL("photos"))
	assert.Equal(t, "http://localhost:8080/share/download-zip/my%20photos", l.ZipURL("my photos"))
	assert.Equal(t, "http://localhost:8080/share/download/a/b%20c.txt", l.DownloadURL("a/b c.txt"))
}

func TestEscapePath(t *testing.T) {
	assert.Equal(t, "a/b", escapePath("/a/b/"))
	assert.Equal(t, "a%3Fb/c", escapePath("a?b/c"))
}
