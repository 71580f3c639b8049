package remote

import (
	"net/url"
	"strings"
)

const (
	uploadPath      = "/upload"
	filesPath       = "/files"
	deletePrefix    = "/delete/"
	downloadPrefix  = "/download/"
	downloadZipPath = "/download-zip/"
)

// Links builds absolute URLs against one resolved base URL
type Links struct {
	base string
}

// NewLinks creates a link builder for baseURL
func NewLinks(baseURL string) Links {
	return Links{base: strings.TrimRight(baseURL, "/")}
}

// Base returns the base URL without a trailing slash
func (l Links) Base() string {
	return l.base
}

// FileURL returns the download link for an entry url as reported by the listing
func (l Links) FileURL(entryURL string) string {
	if !strings.HasPrefix(entryURL, "/") {
		entryURL = "/" + entryURL
	}
	return l.base + entryURL
}

// DownloadURL returns the download link for a stored path
func (l Links) DownloadURL(path string) string {
	return l.base + downloadPrefix + escapePath(path)
}

// ZipURL returns the zip download link for a top-level directory
func (l Links) ZipURL(dirName string) string {
	return l.base + downloadZipPath + url.PathEscape(dirName)
}

// escapePath escapes each "/"-separated segment of p
func escapePath(p string) string {
	segments := strings.Split(strings.Trim(p, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
