package file

import (
	"path"
	"path/filepath"
	"strings"
)

// Entry is one local filesystem item offered for upload
type Entry struct {
	// Name is the base name of the item
	Name string
	// Path is where the item lives on disk
	Path string
	// RelativePath is the path reported by a folder walk, "/"-separated and rooted at the
	// walked folder's name. Empty for items that were picked individually.
	RelativePath string
	Size         int64
	IsDir        bool
}

// DisplayPath returns the relative path when known, else the item's own name
func (e Entry) DisplayPath() string {
	if e.RelativePath != "" {
		return e.RelativePath
	}
	return e.Name
}

// Root returns the first segment of the display path
func (e Entry) Root() string {
	p := e.DisplayPath()
	if i := strings.IndexByte(p, '/'); i >= 0 {
		return p[:i]
	}
	return p
}

// relativeTo builds the "/"-separated relative path of file under the walked folder
func relativeTo(folder, file string) (string, error) {
	rel, err := filepath.Rel(folder, file)
	if err != nil {
		return "", err
	}
	return path.Join(filepath.Base(folder), filepath.ToSlash(rel)), nil
}
