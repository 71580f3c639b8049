// Package selection turns user-chosen local paths into an ordered upload selection.
package selection

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"fileshare/internal/file"
	"fileshare/internal/notify"
)

var (
	ErrFolderDropRejected = errors.New("folder drops are not supported")
	ErrEmptySelection     = errors.New("nothing selected")
	ErrDirectoryInPicker  = errors.New("file picker selection contains a directory")
)

// FolderDropMessage is shown when a drop is rejected for containing a folder
const FolderDropMessage = "Please use the folder option for folder uploads"

// Source identifies where a selection came from
type Source int

const (
	// SourcePicker is a files-only picker
	SourcePicker Source = iota
	// SourceFolderPicker is a single folder tree
	SourceFolderPicker
	// SourceDrop is a set of dropped paths
	SourceDrop
)

// String returns the string representation of the source
func (s Source) String() string {
	switch s {
	case SourcePicker:
		return "picker"
	case SourceFolderPicker:
		return "folder"
	case SourceDrop:
		return "drop"
	default:
		return "unknown"
	}
}

// Candidate is one item of a selection
type Candidate struct {
	Entry        file.Entry
	RelativePath string
}

// Selection is the ordered result of classifying user input
type Selection struct {
	Source Source
	Items  []Candidate
}

// IsFolder reports whether items carry folder-relative paths that must be sent to the server
func (s *Selection) IsFolder() bool {
	return s.Source == SourceFolderPicker
}

// Classifier validates raw selections against the local filesystem
type Classifier struct {
	files    file.Service
	notifier notify.Sink
}

// NewClassifier creates a classifier. Notifier may be nil.
func NewClassifier(files file.Service, notifier notify.Sink) *Classifier {
	return &Classifier{
		files:    files,
		notifier: notifier,
	}
}

// Classify dispatches on source. For SourceFolderPicker exactly one path, the folder, is expected.
func (c *Classifier) Classify(source Source, paths []string) (*Selection, error) {
	switch source {
	case SourcePicker:
		return c.FromPicker(paths)
	case SourceFolderPicker:
		if len(paths) != 1 {
			return nil, fmt.Errorf("folder selection needs exactly one folder, got %d", len(paths))
		}
		return c.FromFolder(paths[0])
	case SourceDrop:
		return c.FromDrop(paths)
	default:
		return nil, fmt.Errorf("unknown selection source: %d", source)
	}
}

// FromPicker classifies a files-only picker selection
func (c *Classifier) FromPicker(paths []string) (*Selection, error) {
	if len(paths) == 0 {
		return nil, ErrEmptySelection
	}

	sel := &Selection{Source: SourcePicker}
	for _, p := range paths {
		entry, err := c.files.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read selection: %w", err)
		}
		if entry.IsDir {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryInPicker, p)
		}
		sel.Items = append(sel.Items, candidate(entry))
	}
	return sel, nil
}

// FromFolder walks dir and selects every regular file in it
func (c *Classifier) FromFolder(dir string) (*Selection, error) {
	entries, err := c.files.Walk(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder selection: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrEmptySelection
	}

	sel := &Selection{Source: SourceFolderPicker}
	for _, e := range entries {
		sel.Items = append(sel.Items, candidate(e))
	}
	return sel, nil
}

// FromDrop classifies dropped paths. Any folder evidence rejects the whole drop.
func (c *Classifier) FromDrop(paths []string) (*Selection, error) {
	if len(paths) == 0 {
		return nil, ErrEmptySelection
	}

	sel := &Selection{Source: SourceDrop}
	for _, p := range paths {
		entry, err := c.files.Stat(p)
		if err != nil {
			// introspection unavailable, fall back to the name
			if looksLikeFolder(p) {
				return nil, c.rejectDrop(p)
			}
			entry = file.Entry{Name: filepath.Base(p), Path: p}
		} else if entry.IsDir {
			return nil, c.rejectDrop(p)
		}
		sel.Items = append(sel.Items, candidate(entry))
	}
	return sel, nil
}

func (c *Classifier) rejectDrop(path string) error {
	if c.notifier != nil {
		notify.Error(c.notifier, FolderDropMessage)
	}
	return fmt.Errorf("%w: %s", ErrFolderDropRejected, path)
}

func looksLikeFolder(name string) bool {
	return strings.ContainsAny(name, `/\`)
}

func candidate(e file.Entry) Candidate {
	return Candidate{Entry: e, RelativePath: e.DisplayPath()}
}
