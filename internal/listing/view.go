package listing

import (
	"strings"
	"time"

	"fileshare/internal/remote"
	"fileshare/pkg/types"
)

const (
	EmptyMessage = "No files available"
	ErrorMessage = "Error loading files"
)

// State is the lifecycle of the listing view
type State int

const (
	StateLoading State = iota
	StateEmpty
	StateReady
	StateError
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateEmpty:
		return "empty"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// DirectoryGroup is every remote entry under one top-level directory
type DirectoryGroup struct {
	Name           string    `json:"name"`
	MemberCount    int       `json:"memberCount"`
	TotalBytes     int64     `json:"totalBytes"`
	LastUploadedAt time.Time `json:"lastUploadedAt"`
	ZipURL         string    `json:"zipUrl"`
	CopyURL        string    `json:"copyUrl"`
	DeleteKey      string    `json:"deleteKey"`
}

// RootFile is a remote entry outside any directory
type RootFile struct {
	Name        string    `json:"name"`
	Path        string    `json:"path,omitempty"`
	SizeBytes   int64     `json:"size"`
	UploadedAt  time.Time `json:"uploadedAt"`
	DownloadURL string    `json:"downloadUrl"`
	CopyURL     string    `json:"copyUrl"`
	DeleteKey   string    `json:"deleteKey"`
}

// View is the grouped projection of the remote inventory
type View struct {
	State  State            `json:"-"`
	Groups []DirectoryGroup `json:"groups"`
	Files  []RootFile       `json:"files"`
	Err    error            `json:"-"`
}

// Message returns the placeholder text for the Empty and Error states
func (v View) Message() string {
	switch v.State {
	case StateEmpty:
		return EmptyMessage
	case StateError:
		return ErrorMessage
	default:
		return ""
	}
}

// Partition groups entries by their first path segment. Groups keep first-seen order,
// root files keep server order.
func Partition(entries []types.RemoteEntry, links remote.Links) ([]DirectoryGroup, []RootFile) {
	var (
		groups []DirectoryGroup
		files  []RootFile
	)
	index := make(map[string]int)

	for _, e := range entries {
		p := strings.ReplaceAll(e.Path, `\`, "/")
		if i := strings.IndexByte(p, '/'); i >= 0 {
			name := p[:i]
			gi, ok := index[name]
			if !ok {
				gi = len(groups)
				index[name] = gi
				zip := links.ZipURL(name)
				groups = append(groups, DirectoryGroup{
					Name:      name,
					ZipURL:    zip,
					CopyURL:   zip,
					DeleteKey: name,
				})
			}
			g := &groups[gi]
			g.MemberCount++
			g.TotalBytes += e.Size
			if e.UploadedAt.After(g.LastUploadedAt) {
				g.LastUploadedAt = e.UploadedAt
			}
			continue
		}

		download := links.FileURL(e.URL)
		files = append(files, RootFile{
			Name:        e.Name,
			Path:        e.Path,
			SizeBytes:   e.Size,
			UploadedAt:  e.UploadedAt,
			DownloadURL: download,
			CopyURL:     download,
			DeleteKey:   e.DeleteKey(),
		})
	}
	return groups, files
}

// Build projects entries into a view. No entries yields the Empty state.
func Build(entries []types.RemoteEntry, links remote.Links) View {
	if len(entries) == 0 {
		return View{State: StateEmpty}
	}
	groups, files := Partition(entries, links)
	return View{State: StateReady, Groups: groups, Files: files}
}

// TargetKind distinguishes a group from a single file
type TargetKind int

const (
	TargetFile TargetKind = iota
	TargetGroup
)

// Target is an actionable row of the view
type Target struct {
	Kind      TargetKind
	Name      string
	URL       string
	DeleteKey string
}

// Find resolves key against group names, then file paths, then file names
func (v View) Find(key string) (Target, bool) {
	key = strings.Trim(strings.ReplaceAll(key, `\`, "/"), "/")
	for _, g := range v.Groups {
		if g.Name == key {
			return Target{Kind: TargetGroup, Name: g.Name, URL: g.ZipURL, DeleteKey: g.DeleteKey}, true
		}
	}
	for _, f := range v.Files {
		if f.Path == key || f.DeleteKey == key {
			return fileTarget(f), true
		}
	}
	for _, f := range v.Files {
		if f.Name == key {
			return fileTarget(f), true
		}
	}
	return Target{}, false
}

func fileTarget(f RootFile) Target {
	return Target{Kind: TargetFile, Name: f.Name, URL: f.DownloadURL, DeleteKey: f.DeleteKey}
}
