package types

import (
	"strings"
	"time"
)

// RemoteEntry describes one stored file as reported by the listing endpoint
type RemoteEntry struct {
	Name       string    `json:"name"`           // Base file name
	Path       string    `json:"path,omitempty"` // Path relative to the store root
	Size       int64     `json:"size"`           // File size in bytes
	UploadedAt time.Time `json:"uploadedAt"`     // Modification time on the server
	URL        string    `json:"url"`            // Download URL relative to the base URL

	// IsDirectory is inferred from Path, the server never sends it
	IsDirectory bool `json:"-"`
}

// InferDirectory sets IsDirectory from the entry's path
func (e *RemoteEntry) InferDirectory() {
	e.IsDirectory = strings.ContainsAny(e.Path, `/\`)
}

// DeleteKey returns the key used to delete the entry: its path when present, else its name
func (e RemoteEntry) DeleteKey() string {
	if e.Path != "" {
		return e.Path
	}
	return e.Name
}

// ProgressUpdate represents raw byte progress of a single transfer
type ProgressUpdate struct {
	BytesSent  int64 // Bytes sent so far, never decreasing within one transfer
	BytesTotal int64 // Total bytes of the item
}

// Percent returns the rounded completion percentage of the update
func (p ProgressUpdate) Percent() int {
	if p.BytesTotal <= 0 {
		return 100
	}
	return int((p.BytesSent*100 + p.BytesTotal/2) / p.BytesTotal)
}
