package ui

import (
	"fileshare/internal/batch"
	"fileshare/pkg/types"
)

// BatchView displays the progress of an upload batch
type BatchView interface {
	// Update renders a new snapshot of the batch
	Update(s batch.Snapshot)

	// Finish renders the final snapshot and releases the display
	Finish(s batch.Snapshot)
}

// TransferView displays the progress of a single download
type TransferView interface {
	Start(name string, totalBytes int64)
	Update(update types.ProgressUpdate)
	Finish(err error)
}
