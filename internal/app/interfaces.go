package app

import (
	"context"

	"fileshare/internal/processor"
)

// Downloader fetches a URL into a local file
type Downloader interface {
	Download(ctx context.Context, url, dstPath string, onProgress processor.ProgressFunc) (int64, error)
}

// Confirmer asks the user a yes/no question
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}
