// Package transport performs the transfer of a single item to the file service.
package transport

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"fileshare/internal/file"
	"fileshare/internal/logging"
	"fileshare/internal/processor"
	"fileshare/internal/remote"
)

// Request describes one item to transfer
type Request struct {
	// LocalPath is where the content is read from
	LocalPath string
	// RelativePath is sent to the server when Folder is true
	RelativePath string
	Folder       bool
}

// TransferChannel moves one item to the remote store. Transfer blocks until the single
// terminal outcome is known; onProgress receives non-decreasing byte counts before that.
type TransferChannel interface {
	Transfer(ctx context.Context, req Request, onProgress processor.ProgressFunc) Outcome
}

// Uploader is the part of the remote client a channel needs
type Uploader interface {
	Upload(ctx context.Context, r remote.UploadRequest) (*remote.UploadResponse, error)
}

// HTTPChannel uploads items as multipart POSTs
type HTTPChannel struct {
	uploader         Uploader
	files            file.Service
	progressInterval time.Duration
	logger           *logging.Logger
}

// NewHTTPChannel creates a channel backed by uploader
func NewHTTPChannel(uploader Uploader, files file.Service, progressInterval time.Duration, logger *logging.Logger) *HTTPChannel {
	return &HTTPChannel{
		uploader:         uploader,
		files:            files,
		progressInterval: progressInterval,
		logger:           logger,
	}
}

// Transfer uploads the item at req.LocalPath
func (c *HTTPChannel) Transfer(ctx context.Context, req Request, onProgress processor.ProgressFunc) Outcome {
	gate := newProgressGate(onProgress)
	defer gate.close()

	content, err := processor.Open(c.files, req.LocalPath)
	if err != nil {
		c.logger.Warn().Err(err).Str("path", req.LocalPath).Msg("Cannot read file for upload")
		return Outcome{Kind: OutcomeLocalReadFailure, Message: err.Error(), Err: err}
	}

	tracker := &readTracker{r: content.Reader}
	body := processor.NewProgressReader(tracker, content.Size, c.progressInterval, gate.emit)

	var once sync.Once
	open := func() (io.ReadCloser, error) {
		var rc io.ReadCloser
		once.Do(func() { rc = body })
		if rc == nil {
			return nil, errors.New("upload content can only be read once")
		}
		return rc, nil
	}

	upload := remote.UploadRequest{
		FileName: content.Name,
		Size:     content.Size,
		MimeType: content.MimeType,
		Open:     open,
	}
	if req.Folder {
		upload.RelativePath = req.RelativePath
	}

	_, err = c.uploader.Upload(ctx, upload)
	// the client may already have closed it
	content.Close()

	outcome := classify(err, tracker.readErr())
	if outcome.Failed() {
		c.logger.Debug().Err(outcome.Err).Str("kind", outcome.Kind.String()).Str("path", req.RelativePath).Msg("Upload failed")
	}
	return outcome
}

func classify(uploadErr, readErr error) Outcome {
	if uploadErr == nil {
		return success()
	}
	if readErr != nil {
		return Outcome{Kind: OutcomeLocalReadFailure, Message: readErr.Error(), Err: readErr}
	}

	var rejected *remote.ServerRejectedError
	if errors.As(uploadErr, &rejected) {
		return Outcome{Kind: OutcomeServerRejected, Message: rejected.Message, Err: uploadErr}
	}
	return Outcome{Kind: OutcomeNetworkFailure, Message: NetworkErrorMessage, Err: uploadErr}
}
