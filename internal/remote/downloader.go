package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/hashicorp/go-retryablehttp"

	"fileshare/internal/config"
	"fileshare/internal/file"
	"fileshare/internal/logging"
	"fileshare/internal/processor"
)

// Downloader fetches link targets to local files, retrying transient failures
type Downloader struct {
	client *retryablehttp.Client
	files  file.Service
	logger *logging.Logger
}

// NewDownloader creates a downloader with the configured retry policy
func NewDownloader(cfg config.DownloadConfig, files file.Service, logger *logging.Logger) *Downloader {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.Retries
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.Logger = logger.RetryLogger()
	// hand back the last response so its status can be reported
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Downloader{
		client: retryClient,
		files:  files,
		logger: logger,
	}
}

// Download GETs url into dstPath and returns the number of bytes written.
// A partial file is removed when the transfer fails.
func (d *Downloader) Download(ctx context.Context, url, dstPath string, onProgress processor.ProgressFunc) (int64, error) {
	request, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create download request: %w", err)
	}
	request.Header.Set("User-Agent", UserAgent)

	resp, err := d.client.Do(request)
	if err != nil {
		return 0, networkError("download", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		return 0, rejected(resp.StatusCode, body)
	}

	writer, err := d.files.CreateWriter(dstPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create destination: %w", err)
	}

	counter := processor.NewProgressWriter(writer, resp.ContentLength, onProgress)
	n, copyErr := io.Copy(counter, resp.Body)
	closeErr := writer.Close()
	if copyErr != nil || closeErr != nil {
		os.Remove(dstPath)
		if copyErr != nil {
			return n, networkError("download", copyErr)
		}
		return n, fmt.Errorf("failed to finish writing file: %w", closeErr)
	}

	d.logger.Debug().Str("url", url).Str("dst", dstPath).Int64("bytes", n).Msg("Download complete")
	return n, nil
}
