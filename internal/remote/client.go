// Package remote is the client for the file service HTTP API.
package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"time"

	"github.com/imroc/req/v3"

	"fileshare/internal/logging"
	"fileshare/pkg/types"
	"fileshare/pkg/utils"
)

// UserAgent is sent with every request
var UserAgent = fmt.Sprintf("fileshare (%s; %s)", runtime.GOOS, runtime.GOARCH)

// UploadRequest describes one file to upload
type UploadRequest struct {
	FileName string
	// RelativePath is sent as the "path" form field when not empty
	RelativePath string
	Size         int64
	MimeType     string
	// Open returns the file content. It is called once.
	Open func() (io.ReadCloser, error)
}

// UploadResponse is the server's answer to a successful upload
type UploadResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Path     string `json:"path"`
}

// Client talks to the file service
type Client struct {
	http   *req.Client
	links  Links
	logger *logging.Logger
}

// NewClient creates a client for the service at baseURL. Requests have no timeout
// until SetTimeout is called.
func NewClient(baseURL string, logger *logging.Logger) *Client {
	links := NewLinks(baseURL)
	httpClient := req.C().
		SetBaseURL(links.Base()).
		SetUserAgent(UserAgent).
		SetTimeout(0).
		SetLogger(logger).
		SetJsonMarshal(utils.JSONMarshal).
		SetJsonUnmarshal(utils.JSONUnmarshal)

	return &Client{
		http:   httpClient,
		links:  links,
		logger: logger,
	}
}

// SetTimeout bounds every request. Zero means no timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.http.SetTimeout(d)
}

// Links returns the URL builder bound to the client's base URL
func (c *Client) Links() Links {
	return c.links
}

// Upload sends one file as multipart form data. Only status 200 counts as success.
func (c *Client) Upload(ctx context.Context, r UploadRequest) (*UploadResponse, error) {
	request := c.http.R().
		SetContext(ctx).
		SetFileUpload(req.FileUpload{
			ParamName:      "file",
			FileName:       r.FileName,
			GetFileContent: r.Open,
			FileSize:       r.Size,
			ContentType:    r.MimeType,
		})
	if r.RelativePath != "" {
		request.SetFormData(map[string]string{"path": r.RelativePath})
	}

	resp, err := request.Post(uploadPath)
	if err != nil {
		return nil, networkError("upload", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, rejected(resp.StatusCode, resp.Bytes())
	}

	var out UploadResponse
	if err := utils.JSONUnmarshal(resp.Bytes(), &out); err != nil {
		c.logger.Debug().Err(err).Str("file", r.FileName).Msg("Upload response was not JSON")
	}
	return &out, nil
}

// ListFiles returns the remote inventory in server order
func (c *Client) ListFiles(ctx context.Context) ([]types.RemoteEntry, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(filesPath)
	if err != nil {
		return nil, &ListingFetchError{Err: networkError("list files", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ListingFetchError{Err: rejected(resp.StatusCode, resp.Bytes())}
	}

	var entries []types.RemoteEntry
	if err := utils.JSONUnmarshal(resp.Bytes(), &entries); err != nil {
		return nil, &ListingFetchError{Err: fmt.Errorf("failed to decode file list: %w", err)}
	}
	for i := range entries {
		entries[i].InferDirectory()
	}

	c.logger.Debug().Int("entries", len(entries)).Msg("Fetched file list")
	return entries, nil
}

// Delete removes a stored file, or a whole top-level directory by name
func (c *Client) Delete(ctx context.Context, key string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(deletePrefix + escapePath(key))
	if err != nil {
		return networkError("delete", err)
	}
	if !resp.IsSuccessState() {
		return rejected(resp.StatusCode, resp.Bytes())
	}

	c.logger.Debug().Str("key", key).Msg("Deleted remote entry")
	return nil
}
