package remote

import (
	"errors"
	"fmt"
	"net/http"

	"fileshare/pkg/utils"
)

// ErrNetworkFailure means no response was received
var ErrNetworkFailure = errors.New("network error")

// ServerRejectedError is returned when the server answered with an unexpected status
type ServerRejectedError struct {
	StatusCode int
	Message    string
}

func (e *ServerRejectedError) Error() string {
	return e.Message
}

// ListingFetchError wraps any failure to retrieve the remote inventory
type ListingFetchError struct {
	Err error
}

func (e *ListingFetchError) Error() string {
	return fmt.Sprintf("failed to fetch file list: %v", e.Err)
}

func (e *ListingFetchError) Unwrap() error {
	return e.Err
}

// errorResponse is the server's error body
type errorResponse struct {
	Error string `json:"error"`
}

// networkError wraps a transport failure so it matches ErrNetworkFailure
func networkError(operation string, err error) error {
	return fmt.Errorf("%s: %w: %w", operation, ErrNetworkFailure, err)
}

// rejected builds a ServerRejectedError, preferring the body's error field, then the
// status text, then "Error <code>"
func rejected(statusCode int, body []byte) *ServerRejectedError {
	msg := ""
	if resp, err := utils.DecodeJSON[errorResponse](body); err == nil {
		msg = resp.Error
	}
	if msg == "" {
		msg = http.StatusText(statusCode)
	}
	if msg == "" {
		msg = fmt.Sprintf("Error %d", statusCode)
	}
	return &ServerRejectedError{StatusCode: statusCode, Message: msg}
}
