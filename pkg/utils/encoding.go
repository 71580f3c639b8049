package utils

import (
	"fmt"

	"github.com/goccy/go-json"
)

// JSONMarshal and JSONUnmarshal are the codec used across the module, including the HTTP client
var (
	JSONMarshal   = json.Marshal
	JSONUnmarshal = json.Unmarshal
)

// EncodeJSON encodes any value to JSON bytes
func EncodeJSON[T any](value T) ([]byte, error) {
	return JSONMarshal(value)
}

// DecodeJSON decodes JSON bytes to the specified type
func DecodeJSON[T any](data []byte) (T, error) {
	var result T
	if len(data) == 0 {
		return result, fmt.Errorf("JSON data is empty")
	}

	err := JSONUnmarshal(data, &result)
	if err != nil {
		return result, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return result, nil
}
