package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Clipboard places text on the system clipboard
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard uses the platform clipboard
type SystemClipboard struct{}

// WriteAll copies text to the clipboard
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard is not supported on this system")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
