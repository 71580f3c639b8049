package utils

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// AskForConfirmation prints prompt and waits for a yes/no answer on in.
// Anything other than "y" or "yes" counts as no.
func AskForConfirmation(ctx context.Context, in io.Reader, out io.Writer, prompt string) (bool, error) {
	scanner := bufio.NewScanner(in)

	// Create a channel to receive the input
	inputCh := make(chan string, 1)

	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	go func() {
		if scanner.Scan() {
			inputCh <- strings.TrimSpace(scanner.Text())
			return
		}
		close(inputCh)
	}()

	// Wait for either input or context cancellation
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case answer, ok := <-inputCh:
		if !ok {
			return false, nil
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}
