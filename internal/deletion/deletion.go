// Package deletion removes remote entries and refreshes the listing afterwards.
package deletion

import (
	"context"
	"fmt"

	"fileshare/internal/listing"
	"fileshare/internal/logging"
	"fileshare/internal/notify"
)

const (
	SuccessMessage = "File deleted successfully"
	FailureMessage = "Failed to delete file"
)

// Remover issues the remote delete
type Remover interface {
	Delete(ctx context.Context, key string) error
}

// Fetcher refreshes the listing view
type Fetcher interface {
	Fetch(ctx context.Context) listing.View
}

// Coordinator deletes one entry at a time
type Coordinator struct {
	remover  Remover
	fetcher  Fetcher
	notifier notify.Sink
	logger   *logging.Logger
}

// NewCoordinator creates a deletion coordinator
func NewCoordinator(remover Remover, fetcher Fetcher, notifier notify.Sink, logger *logging.Logger) *Coordinator {
	return &Coordinator{
		remover:  remover,
		fetcher:  fetcher,
		notifier: notifier,
		logger:   logger,
	}
}

// Delete removes key, a file path or a top-level group name. On success the listing is
// fetched again; on failure the current view is left as it is.
func (c *Coordinator) Delete(ctx context.Context, key string) error {
	if err := c.remover.Delete(ctx, key); err != nil {
		c.logger.Error().Err(err).Str("key", key).Msg("Delete failed")
		notify.Error(c.notifier, FailureMessage)
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}

	c.logger.Info().Str("key", key).Msg("Deleted")
	notify.Success(c.notifier, SuccessMessage)
	c.fetcher.Fetch(ctx)
	return nil
}

// ConfirmPrompt returns the question asked before deleting target
func ConfirmPrompt(target listing.Target) string {
	if target.Kind == listing.TargetGroup {
		return fmt.Sprintf("Are you sure you want to delete the folder %q and all its contents?", target.Name)
	}
	return fmt.Sprintf("Are you sure you want to delete %q?", target.Name)
}
