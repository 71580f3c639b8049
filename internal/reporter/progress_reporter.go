package reporter

import (
	"context"

	"fileshare/internal/batch"
	"fileshare/internal/coordinator"
	"fileshare/internal/logging"
	"fileshare/internal/ui"
)

// ProgressReporter feeds batch snapshots of one generation to a view
type ProgressReporter struct {
	view   ui.BatchView
	logger *logging.Logger
}

// NewProgressReporter creates a reporter drawing on view
func NewProgressReporter(view ui.BatchView, logger *logging.Logger) *ProgressReporter {
	return &ProgressReporter{
		view:   view,
		logger: logger,
	}
}

// Track renders snapshots of the batch identified by h until it is done, then returns
// its final snapshot. Snapshots from other generations are skipped.
func (pr *ProgressReporter) Track(ctx context.Context, h coordinator.Handle, snapshots <-chan batch.Snapshot) (batch.Snapshot, error) {
	for {
		select {
		case <-ctx.Done():
			pr.logger.Debug().Msg("Progress reporting stopped: cancelled")
			return batch.Snapshot{}, ctx.Err()
		case s := <-snapshots:
			if s.Generation != h.Generation {
				continue
			}
			pr.view.Update(s)
		case final, ok := <-h.Done:
			if !ok {
				return batch.Snapshot{}, coordinator.ErrNotRunning
			}
			pr.view.Finish(final)
			return final, nil
		}
	}
}
