package app

import (
	"context"
	"errors"
	"fmt"

	"fileshare/internal/batch"
	"fileshare/internal/coordinator"
	"fileshare/internal/logging"
	"fileshare/internal/reporter"
	"fileshare/internal/selection"
	"fileshare/internal/ui"
)

// ErrUploadsFailed is returned when a batch closed with failed or unsent items
var ErrUploadsFailed = errors.New("some files were not uploaded")

// UploaderOptions configures one upload run
type UploaderOptions struct {
	Source selection.Source
	Paths  []string
}

// UploaderApp classifies a selection and drives it through the coordinator
type UploaderApp struct {
	classifier  *selection.Classifier
	coordinator *coordinator.Coordinator
	view        ui.BatchView
	logger      *logging.Logger
}

// NewUploaderApp creates a new uploader application
func NewUploaderApp(
	classifier *selection.Classifier,
	coord *coordinator.Coordinator,
	view ui.BatchView,
	logger *logging.Logger,
) *UploaderApp {
	return &UploaderApp{
		classifier:  classifier,
		coordinator: coord,
		view:        view,
		logger:      logger,
	}
}

// Run uploads the selection described by opts and returns the batch's final snapshot
func (u *UploaderApp) Run(ctx context.Context, opts *UploaderOptions) (batch.Snapshot, error) {
	sel, err := u.classifier.Classify(opts.Source, opts.Paths)
	if err != nil {
		return batch.Snapshot{}, fmt.Errorf("invalid selection: %w", err)
	}

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err := u.coordinator.Run(loopCtx); err != nil && !errors.Is(err, context.Canceled) {
			u.logger.Error().Err(err).Msg("Upload loop stopped")
		}
	}()

	handle, err := u.coordinator.Start(ctx, sel)
	if err != nil {
		return batch.Snapshot{}, fmt.Errorf("failed to start upload: %w", err)
	}

	final, err := reporter.NewProgressReporter(u.view, u.logger).Track(ctx, handle, u.coordinator.Snapshots())
	if err != nil {
		return batch.Snapshot{}, fmt.Errorf("upload interrupted: %w", err)
	}

	if final.Counters.Success < final.Counters.Total() {
		return final, fmt.Errorf("%w: %s", ErrUploadsFailed, batch.Summary(final.Counters))
	}
	return final, nil
}
