package reporter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fileshare/internal/batch"
	"fileshare/internal/coordinator"
	"fileshare/internal/logging"
)

type recordingView struct {
	updates  []batch.Snapshot
	finished *batch.Snapshot
}

func (r *recordingView) Update(s batch.Snapshot) { r.updates = append(r.updates, s) }
func (r *recordingView) Finish(s batch.Snapshot) { r.finished = &s }

func TestTrackFiltersGenerations(t *testing.T) {
	snapshots := make(chan batch.Snapshot, 4)
	done := make(chan batch.Snapshot, 1)

	snapshots <- batch.Snapshot{Generation: "old"}
	snapshots <- batch.Snapshot{Generation: "new", Phase: batch.PhaseRunning}

	view := &recordingView{}
	pr := NewProgressReporter(view, logging.Nop())

	done <- batch.Snapshot{Generation: "new", Phase: batch.PhaseClosed}

	final, err := pr.Track(context.Background(), coordinator.Handle{Generation: "new", Done: done}, snapshots)
	require.NoError(t, err)

	assert.Equal(t, batch.PhaseClosed, final.Phase)
	require.NotNil(t, view.finished)
	for _, s := range view.updates {
		assert.Equal(t, "new", s.Generation)
	}
}

func TestTrackCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pr := NewProgressReporter(&recordingView{}, logging.Nop())
	_, err := pr.Track(ctx, coordinator.Handle{Generation: "g", Done: make(chan batch.Snapshot)}, make(chan batch.Snapshot))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTrackClosedWithoutSnapshot(t *testing.T) {
	done := make(chan batch.Snapshot)
	close(done)

	pr := NewProgressReporter(&recordingView{}, logging.Nop())
	_, err := pr.Track(context.Background(), coordinator.Handle{Generation: "g", Done: done}, make(chan batch.Snapshot))
	assert.ErrorIs(t, err, coordinator.ErrNotRunning)
}
