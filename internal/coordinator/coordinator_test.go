package coordinator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fileshare/internal/batch"
	"fileshare/internal/config"
	"fileshare/internal/file"
	"fileshare/internal/logging"
	"fileshare/internal/processor"
	"fileshare/internal/selection"
	"fileshare/internal/transport"
	"fileshare/pkg/types"
)

// scriptedChannel returns a fixed outcome per local path
type scriptedChannel struct {
	mu          sync.Mutex
	outcomes    map[string]transport.Outcome
	sizes       map[string]int64
	gates       map[string]chan struct{}
	calls       []transport.Request
	inFlight    int
	maxInFlight int
}

func newScriptedChannel() *scriptedChannel {
	return &scriptedChannel{
		outcomes: map[string]transport.Outcome{},
		sizes:    map[string]int64{},
		gates:    map[string]chan struct{}{},
	}
}

func (s *scriptedChannel) Transfer(ctx context.Context, req transport.Request, onProgress processor.ProgressFunc) transport.Outcome {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	s.inFlight++
	if s.inFlight > s.maxInFlight {
		s.maxInFlight = s.inFlight
	}
	gate := s.gates[req.LocalPath]
	size := s.sizes[req.LocalPath]
	outcome := s.outcomes[req.LocalPath]
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
	}()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
		}
	}
	onProgress(types.ProgressUpdate{BytesSent: size / 2, BytesTotal: size})
	onProgress(types.ProgressUpdate{BytesSent: size, BytesTotal: size})
	return outcome
}

func (s *scriptedChannel) requests() []transport.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]transport.Request(nil), s.calls...)
}

func pick(folder bool, paths ...string) *selection.Selection {
	src := selection.SourcePicker
	if folder {
		src = selection.SourceFolderPicker
	}
	sel := &selection.Selection{Source: src}
	for _, p := range paths {
		sel.Items = append(sel.Items, selection.Candidate{
			Entry:        file.Entry{Name: p, Path: p, Size: 10},
			RelativePath: p,
		})
	}
	return sel
}

func fastOptions(policy config.FailurePolicy) Options {
	return Options{FailurePolicy: policy, SettleDelay: 5 * time.Millisecond, ErrorDisplayDelay: 5 * time.Millisecond}
}

func runCoordinator(t *testing.T, ch transport.TransferChannel, opts Options) (*Coordinator, context.Context) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	c := New(ch, opts, logging.Nop())
	go c.Run(ctx)
	return c, ctx
}

func waitDone(t *testing.T, h Handle) batch.Snapshot {
	t.Helper()
	select {
	case s := <-h.Done:
		return s
	case <-time.After(5 * time.Second):
		t.Fatal("batch did not close")
		return batch.Snapshot{}
	}
}

func rejectedOutcome(msg string) transport.Outcome {
	return transport.Outcome{Kind: transport.OutcomeServerRejected, Message: msg}
}

func TestSuccessThenFailureScenario(t *testing.T) {
	ch := newScriptedChannel()
	ch.sizes["x.txt"], ch.sizes["y.txt"] = 10, 20
	ch.outcomes["y.txt"] = rejectedOutcome("disk full")

	c, ctx := runCoordinator(t, ch, fastOptions(config.ContinueOnFailure))
	h, err := c.Start(ctx, pick(false, "x.txt", "y.txt"))
	require.NoError(t, err)

	final := waitDone(t, h)
	assert.Equal(t, batch.PhaseClosed, final.Phase)
	assert.Equal(t, 0, final.Counters.Pending)
	assert.Equal(t, 1, final.Counters.Success)
	assert.Equal(t, 1, final.Counters.Failed)

	assert.Equal(t, batch.StatusSuccess, final.Items[0].Status)
	assert.Equal(t, batch.StatusFailed, final.Items[1].Status)
	assert.Equal(t, "disk full", final.Items[1].ErrorMessage)
}

func TestContinuePolicyRunsEveryItemInOrder(t *testing.T) {
	ch := newScriptedChannel()
	ch.outcomes["a"] = rejectedOutcome("nope")

	c, ctx := runCoordinator(t, ch, fastOptions(config.ContinueOnFailure))
	h, err := c.Start(ctx, pick(false, "a", "b", "c"))
	require.NoError(t, err)
	final := waitDone(t, h)

	var order []string
	for _, r := range ch.requests() {
		order = append(order, r.LocalPath)
	}
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, batch.Counters{Success: 2, Failed: 1}, final.Counters)
	assert.Equal(t, 1, ch.maxInFlight)
}

func TestHaltPolicyLeavesRemainingPending(t *testing.T) {
	ch := newScriptedChannel()
	ch.outcomes["a"] = transport.Outcome{Kind: transport.OutcomeNetworkFailure, Message: transport.NetworkErrorMessage}

	c, ctx := runCoordinator(t, ch, fastOptions(config.HaltOnFailure))
	h, err := c.Start(ctx, pick(false, "a", "b"))
	require.NoError(t, err)
	final := waitDone(t, h)

	assert.Len(t, ch.requests(), 1)
	assert.Equal(t, batch.Counters{Pending: 1, Failed: 1}, final.Counters)
	assert.Equal(t, batch.StatusPending, final.Items[1].Status)
	assert.Equal(t, "Network error", final.Items[0].ErrorMessage)
	assert.Equal(t, batch.PhaseClosed, final.Phase)
}

func TestFolderFlagReachesTransfer(t *testing.T) {
	ch := newScriptedChannel()

	c, ctx := runCoordinator(t, ch, fastOptions(config.ContinueOnFailure))
	h, err := c.Start(ctx, pick(true, "docs/a.txt"))
	require.NoError(t, err)
	waitDone(t, h)

	reqs := ch.requests()
	require.Len(t, reqs, 1)
	assert.True(t, reqs[0].Folder)
	assert.Equal(t, "docs/a.txt", reqs[0].RelativePath)
}

func TestCountersBalancedInEverySnapshot(t *testing.T) {
	ch := newScriptedChannel()
	ch.outcomes["b"] = rejectedOutcome("bad")

	c, ctx := runCoordinator(t, ch, fastOptions(config.ContinueOnFailure))

	var (
		wg   sync.WaitGroup
		seen []batch.Snapshot
	)
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case s := <-c.Snapshots():
				seen = append(seen, s)
			case <-stop:
				return
			}
		}
	}()

	h, err := c.Start(ctx, pick(false, "a", "b", "c", "d"))
	require.NoError(t, err)
	waitDone(t, h)
	time.Sleep(20 * time.Millisecond)
	close(stop)
	wg.Wait()

	require.NotEmpty(t, seen)
	for _, s := range seen {
		assert.Equal(t, len(s.Items), s.Counters.Total())
		if s.Counters.Uploading == 0 {
			assert.Equal(t, len(s.Items), s.Counters.Pending+s.Counters.Success+s.Counters.Failed)
		}
		for _, item := range s.Items {
			assert.LessOrEqual(t, item.BytesSent, item.BytesTotal)
		}
	}
}

func TestStaleCallbacksAreDiscarded(t *testing.T) {
	ch := newScriptedChannel()
	gate := make(chan struct{})
	ch.gates["old.txt"] = gate
	ch.outcomes["old.txt"] = rejectedOutcome("late failure")

	c, ctx := runCoordinator(t, ch, fastOptions(config.ContinueOnFailure))

	first, err := c.Start(ctx, pick(false, "old.txt"))
	require.NoError(t, err)
	require.Eventually(t, func() bool { return len(ch.requests()) == 1 }, time.Second, time.Millisecond)

	second, err := c.Start(ctx, pick(false, "new.txt"))
	require.NoError(t, err)
	assert.NotEqual(t, first.Generation, second.Generation)

	superseded := waitDone(t, first)
	assert.Equal(t, first.Generation, superseded.Generation)
	assert.Equal(t, batch.StatusUploading, superseded.Items[0].Status)

	// the old transfer finishes after the new batch took over
	close(gate)

	final := waitDone(t, second)
	assert.Equal(t, batch.Counters{Success: 1}, final.Counters)
	require.Len(t, final.Items, 1)
	assert.Equal(t, "new.txt", final.Items[0].DisplayPath)
	assert.Empty(t, final.Items[0].ErrorMessage)
}

func TestStartAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := New(newScriptedChannel(), fastOptions(""), logging.Nop())
	stopped := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	_, err := c.Start(context.Background(), pick(false, "a"))
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestOptionsFromConfig(t *testing.T) {
	opts := OptionsFromConfig(config.NewDefaultConfig().Upload)
	assert.Equal(t, config.ContinueOnFailure, opts.FailurePolicy)
	assert.Equal(t, 2*time.Second, opts.SettleDelay)
	assert.Equal(t, 5*time.Second, opts.ErrorDisplayDelay)
	assert.Equal(t, DefaultItemGap, opts.ItemGap)
}

func TestUnrecordableOutcomeStillClosesBatch(t *testing.T) {
	tests := []struct {
		name   string
		itemID string
	}{
		{"unknown item", "file-missing"},
		{"item not in flight", "file-b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := newScriptedChannel()
			gate := make(chan struct{})
			ch.gates["a"] = gate
			defer close(gate)

			c, ctx := runCoordinator(t, ch, fastOptions(config.ContinueOnFailure))
			h, err := c.Start(ctx, pick(false, "a", "b"))
			require.NoError(t, err)
			require.Eventually(t, func() bool { return len(ch.requests()) == 1 }, time.Second, time.Millisecond)

			c.post(ctx, outcomeEvent{
				generation: h.Generation,
				itemID:     tt.itemID,
				outcome:    transport.Outcome{Kind: transport.OutcomeSuccess},
			})
			final := waitDone(t, h)

			assert.Equal(t, batch.PhaseClosed, final.Phase)
			assert.Len(t, ch.requests(), 1)
			assert.Equal(t, batch.StatusUploading, final.Items[0].Status)
			assert.Equal(t, batch.StatusPending, final.Items[1].Status)
			assert.Equal(t, final.Counters.Total(), len(final.Items))
		})
	}
}

func TestCollidingDisplayPathsAllUpload(t *testing.T) {
	ch := newScriptedChannel()

	c, ctx := runCoordinator(t, ch, fastOptions(config.ContinueOnFailure))
	h, err := c.Start(ctx, pick(false, "a.txt", "a txt", "a-txt-2"))
	require.NoError(t, err)
	final := waitDone(t, h)

	assert.Len(t, ch.requests(), 3)
	assert.Equal(t, batch.Counters{Success: 3}, final.Counters)
}
