// Package coordinator runs upload batches one item at a time.
package coordinator

import (
	"context"
	"errors"
	"time"

	"fileshare/internal/batch"
	"fileshare/internal/config"
	"fileshare/internal/logging"
	"fileshare/internal/selection"
	"fileshare/internal/transport"
	"fileshare/pkg/types"
)

// DefaultItemGap is the pause between one item's outcome and the next item's start
const DefaultItemGap = 10 * time.Millisecond

// ErrNotRunning is returned by Start when the loop has stopped
var ErrNotRunning = errors.New("upload coordinator is not running")

// Options controls batch pacing and the failure policy
type Options struct {
	FailurePolicy     config.FailurePolicy
	SettleDelay       time.Duration
	ErrorDisplayDelay time.Duration
	ItemGap           time.Duration
}

// OptionsFromConfig builds Options from the upload section of the configuration
func OptionsFromConfig(cfg config.UploadConfig) Options {
	return Options{
		FailurePolicy:     cfg.OnFailure,
		SettleDelay:       cfg.SettleDelay,
		ErrorDisplayDelay: cfg.ErrorDisplayDelay,
		ItemGap:           DefaultItemGap,
	}
}

// Coordinator owns the active batch. All batch mutation happens on the Run goroutine.
type Coordinator struct {
	channel   transport.TransferChannel
	opts      Options
	logger    *logging.Logger
	events    chan event
	snapshots chan batch.Snapshot
	stopped   chan struct{}

	// loop-owned state
	current *batch.Batch
	done    chan batch.Snapshot
}

// New creates a coordinator that transfers items through channel
func New(channel transport.TransferChannel, opts Options, logger *logging.Logger) *Coordinator {
	if opts.FailurePolicy == "" {
		opts.FailurePolicy = config.ContinueOnFailure
	}
	return &Coordinator{
		channel:   channel,
		opts:      opts,
		logger:    logger.With("component", "coordinator"),
		events:    make(chan event, 64),
		snapshots: make(chan batch.Snapshot, 32),
		stopped:   make(chan struct{}),
	}
}

// Snapshots delivers a snapshot after every batch change. Slow readers lose the oldest
// snapshots, never the latest.
func (c *Coordinator) Snapshots() <-chan batch.Snapshot {
	return c.snapshots
}

// Start hands a selection to the loop, discarding any active batch
func (c *Coordinator) Start(ctx context.Context, sel *selection.Selection) (Handle, error) {
	reply := make(chan Handle, 1)
	select {
	case c.events <- startEvent{selection: sel, reply: reply}:
	case <-c.stopped:
		return Handle{}, ErrNotRunning
	case <-ctx.Done():
		return Handle{}, ctx.Err()
	}

	select {
	case h := <-reply:
		return h, nil
	case <-c.stopped:
		return Handle{}, ErrNotRunning
	case <-ctx.Done():
		return Handle{}, ctx.Err()
	}
}

// Run processes events until ctx is cancelled
func (c *Coordinator) Run(ctx context.Context) error {
	defer close(c.stopped)
	defer c.release()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-c.events:
			c.handle(ctx, ev)
		}
	}
}

func (c *Coordinator) handle(ctx context.Context, ev event) {
	switch e := ev.(type) {
	case startEvent:
		c.handleStart(ctx, e)
	case progressEvent:
		c.handleProgress(e)
	case outcomeEvent:
		c.handleOutcome(ctx, e)
	case timerEvent:
		c.handleTimer(ctx, e)
	}
}

func (c *Coordinator) handleStart(ctx context.Context, e startEvent) {
	if c.current != nil {
		c.logger.Info().Str("generation", c.current.Generation()).Msg("Discarding previous batch")
		c.release()
	}

	c.current = batch.Initialize(e.selection)
	c.done = make(chan batch.Snapshot, 1)
	e.reply <- Handle{Generation: c.current.Generation(), Done: c.done}

	c.logger.Info().
		Str("generation", c.current.Generation()).
		Int("items", c.current.Len()).
		Bool("folder", c.current.IsFolder()).
		Msg("Starting upload batch")

	c.publish()
	c.advance(ctx)
}

func (c *Coordinator) handleProgress(e progressEvent) {
	if !c.isCurrent(e.generation) {
		return
	}
	if err := c.current.Progress(e.itemID, e.update); err != nil {
		c.logger.Debug().Err(err).Msg("Ignoring progress")
		return
	}
	c.publish()
}

func (c *Coordinator) handleOutcome(ctx context.Context, e outcomeEvent) {
	if !c.isCurrent(e.generation) {
		c.logger.Debug().Str("generation", e.generation).Str("item", e.itemID).Msg("Discarding stale outcome")
		return
	}

	var err error
	if e.outcome.Failed() {
		err = c.current.Fail(e.itemID, e.outcome.Message)
	} else {
		err = c.current.Succeed(e.itemID)
	}
	if err != nil {
		c.abandon(ctx, e.itemID, err)
		return
	}
	if c.current.Phase() != batch.PhaseRunning {
		// close is already scheduled
		c.publish()
		return
	}

	if !e.outcome.Failed() {
		c.logger.Info().Str("item", e.itemID).Msg("Upload succeeded")
		c.publish()
		c.schedule(ctx, c.opts.ItemGap, timerAdvance)
		return
	}

	c.logger.Error().
		Str("item", e.itemID).
		Str("kind", e.outcome.Kind.String()).
		Str("error", e.outcome.Message).
		Msg("Upload failed")

	if c.opts.FailurePolicy == config.HaltOnFailure {
		c.current.Halt()
		c.publish()
		c.schedule(ctx, c.opts.ErrorDisplayDelay, timerClose)
		return
	}

	c.publish()
	c.schedule(ctx, c.opts.ItemGap, timerAdvance)
}

// abandon halts a batch whose outcome could not be recorded so it still reaches Closed
func (c *Coordinator) abandon(ctx context.Context, itemID string, err error) {
	c.logger.Error().Err(err).Str("item", itemID).Msg("Cannot record upload outcome, halting batch")
	if c.current.Phase() != batch.PhaseRunning {
		return
	}
	c.current.Halt()
	c.publish()
	c.schedule(ctx, c.opts.ErrorDisplayDelay, timerClose)
}

func (c *Coordinator) handleTimer(ctx context.Context, e timerEvent) {
	if !c.isCurrent(e.generation) {
		return
	}
	switch e.kind {
	case timerAdvance:
		if c.current.Phase() != batch.PhaseRunning {
			return
		}
		c.advance(ctx)
	case timerClose:
		c.current.Close()
		c.logger.Info().
			Str("generation", c.current.Generation()).
			Str("summary", batch.Summary(c.current.Counters())).
			Msg("Upload batch closed")
		c.publish()
		c.release()
	}
}

// advance starts the next pending item, or finalizes when none is left
func (c *Coordinator) advance(ctx context.Context) {
	item, ok := c.current.Advance()
	if !ok {
		c.finalize(ctx)
		return
	}
	c.publish()

	req := transport.Request{
		LocalPath:    item.LocalPath,
		RelativePath: item.DisplayPath,
		Folder:       c.current.IsFolder(),
	}
	go c.transfer(ctx, c.current.Generation(), item.ID, req)
}

func (c *Coordinator) finalize(ctx context.Context) {
	forced := c.current.Finalize()
	if len(forced) > 0 {
		c.logger.Warn().Strs("items", forced).Msg("Marking leftover pending items as uploaded")
	}
	c.publish()
	c.schedule(ctx, c.opts.SettleDelay, timerClose)
}

// transfer runs on its own goroutine and only talks to the loop through events
func (c *Coordinator) transfer(ctx context.Context, generation, itemID string, req transport.Request) {
	outcome := c.channel.Transfer(ctx, req, func(u types.ProgressUpdate) {
		c.post(ctx, progressEvent{generation: generation, itemID: itemID, update: u})
	})
	c.post(ctx, outcomeEvent{generation: generation, itemID: itemID, outcome: outcome})
}

func (c *Coordinator) schedule(ctx context.Context, d time.Duration, kind timerKind) {
	ev := timerEvent{generation: c.current.Generation(), kind: kind}
	time.AfterFunc(d, func() { c.post(ctx, ev) })
}

func (c *Coordinator) post(ctx context.Context, ev event) {
	select {
	case c.events <- ev:
	case <-ctx.Done():
	}
}

func (c *Coordinator) isCurrent(generation string) bool {
	return c.current != nil && c.current.CheckGeneration(generation) == nil
}

// publish sends the current snapshot, dropping the oldest queued one if the buffer is full
func (c *Coordinator) publish() {
	s := c.current.Snapshot()
	select {
	case c.snapshots <- s:
	default:
		select {
		case <-c.snapshots:
		default:
		}
		c.snapshots <- s
	}
}

// release hands the last snapshot to the batch's waiter and forgets the batch
func (c *Coordinator) release() {
	if c.current == nil {
		return
	}
	c.done <- c.current.Snapshot()
	close(c.done)
	c.current = nil
	c.done = nil
}
