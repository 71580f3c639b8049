// Package batch tracks the items of one upload selection and their counters.
package batch

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"fileshare/internal/selection"
	"fileshare/pkg/types"
	"fileshare/pkg/utils"
)

var (
	ErrInvalidTransition = errors.New("invalid item status transition")
	ErrStaleGeneration   = errors.New("event belongs to a superseded batch")
	ErrUnknownItem       = errors.New("unknown item")
)

// Item is one file queued for transfer
type Item struct {
	ID              string
	DisplayPath     string
	LocalPath       string
	SizeBytes       int64
	Status          Status
	ProgressPercent int
	BytesSent       int64
	BytesTotal      int64
	ErrorMessage    string
}

// Counters summarise item statuses. Uploading is 0 or 1 since transfers are sequential.
type Counters struct {
	Pending   int
	Uploading int
	Success   int
	Failed    int
}

// Total returns the number of items the counters account for
func (c Counters) Total() int {
	return c.Pending + c.Uploading + c.Success + c.Failed
}

// Batch is the active upload queue. It is not safe for concurrent use; one goroutine owns it.
type Batch struct {
	generation string
	folder     bool
	items      []Item
	index      map[string]int
	next       int
	counters   Counters
	phase      Phase
}

// Initialize creates a batch for sel with every item Pending and a fresh generation
func Initialize(sel *selection.Selection) *Batch {
	paths := make([]string, len(sel.Items))
	for i, c := range sel.Items {
		paths[i] = c.RelativePath
	}
	ids := utils.UniqueIDs(paths)

	b := &Batch{
		generation: uuid.NewString(),
		folder:     sel.IsFolder(),
		items:      make([]Item, len(sel.Items)),
		index:      make(map[string]int, len(sel.Items)),
		counters:   Counters{Pending: len(sel.Items)},
		phase:      PhaseRunning,
	}
	for i, c := range sel.Items {
		b.items[i] = Item{
			ID:          ids[i],
			DisplayPath: c.RelativePath,
			LocalPath:   c.Entry.Path,
			SizeBytes:   c.Entry.Size,
			Status:      StatusPending,
			BytesTotal:  c.Entry.Size,
		}
		b.index[ids[i]] = i
	}
	return b
}

// Generation returns the id tagging every transfer of this batch
func (b *Batch) Generation() string {
	return b.generation
}

// IsFolder reports whether items carry folder-relative paths
func (b *Batch) IsFolder() bool {
	return b.folder
}

// Phase returns the batch phase
func (b *Batch) Phase() Phase {
	return b.phase
}

// Counters returns the current counters
func (b *Batch) Counters() Counters {
	return b.counters
}

// Len returns the number of items
func (b *Batch) Len() int {
	return len(b.items)
}

// CheckGeneration returns ErrStaleGeneration unless gen is this batch's generation
func (b *Batch) CheckGeneration(gen string) error {
	if gen != b.generation {
		return fmt.Errorf("%w: %s", ErrStaleGeneration, gen)
	}
	return nil
}

// Advance moves the head pending item to Uploading and returns a copy of it.
// It returns false when no pending item remains or the batch is no longer running.
func (b *Batch) Advance() (Item, bool) {
	if b.phase != PhaseRunning {
		return Item{}, false
	}
	for b.next < len(b.items) && b.items[b.next].Status != StatusPending {
		b.next++
	}
	if b.next >= len(b.items) {
		return Item{}, false
	}

	item := &b.items[b.next]
	item.Status = StatusUploading
	b.counters.Pending--
	b.counters.Uploading++
	b.next++
	return *item, true
}

// HasPending reports whether an item is still waiting to be started
func (b *Batch) HasPending() bool {
	return b.counters.Pending > 0
}

// Progress records byte progress for an uploading item. Updates that would move
// progress backwards are ignored.
func (b *Batch) Progress(id string, update types.ProgressUpdate) error {
	item, err := b.lookup(id)
	if err != nil {
		return err
	}
	if item.Status != StatusUploading {
		return fmt.Errorf("%w: progress for %s item %s", ErrInvalidTransition, item.Status, id)
	}

	sent := update.BytesSent
	if update.BytesTotal >= 0 && sent > update.BytesTotal {
		sent = update.BytesTotal
	}
	if sent < item.BytesSent {
		return nil
	}

	item.BytesSent = sent
	item.BytesTotal = update.BytesTotal
	item.ProgressPercent = types.ProgressUpdate{BytesSent: sent, BytesTotal: update.BytesTotal}.Percent()
	return nil
}

// Succeed marks an uploading item as Success
func (b *Batch) Succeed(id string) error {
	item, err := b.transition(id, StatusSuccess)
	if err != nil {
		return err
	}
	item.ProgressPercent = 100
	item.BytesSent = item.BytesTotal
	b.counters.Uploading--
	b.counters.Success++
	return nil
}

// Fail marks an uploading item as Failed with message
func (b *Batch) Fail(id, message string) error {
	item, err := b.transition(id, StatusFailed)
	if err != nil {
		return err
	}
	item.ErrorMessage = message
	b.counters.Uploading--
	b.counters.Failed++
	return nil
}

// Finalize force-marks any item still Pending as Success and enters PhaseFinalizing.
// It returns the ids that had to be forced.
func (b *Batch) Finalize() []string {
	var forced []string
	for i := range b.items {
		item := &b.items[i]
		if item.Status != StatusPending {
			continue
		}
		item.Status = StatusSuccess
		item.ProgressPercent = 100
		b.counters.Pending--
		b.counters.Success++
		forced = append(forced, item.ID)
	}
	b.phase = PhaseFinalizing
	return forced
}

// Halt stops the batch, leaving remaining items Pending
func (b *Batch) Halt() {
	b.phase = PhaseHalted
}

// Close marks the batch as done
func (b *Batch) Close() {
	b.phase = PhaseClosed
}

func (b *Batch) lookup(id string) (*Item, error) {
	i, ok := b.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	return &b.items[i], nil
}

func (b *Batch) transition(id string, next Status) (*Item, error) {
	item, err := b.lookup(id)
	if err != nil {
		return nil, err
	}
	if !item.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s for %s", ErrInvalidTransition, item.Status, next, id)
	}
	item.Status = next
	return item, nil
}
