package transport

import (
	"io"
	"sync"
	"sync/atomic"

	"fileshare/internal/processor"
	"fileshare/pkg/types"
)

// progressGate drops progress events once the terminal outcome has been decided
type progressGate struct {
	closed atomic.Bool
	mu     sync.Mutex
	fn     processor.ProgressFunc
}

func newProgressGate(fn processor.ProgressFunc) *progressGate {
	return &progressGate{fn: fn}
}

func (g *progressGate) emit(u types.ProgressUpdate) {
	if g.fn == nil || g.closed.Load() {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.closed.Load() {
		g.fn(u)
	}
}

// close waits for an in-progress emit to finish
func (g *progressGate) close() {
	g.mu.Lock()
	g.closed.Store(true)
	g.mu.Unlock()
}

// readTracker remembers the first local read error, EOF excluded
type readTracker struct {
	r   io.ReadCloser
	mu  sync.Mutex
	err error
}

func (t *readTracker) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && err != io.EOF {
		t.mu.Lock()
		if t.err == nil {
			t.err = err
		}
		t.mu.Unlock()
	}
	return n, err
}

func (t *readTracker) Close() error {
	return t.r.Close()
}

func (t *readTracker) readErr() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}
