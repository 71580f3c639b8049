package processor

import (
	"io"
	"sync"
	"time"

	"fileshare/pkg/types"
)

// ProgressFunc receives byte progress of one transfer
type ProgressFunc func(update types.ProgressUpdate)

// ProgressReader counts bytes read through it and reports them at most once per interval.
// Reported progress never decreases and never exceeds the declared total.
type ProgressReader struct {
	r        io.Reader
	total    int64
	interval time.Duration
	onUpdate ProgressFunc

	mu       sync.Mutex
	read     int64
	reported int64
	last     time.Time
}

// NewProgressReader wraps r, a source of total bytes
func NewProgressReader(r io.Reader, total int64, interval time.Duration, onUpdate ProgressFunc) *ProgressReader {
	return &ProgressReader{
		r:        r,
		total:    total,
		interval: interval,
		onUpdate: onUpdate,
		reported: -1,
	}
}

func (p *ProgressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)

	p.mu.Lock()
	p.read += int64(n)
	sent := p.read
	if sent > p.total {
		sent = p.total
	}
	now := time.Now()
	due := sent > p.reported && (now.Sub(p.last) >= p.interval || sent == p.total || err == io.EOF)
	if due {
		p.reported = sent
		p.last = now
	}
	p.mu.Unlock()

	if due && p.onUpdate != nil {
		p.onUpdate(types.ProgressUpdate{BytesSent: sent, BytesTotal: p.total})
	}
	return n, err
}

// Close closes the wrapped reader when it is a Closer
func (p *ProgressReader) Close() error {
	if c, ok := p.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// BytesRead returns the raw number of bytes read so far
func (p *ProgressReader) BytesRead() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.read
}
