package processor

import (
	"io"

	"fileshare/pkg/types"
)

// ProgressWriter counts bytes written through it, reporting every write
type ProgressWriter struct {
	w        io.Writer
	total    int64
	written  int64
	onUpdate ProgressFunc
}

// NewProgressWriter wraps w. Total may be -1 when the length is unknown.
func NewProgressWriter(w io.Writer, total int64, onUpdate ProgressFunc) *ProgressWriter {
	return &ProgressWriter{
		w:        w,
		total:    total,
		onUpdate: onUpdate,
	}
}

func (p *ProgressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	if n > 0 {
		p.written += int64(n)
		if p.onUpdate != nil {
			p.onUpdate(types.ProgressUpdate{BytesSent: p.written, BytesTotal: p.total})
		}
	}
	return n, err
}

// Written returns the number of bytes written so far
func (p *ProgressWriter) Written() int64 {
	return p.written
}
