package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fileshare/internal/batch"
	"fileshare/internal/file"
	"fileshare/internal/notify"
	"fileshare/internal/selection"
	"fileshare/pkg/types"
)

func newBatch(paths ...string) *batch.Batch {
	sel := &selection.Selection{Source: selection.SourcePicker}
	for _, p := range paths {
		sel.Items = append(sel.Items, selection.Candidate{Entry: file.Entry{Name: p, Path: p, Size: 2048}, RelativePath: p})
	}
	return batch.Initialize(sel)
}

func TestUploadProgressPlainOutput(t *testing.T) {
	var out bytes.Buffer
	view := NewUploadProgress(&out, false)
	b := newBatch("x.txt", "y.txt")
	view.Update(b.Snapshot())

	x, _ := b.Advance()
	view.Update(b.Snapshot())
	require.NoError(t, b.Progress(x.ID, types.ProgressUpdate{BytesSent: 1024, BytesTotal: 2048}))
	view.Update(b.Snapshot())
	require.NoError(t, b.Succeed(x.ID))
	view.Update(b.Snapshot())

	y, _ := b.Advance()
	view.Update(b.Snapshot())
	require.NoError(t, b.Fail(y.ID, "disk full"))
	view.Finish(b.Snapshot())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{
		"Uploading [1/2] x.txt (2.0 KiB)",
		"✓ x.txt",
		"Uploading [2/2] y.txt (2.0 KiB)",
		"✗ y.txt: disk full",
		"Pending: 0  Success: 1  Failed: 1",
	}, lines)
}

func TestUploadProgressTerminalFinishes(t *testing.T) {
	var out bytes.Buffer
	view := NewUploadProgress(&out, true)
	b := newBatch("a.txt", "b.txt")
	view.Update(b.Snapshot())

	a, _ := b.Advance()
	view.Update(b.Snapshot())
	require.NoError(t, b.Succeed(a.ID))
	view.Update(b.Snapshot())

	// b is left uploading, Finish must not hang on its bar
	b.Advance()
	view.Update(b.Snapshot())
	view.Finish(b.Snapshot())

	assert.Contains(t, out.String(), "Pending: 0  Uploading: 1  Success: 1  Failed: 0")
}

func TestUploadProgressPlainSummaryShowsInFlightItem(t *testing.T) {
	var out bytes.Buffer
	view := NewUploadProgress(&out, false)
	b := newBatch("a.txt", "b.txt")
	view.Update(b.Snapshot())

	b.Advance()
	view.Finish(b.Snapshot())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, "Pending: 1  Uploading: 1  Success: 0  Failed: 0", lines[len(lines)-1])
}

func TestDownloadProgressPlain(t *testing.T) {
	var out bytes.Buffer
	d := NewDownloadProgress(&out, false)
	d.Start("photos.zip", 2048)
	d.Update(types.ProgressUpdate{BytesSent: 1024, BytesTotal: 2048})
	d.Update(types.ProgressUpdate{BytesSent: 2048, BytesTotal: 2048})
	d.Finish(nil)
	assert.Equal(t, "✓ photos.zip (2.0 KiB)\n", out.String())

	out.Reset()
	d = NewDownloadProgress(&out, false)
	d.Start("b.txt", -1)
	d.Finish(errors.New("Not Found"))
	assert.Equal(t, "✗ b.txt: Not Found\n", out.String())
}

func TestConsoleNotify(t *testing.T) {
	var out bytes.Buffer
	c := NewConsoleUIWith(strings.NewReader(""), &out)

	notify.Success(c, "File deleted successfully")
	notify.Error(c, "Failed to delete file")
	notify.Info(c, "Link copied to clipboard!")

	s := out.String()
	assert.Contains(t, s, "File deleted successfully")
	assert.Contains(t, s, "Failed to delete file")
	assert.Contains(t, s, "Link copied to clipboard!")
}

func TestConsoleConfirm(t *testing.T) {
	var out bytes.Buffer
	c := NewConsoleUIWith(strings.NewReader("yes\n"), &out)

	ok, err := c.Confirm(context.Background(), `Are you sure you want to delete "b.txt"?`)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, out.String(), `delete "b.txt"? [y/N]`)
}
