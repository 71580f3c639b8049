package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"fileshare/internal/batch"
	"fileshare/pkg/types"
	"fileshare/pkg/utils"
)

// UploadProgress draws one bar per started item on a terminal, or prints one line per
// status change otherwise
type UploadProgress struct {
	out        io.Writer
	isTerminal bool
	progress   *mpb.Progress

	mu       sync.Mutex
	bars     map[string]*mpb.Bar
	statuses map[string]batch.Status
	started  int
}

// NewUploadProgress creates a batch view writing to out
func NewUploadProgress(out io.Writer, isTerminal bool) *UploadProgress {
	u := &UploadProgress{
		out:        out,
		isTerminal: isTerminal,
		bars:       make(map[string]*mpb.Bar),
		statuses:   make(map[string]batch.Status),
	}
	if isTerminal {
		u.progress = mpb.New(
			mpb.WithOutput(out),
			mpb.WithRefreshRate(150*time.Millisecond),
			mpb.WithWidth(60),
		)
	}
	return u
}

// Writer returns a writer that prints above the bars
func (u *UploadProgress) Writer() io.Writer {
	if u.progress != nil {
		return u.progress
	}
	return u.out
}

// Update implements BatchView
func (u *UploadProgress) Update(s batch.Snapshot) {
	u.mu.Lock()
	defer u.mu.Unlock()

	total := len(s.Items)
	for _, item := range s.Items {
		prev, seen := u.statuses[item.ID]
		u.statuses[item.ID] = item.Status

		switch item.Status {
		case batch.StatusUploading:
			if !seen || prev != batch.StatusUploading {
				u.started++
				u.startItem(item, total)
			}
			if bar := u.bars[item.ID]; bar != nil {
				bar.SetCurrent(item.BytesSent)
			}
		case batch.StatusSuccess:
			if seen && prev != batch.StatusSuccess {
				u.completeItem(item)
			}
		case batch.StatusFailed:
			if seen && prev != batch.StatusFailed {
				u.failItem(item)
			}
		}
	}
}

// Finish implements BatchView
func (u *UploadProgress) Finish(s batch.Snapshot) {
	u.Update(s)

	u.mu.Lock()
	for id, bar := range u.bars {
		bar.Abort(false)
		delete(u.bars, id)
	}
	u.mu.Unlock()

	if u.progress != nil {
		u.progress.Wait()
	}
	fmt.Fprintln(u.out, batch.Summary(s.Counters))
}

func (u *UploadProgress) startItem(item batch.Item, total int) {
	label := fmt.Sprintf("[%d/%d] %s", u.started, total, item.DisplayPath)
	if !u.isTerminal {
		fmt.Fprintf(u.out, "Uploading %s (%s)\n", label, utils.FormatFileSize(item.SizeBytes))
		return
	}

	u.bars[item.ID] = u.progress.New(item.BytesTotal,
		mpb.BarStyle().Lbound("[").Filler("█").Tip("█").Padding("░").Rbound("]"),
		mpb.PrependDecorators(
			decor.Name(label, decor.WCSyncSpaceR),
		),
		mpb.AppendDecorators(
			decor.OnAbort(decor.CountersKibiByte("% .1f / % .1f", decor.WCSyncSpace), "failed"),
			decor.Name("  "),
			decor.OnComplete(decor.Percentage(decor.WCSyncSpace), "done"),
		),
	)
}

func (u *UploadProgress) completeItem(item batch.Item) {
	if bar := u.bars[item.ID]; bar != nil {
		bar.SetCurrent(item.BytesTotal)
		bar.SetTotal(-1, true)
		delete(u.bars, item.ID)
		return
	}
	if !u.isTerminal {
		fmt.Fprintf(u.out, "✓ %s\n", item.DisplayPath)
	}
}

func (u *UploadProgress) failItem(item batch.Item) {
	msg := fmt.Sprintf("✗ %s: %s\n", item.DisplayPath, item.ErrorMessage)
	if bar := u.bars[item.ID]; bar != nil {
		bar.Abort(false)
		delete(u.bars, item.ID)
		u.progress.Write([]byte(red.Render(msg)))
		return
	}
	fmt.Fprint(u.out, msg)
}

// DownloadProgress draws a byte progress bar for one download
type DownloadProgress struct {
	out        io.Writer
	isTerminal bool
	bar        *progressbar.ProgressBar
	name       string
	last       types.ProgressUpdate
}

// NewDownloadProgress creates a transfer view writing to out
func NewDownloadProgress(out io.Writer, isTerminal bool) *DownloadProgress {
	return &DownloadProgress{out: out, isTerminal: isTerminal}
}

// Start implements TransferView
func (d *DownloadProgress) Start(name string, totalBytes int64) {
	d.name = name
	d.bar = progressbar.NewOptions64(totalBytes,
		progressbar.OptionSetDescription(fmt.Sprintf("Downloading %s", name)),
		progressbar.OptionSetWriter(d.out),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(50),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetVisibility(d.isTerminal),
	)
}

// Update implements TransferView
func (d *DownloadProgress) Update(update types.ProgressUpdate) {
	if d.bar == nil {
		return
	}
	if update.BytesTotal > 0 && update.BytesTotal != d.last.BytesTotal {
		d.bar.ChangeMax64(update.BytesTotal)
	}
	_ = d.bar.Set64(update.BytesSent)
	d.last = update
}

// Finish implements TransferView
func (d *DownloadProgress) Finish(err error) {
	if d.bar != nil {
		if err != nil {
			_ = d.bar.Exit()
		} else {
			_ = d.bar.Finish()
		}
	}
	if d.isTerminal {
		fmt.Fprintln(d.out)
	}
	if err != nil {
		fmt.Fprintf(d.out, "✗ %s: %v\n", d.name, err)
		return
	}
	fmt.Fprintf(d.out, "✓ %s (%s)\n", d.name, utils.FormatFileSize(d.last.BytesSent))
}
