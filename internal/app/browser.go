package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"fileshare/internal/deletion"
	"fileshare/internal/listing"
	"fileshare/internal/logging"
	"fileshare/internal/notify"
	"fileshare/internal/ui"
	"fileshare/pkg/utils"
)

// CopiedMessage is shown after a link lands on the clipboard
const CopiedMessage = "Link copied to clipboard!"

var (
	ErrNotFound      = errors.New("no file or folder with that name")
	ErrListingFailed = errors.New(listing.ErrorMessage)
	ErrMissingKey    = errors.New("a file path or folder name is required")
)

// ListOptions configures the list command
type ListOptions struct {
	JSON bool
}

// DeleteOptions configures the delete command
type DeleteOptions struct {
	Key string
	Yes bool // skip the confirmation prompt
}

// DownloadOptions configures the download command
type DownloadOptions struct {
	Key         string
	Destination string
}

// LinkOptions configures the link command
type LinkOptions struct {
	Key  string
	Copy bool
}

// BrowserApp browses the remote inventory
type BrowserApp struct {
	reconciler *listing.Reconciler
	deleter    *deletion.Coordinator
	downloader Downloader
	newView    func() ui.TransferView
	confirmer  Confirmer
	clipboard  ui.Clipboard
	notifier   notify.Sink
	out        io.Writer
	logger     *logging.Logger
}

// BrowserDeps groups the collaborators of a BrowserApp
type BrowserDeps struct {
	Reconciler *listing.Reconciler
	Deleter    *deletion.Coordinator
	Downloader Downloader
	NewView    func() ui.TransferView
	Confirmer  Confirmer
	Clipboard  ui.Clipboard
	Notifier   notify.Sink
	Out        io.Writer
	Logger     *logging.Logger
}

// NewBrowserApp creates a new browser application
func NewBrowserApp(deps BrowserDeps) *BrowserApp {
	return &BrowserApp{
		reconciler: deps.Reconciler,
		deleter:    deps.Deleter,
		downloader: deps.Downloader,
		newView:    deps.NewView,
		confirmer:  deps.Confirmer,
		clipboard:  deps.Clipboard,
		notifier:   deps.Notifier,
		out:        deps.Out,
		logger:     deps.Logger,
	}
}

// List prints the grouped inventory
func (b *BrowserApp) List(ctx context.Context, opts *ListOptions) error {
	v := b.reconciler.Fetch(ctx)
	if v.State == listing.StateError {
		return fmt.Errorf("%w: %w", ErrListingFailed, v.Err)
	}

	if opts.JSON {
		data, err := listing.RenderJSON(v)
		if err != nil {
			return fmt.Errorf("failed to encode listing: %w", err)
		}
		_, err = fmt.Fprintln(b.out, string(data))
		return err
	}

	_, err := fmt.Fprintln(b.out, listing.Render(v))
	return err
}

// Delete removes a file or a whole folder group after confirmation
func (b *BrowserApp) Delete(ctx context.Context, opts *DeleteOptions) error {
	target, err := b.resolve(ctx, opts.Key)
	if err != nil {
		return err
	}

	if !opts.Yes {
		ok, err := b.confirmer.Confirm(ctx, deletion.ConfirmPrompt(target))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			fmt.Fprintln(b.out, "Cancelled")
			return nil
		}
	}

	return b.deleter.Delete(ctx, target.DeleteKey)
}

// Download saves a file, or a folder group as a zip archive, under the destination
func (b *BrowserApp) Download(ctx context.Context, opts *DownloadOptions) (string, error) {
	target, err := b.resolve(ctx, opts.Key)
	if err != nil {
		return "", err
	}

	name := target.Name
	if target.Kind == listing.TargetGroup {
		name += ".zip"
	}
	dst, err := utils.ResolveDestinationPath(opts.Destination, name)
	if err != nil {
		return "", fmt.Errorf("invalid destination: %w", err)
	}

	view := b.newView()
	view.Start(name, -1)
	n, err := b.downloader.Download(ctx, target.URL, dst, view.Update)
	view.Finish(err)
	if err != nil {
		return "", fmt.Errorf("failed to download %q: %w", target.Name, err)
	}

	b.logger.Info().Str("path", dst).Int64("bytes", n).Msg("Downloaded")
	return dst, nil
}

// Link prints the absolute URL of a file or folder archive, optionally copying it
func (b *BrowserApp) Link(ctx context.Context, opts *LinkOptions) (string, error) {
	target, err := b.resolve(ctx, opts.Key)
	if err != nil {
		return "", err
	}

	fmt.Fprintln(b.out, target.URL)
	if opts.Copy {
		if err := b.clipboard.WriteAll(target.URL); err != nil {
			return "", fmt.Errorf("failed to copy link: %w", err)
		}
		notify.Info(b.notifier, CopiedMessage)
	}
	return target.URL, nil
}

func (b *BrowserApp) resolve(ctx context.Context, key string) (listing.Target, error) {
	if key == "" {
		return listing.Target{}, ErrMissingKey
	}

	v := b.reconciler.Fetch(ctx)
	if v.State == listing.StateError {
		return listing.Target{}, fmt.Errorf("%w: %w", ErrListingFailed, v.Err)
	}

	target, ok := v.Find(key)
	if !ok {
		return listing.Target{}, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return target, nil
}
