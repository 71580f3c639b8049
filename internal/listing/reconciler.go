// Package listing fetches the remote inventory and projects it into a grouped view.
package listing

import (
	"context"
	"sync"

	"fileshare/internal/logging"
	"fileshare/internal/notify"
	"fileshare/internal/remote"
	"fileshare/pkg/types"
)

// Lister retrieves the remote inventory
type Lister interface {
	ListFiles(ctx context.Context) ([]types.RemoteEntry, error)
}

// Reconciler owns the current listing view
type Reconciler struct {
	lister   Lister
	links    remote.Links
	notifier notify.Sink
	logger   *logging.Logger

	mu       sync.Mutex
	view     View
	onChange func(View)
}

// NewReconciler creates a reconciler. Notifier may be nil.
func NewReconciler(lister Lister, links remote.Links, notifier notify.Sink, logger *logging.Logger) *Reconciler {
	return &Reconciler{
		lister:   lister,
		links:    links,
		notifier: notifier,
		logger:   logger,
		view:     View{State: StateLoading},
	}
}

// OnChange registers fn to be called with every new view, the Loading one included
func (r *Reconciler) OnChange(fn func(View)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = fn
}

// View returns the current view
func (r *Reconciler) View() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view
}

// Fetch clears the view, retrieves the inventory and rebuilds the view from scratch
func (r *Reconciler) Fetch(ctx context.Context) View {
	r.set(View{State: StateLoading})

	entries, err := r.lister.ListFiles(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to load files")
		if r.notifier != nil {
			notify.Error(r.notifier, ErrorMessage)
		}
		return r.set(View{State: StateError, Err: err})
	}

	view := Build(entries, r.links)
	r.logger.Debug().
		Str("state", view.State.String()).
		Int("groups", len(view.Groups)).
		Int("files", len(view.Files)).
		Msg("Listing refreshed")
	return r.set(view)
}

func (r *Reconciler) set(v View) View {
	r.mu.Lock()
	r.view = v
	fn := r.onChange
	r.mu.Unlock()

	if fn != nil {
		fn(v)
	}
	return v
}
