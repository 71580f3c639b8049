package coordinator

import (
	"fileshare/internal/batch"
	"fileshare/internal/selection"
	"fileshare/internal/transport"
	"fileshare/pkg/types"
)

// event is anything the loop reacts to
type event interface{}

// startEvent replaces the active batch with a new selection
type startEvent struct {
	selection *selection.Selection
	reply     chan Handle
}

// progressEvent carries byte progress from a transfer goroutine
type progressEvent struct {
	generation string
	itemID     string
	update     types.ProgressUpdate
}

// outcomeEvent carries the terminal result of a transfer goroutine
type outcomeEvent struct {
	generation string
	itemID     string
	outcome    transport.Outcome
}

type timerKind int

const (
	timerAdvance timerKind = iota
	timerClose
)

// timerEvent fires after a scheduled delay
type timerEvent struct {
	generation string
	kind       timerKind
}

// Handle identifies a started batch. Done receives the batch's last snapshot once it is
// closed or superseded, then is closed.
type Handle struct {
	Generation string
	Done       <-chan batch.Snapshot
}
