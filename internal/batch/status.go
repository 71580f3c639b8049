package batch

// Status represents the lifecycle of one transfer item
type Status int

const (
	StatusPending Status = iota
	StatusUploading
	StatusSuccess
	StatusFailed
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusUploading:
		return "Uploading"
	case StatusSuccess:
		return "Success"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// IsTerminal reports whether the status can no longer change
func (s Status) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// CanTransitionTo reports whether next is a legal successor of s
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusUploading
	case StatusUploading:
		return next == StatusSuccess || next == StatusFailed
	default:
		return false
	}
}

// Phase represents the lifecycle of a whole batch
type Phase int

const (
	// PhaseRunning means items are still being handed out
	PhaseRunning Phase = iota
	// PhaseFinalizing means every item finished and the settle delay is running
	PhaseFinalizing
	// PhaseHalted means a failure stopped the batch under the halt policy
	PhaseHalted
	// PhaseClosed means the batch is done and will not change again
	PhaseClosed
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseFinalizing:
		return "finalizing"
	case PhaseHalted:
		return "halted"
	case PhaseClosed:
		return "closed"
	default:
		return "unknown"
	}
}
