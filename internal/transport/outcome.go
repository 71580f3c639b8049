package transport

// OutcomeKind classifies how a transfer ended
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeServerRejected
	OutcomeNetworkFailure
	OutcomeLocalReadFailure
)

// NetworkErrorMessage is the item message when no response arrived
const NetworkErrorMessage = "Network error"

// String returns the string representation of the outcome kind
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeServerRejected:
		return "server_rejected"
	case OutcomeNetworkFailure:
		return "network_failure"
	case OutcomeLocalReadFailure:
		return "local_read_failure"
	default:
		return "unknown"
	}
}

// Outcome is the single terminal result of one transfer
type Outcome struct {
	Kind OutcomeKind
	// Message is shown on the failed item
	Message string
	// Err is the underlying cause, nil on success
	Err error
}

// Failed reports whether the transfer did not succeed
func (o Outcome) Failed() bool {
	return o.Kind != OutcomeSuccess
}

func success() Outcome {
	return Outcome{Kind: OutcomeSuccess}
}
