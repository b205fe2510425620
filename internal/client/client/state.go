package client

// State is the position of one call in the refresh protocol.
type State int

const (
	StateIdle State = iota
	StateAwaitingResponse
	StateRefreshingCredential
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingResponse:
		return "awaiting_response"
	case StateRefreshingCredential:
		return "refreshing_credential"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Transition is reported to a StateObserver each time a call changes state.
type Transition struct {
	Method string
	Path   string
	From   State
	To     State
}

// StateObserver receives call transitions. It is called synchronously and
// must not block.
type StateObserver func(Transition)
