package connectivity

// State is the coarse connectivity state surfaced to consumers.
type State int

const (
	// StateUnknown is the zero value before any state was observed.
	// It is never delivered to listeners.
	StateUnknown State = iota
	StateDisconnected
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateConnected:
		return "CONNECTED"
	default:
		return "UNKNOWN"
	}
}

// Listener is called with the new coarse state on every transition,
// plus once synchronously at registration time.
type Listener func(connected bool)

type Watcher interface {
	IsConnected() bool
	AddListener(listener Listener) *Registration
	RemoveListener(registration *Registration)
}
