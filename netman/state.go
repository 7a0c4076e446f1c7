package netman

// State is the overall networking state as reported by the
// NetworkManager daemon. The numeric values are part of its D-Bus API
// and must match exactly.
type State uint32

const (
	StateUnknown State = iota * 10
	StateAsleep
	StateDisconnected
	StateDisconnecting
	StateConnecting
	StateConnectedLocal
	StateConnectedSite
	StateConnectedGlobal
)

var stateNames = map[State]string{
	StateUnknown:         "unknown",
	StateAsleep:          "asleep",
	StateDisconnected:    "disconnected",
	StateDisconnecting:   "disconnecting",
	StateConnecting:      "connecting",
	StateConnectedLocal:  "connected (local)",
	StateConnectedSite:   "connected (site)",
	StateConnectedGlobal: "connected (global)",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}

	return stateNames[StateUnknown]
}
