package connectivity

import (
	"github.com/the-lightning-land/netwatchd/netman"
)

// Transport provides the bus primitives the watcher needs. It is
// satisfied by netman.NetMan and can be faked in tests.
type Transport interface {
	// QueryState synchronously reads the network manager's current state.
	QueryState() (netman.State, error)

	// SubscribeStateChanged invokes handler once per state change until
	// the returned cancel func is called. Delivery happens from the
	// transport's own goroutine.
	SubscribeStateChanged(handler func(netman.State)) (func(), error)
}
