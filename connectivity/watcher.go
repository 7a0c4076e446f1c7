package connectivity

import (
	"sync"

	"github.com/the-lightning-land/netwatchd/netman"
)

// check NetManWatcher compliance to its interface during compile time
var _ Watcher = (*NetManWatcher)(nil)

type Config struct {
	Transport Transport
	Logger    Logger
}

// NetManWatcher reduces the network manager's fine-grained state to a
// connected/disconnected signal and notifies listeners on changes.
// The underlying subscription only exists while listeners are
// registered.
type NetManWatcher struct {
	mtx       sync.Mutex
	transport Transport
	log       Logger
	last      State
	cancelSub func()
	listeners []*Registration
	nextId    uint32
}

// Registration identifies a registered listener so it can be removed
// later. Registering the same func twice yields two registrations.
type Registration struct {
	Id       uint32
	listener Listener
	watcher  *NetManWatcher
}

// Cancel removes the listener from its watcher.
func (r *Registration) Cancel() {
	r.watcher.RemoveListener(r)
}

func New(config *Config) *NetManWatcher {
	watcher := &NetManWatcher{
		transport: config.Transport,
	}

	if config.Logger != nil {
		watcher.log = config.Logger
	} else {
		watcher.log = noopLogger{}
	}

	return watcher
}

// IsConnected queries the current state. It reports false when the
// network manager is unreachable.
func (w *NetManWatcher) IsConnected() bool {
	w.mtx.Lock()
	defer w.mtx.Unlock()

	return w.query() == StateConnected
}

// query must be called with mtx held.
func (w *NetManWatcher) query() State {
	raw, err := w.transport.QueryState()
	if err != nil {
		w.log.Debugf("Could not query state, assuming disconnected: %v", err)
		return StateDisconnected
	}

	return coarse(raw)
}

// coarse collapses the fine-grained state. Only global connectivity
// counts as connected.
func coarse(raw netman.State) State {
	if raw == netman.StateConnectedGlobal {
		return StateConnected
	}

	return StateDisconnected
}

// AddListener registers listener and synchronously calls it once with
// the current state. The first listener establishes the underlying
// state change subscription.
func (w *NetManWatcher) AddListener(listener Listener) *Registration {
	w.mtx.Lock()

	if len(w.listeners) == 0 {
		w.last = w.query()

		cancel, err := w.transport.SubscribeStateChanged(w.onStateChanged)
		if err != nil {
			w.log.Errorf("Could not subscribe to state changes: %v", err)
		} else {
			w.cancelSub = cancel
		}
	}

	registration := &Registration{
		Id:       w.nextId,
		listener: listener,
		watcher:  w,
	}
	w.nextId++

	w.listeners = append(w.listeners, registration)

	state := w.last

	w.mtx.Unlock()

	// invoked outside the lock so the listener may call back into the watcher
	listener(state == StateConnected)

	return registration
}

// RemoveListener removes a previously added listener. The last removal
// tears down the underlying subscription. Removing a registration
// twice, or one that was never added, does nothing.
func (w *NetManWatcher) RemoveListener(registration *Registration) {
	if registration == nil {
		return
	}

	w.mtx.Lock()

	for i, r := range w.listeners {
		if r == registration {
			w.listeners = append(w.listeners[:i], w.listeners[i+1:]...)
			break
		}
	}

	var cancel func()

	if len(w.listeners) == 0 && w.cancelSub != nil {
		cancel = w.cancelSub
		w.cancelSub = nil
	}

	w.mtx.Unlock()

	if cancel != nil {
		cancel()
	}
}

// onStateChanged receives every raw state change and notifies the
// listeners in registration order whenever the coarse state actually
// changed. Intermediate hops like connecting or site-level
// connectivity all collapse to disconnected and are suppressed.
func (w *NetManWatcher) onStateChanged(raw netman.State) {
	w.mtx.Lock()

	next := coarse(raw)
	if next == w.last {
		w.mtx.Unlock()
		return
	}

	w.log.Debugf("Connectivity changed from %v to %v (%v)", w.last, next, raw)

	w.last = next

	registrations := make([]*Registration, len(w.listeners))
	copy(registrations, w.listeners)

	w.mtx.Unlock()

	for _, registration := range registrations {
		registration.listener(next == StateConnected)
	}
}
