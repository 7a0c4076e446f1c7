package connectivity

import (
	"sync"

	"github.com/the-lightning-land/netwatchd/netman"
)

// check MockTransport compliance to its interface during compile time
var _ Transport = (*MockTransport)(nil)

// MockTransport is a transport that is driven manually instead of by a
// real network manager. It backs the daemon's mock mode and can be
// used in tests of embedding applications.
type MockTransport struct {
	mtx      sync.Mutex
	state    netman.State
	handlers map[uint32]func(netman.State)
	nextId   uint32
}

func NewMockTransport(state netman.State) *MockTransport {
	return &MockTransport{
		state:    state,
		handlers: make(map[uint32]func(netman.State)),
	}
}

func (t *MockTransport) QueryState() (netman.State, error) {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	return t.state, nil
}

func (t *MockTransport) SubscribeStateChanged(handler func(netman.State)) (func(), error) {
	t.mtx.Lock()
	id := t.nextId
	t.nextId++
	t.handlers[id] = handler
	t.mtx.Unlock()

	return func() {
		t.mtx.Lock()
		delete(t.handlers, id)
		t.mtx.Unlock()
	}, nil
}

// SetState changes the reported state and delivers it to all
// subscribed handlers.
func (t *MockTransport) SetState(state netman.State) {
	t.mtx.Lock()
	t.state = state

	handlers := make([]func(netman.State), 0, len(t.handlers))
	for _, handler := range t.handlers {
		handlers = append(handlers, handler)
	}
	t.mtx.Unlock()

	for _, handler := range handlers {
		handler(state)
	}
}
