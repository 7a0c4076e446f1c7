package netman

import (
	"github.com/go-errors/errors"
	"github.com/godbus/dbus/v5"
)

const (
	serviceName   = "org.freedesktop.NetworkManager"
	objectPath    = dbus.ObjectPath("/org/freedesktop/NetworkManager")
	interfaceName = "org.freedesktop.NetworkManager"

	stateProperty      = interfaceName + ".State"
	stateChangedMember = "StateChanged"
	stateChangedSignal = interfaceName + "." + stateChangedMember
)

// NetMan talks to the NetworkManager daemon on the system bus.
type NetMan struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

func New() *NetMan {
	return &NetMan{}
}

func (n *NetMan) Start() error {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return errors.Errorf("could not connect to system bus: %v", err)
	}

	n.conn = conn
	n.obj = conn.Object(serviceName, objectPath)

	return nil
}

func (n *NetMan) Stop() error {
	if n.conn == nil {
		return nil
	}

	err := n.conn.Close()
	n.conn = nil
	if err != nil {
		return errors.Errorf("could not close bus connection: %v", err)
	}

	return nil
}

// QueryState reads the current overall state property. It fails when
// no NetworkManager daemon is running on the bus.
func (n *NetMan) QueryState() (State, error) {
	v, err := n.obj.GetProperty(stateProperty)
	if err != nil {
		return StateUnknown, errors.Errorf("could not get state: %v", err)
	}

	raw, ok := v.Value().(uint32)
	if !ok {
		return StateUnknown, errors.Errorf("could not convert state %v", v.Value())
	}

	return State(raw), nil
}

// SubscribeStateChanged invokes handler with every StateChanged signal
// until the returned cancel func is called.
func (n *NetMan) SubscribeStateChanged(handler func(State)) (func(), error) {
	signalChan := make(chan *dbus.Signal, 16)

	call := n.conn.BusObject().AddMatchSignal(interfaceName, stateChangedMember,
		dbus.WithMatchObjectPath(objectPath))
	if call.Err != nil {
		return nil, errors.Errorf("could not add signal match: %v", call.Err)
	}

	n.conn.Signal(signalChan)

	go func() {
		for signal := range signalChan {
			if signal.Name != stateChangedSignal || signal.Path != objectPath {
				continue
			}

			if len(signal.Body) < 1 {
				continue
			}

			raw, ok := signal.Body[0].(uint32)
			if !ok {
				continue
			}

			handler(State(raw))
		}
	}()

	cancel := func() {
		n.conn.RemoveSignal(signalChan)

		_ = n.conn.BusObject().RemoveMatchSignal(interfaceName, stateChangedMember,
			dbus.WithMatchObjectPath(objectPath))

		close(signalChan)
	}

	return cancel, nil
}
