package api

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/the-lightning-land/netwatchd/statedb"
)

type client struct {
	conn *websocket.Conn
}

func (a *Api) handleStreamEvents() http.HandlerFunc {
	upgrader := &websocket.Upgrader{}

	return func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			a.log.Errorf("Could not upgrade connection: %v", err)
			return
		}

		client := &client{conn: c}

		a.clientMtx.Lock()
		a.clients = append(a.clients, client)
		a.clientMtx.Unlock()
	}
}

// PublishTransition pushes a transition to all connected stream
// clients. Clients that can no longer be written to are dropped.
func (a *Api) PublishTransition(transition *statedb.Transition) {
	a.clientMtx.Lock()
	clients := make([]*client, len(a.clients))
	copy(clients, a.clients)
	a.clientMtx.Unlock()

	for _, client := range clients {
		err := client.conn.WriteJSON(transition)
		if err != nil {
			a.log.Debugf("Dropping stream client: %v", err)
			a.removeClient(client)
		}
	}
}

func (a *Api) removeClient(client *client) {
	a.clientMtx.Lock()

	for i, c := range a.clients {
		if c == client {
			a.clients = append(a.clients[:i], a.clients[i+1:]...)
			break
		}
	}

	a.clientMtx.Unlock()

	_ = client.conn.Close()
}
