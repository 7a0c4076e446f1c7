package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/the-lightning-land/netwatchd/connectivity"
	"github.com/the-lightning-land/netwatchd/statedb"
)

type fakeWatcher struct {
	connected bool
}

var _ connectivity.Watcher = (*fakeWatcher)(nil)

func (w *fakeWatcher) IsConnected() bool {
	return w.connected
}

func (w *fakeWatcher) AddListener(listener connectivity.Listener) *connectivity.Registration {
	return &connectivity.Registration{}
}

func (w *fakeWatcher) RemoveListener(registration *connectivity.Registration) {}

func newTestApi(t *testing.T, connected bool) *Api {
	t.Helper()

	db, err := statedb.Open(t.TempDir())
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	api := New(&Config{DB: db})
	api.SetWatcher(&fakeWatcher{connected: connected})

	return api
}

func TestGetConnectivity(t *testing.T) {
	api := newTestApi(t, true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/connectivity", nil)
	rec := httptest.NewRecorder()

	api.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	res := &getConnectivityResponse{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(res))
	assert.True(t, res.Connected)
}

func TestGetHistory(t *testing.T) {
	api := newTestApi(t, false)

	for _, connected := range []bool{true, false} {
		err := api.db.RecordTransition(&statedb.Transition{
			Connected: connected,
			Time:      time.Now(),
		})
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/connectivity/history?limit=1", nil)
	rec := httptest.NewRecorder()

	api.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var transitions []*statedb.Transition
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&transitions))

	require.Len(t, transitions, 1)
	assert.False(t, transitions[0].Connected)
}

func TestGetHistoryWithInvalidLimit(t *testing.T) {
	api := newTestApi(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/connectivity/history?limit=nope", nil)
	rec := httptest.NewRecorder()

	api.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStreamEvents(t *testing.T) {
	api := newTestApi(t, false)

	srv := httptest.NewServer(api.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/connectivity/events"

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	defer conn.Close()

	require.Eventually(t, func() bool {
		api.clientMtx.Lock()
		defer api.clientMtx.Unlock()
		return len(api.clients) == 1
	}, time.Second, 10*time.Millisecond)

	api.PublishTransition(&statedb.Transition{
		Connected: true,
		Time:      time.Now(),
	})

	transition := &statedb.Transition{}
	require.NoError(t, conn.ReadJSON(transition))
	assert.True(t, transition.Connected)
}
