package api

import (
	"net"
	"net/http"
	"sync"

	"github.com/go-errors/errors"
	"github.com/gorilla/mux"

	"github.com/the-lightning-land/netwatchd/connectivity"
	"github.com/the-lightning-land/netwatchd/statedb"
)

type Config struct {
	DB  *statedb.DB
	Log Logger
}

type Api struct {
	watcher   connectivity.Watcher
	db        *statedb.DB
	router    *mux.Router
	log       Logger
	clientMtx sync.Mutex
	clients   []*client
}

func New(config *Config) *Api {
	api := &Api{
		router: mux.NewRouter(),
		db:     config.DB,
	}

	if config.Log != nil {
		api.log = config.Log
	} else {
		api.log = noopLogger{}
	}

	api.router.Handle("/api/v1/connectivity", api.handleGetConnectivity()).Methods(http.MethodGet)
	api.router.Handle("/api/v1/connectivity/history", api.handleGetHistory()).Methods(http.MethodGet)
	api.router.Handle("/api/v1/connectivity/events", api.handleStreamEvents()).Methods(http.MethodGet)

	return api
}

func (a *Api) SetWatcher(watcher connectivity.Watcher) {
	a.watcher = watcher
}

func (a *Api) Serve(l net.Listener) error {
	err := http.Serve(l, a.router)
	if err != nil {
		return errors.Errorf("Unable to serve api: %v", err)
	}

	return nil
}
