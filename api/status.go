package api

import (
	"net/http"
	"strconv"

	"github.com/the-lightning-land/netwatchd/statedb"
)

type getConnectivityResponse struct {
	Connected bool `json:"connected"`
}

func (a *Api) handleGetConnectivity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := &getConnectivityResponse{
			Connected: a.watcher.IsConnected(),
		}

		a.jsonResponse(w, res, http.StatusOK)
	}
}

func (a *Api) handleGetHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 20

		if v := r.URL.Query().Get("limit"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil || parsed < 1 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}

			limit = parsed
		}

		transitions, err := a.db.GetRecentTransitions(limit)
		if err != nil {
			a.log.Errorf("Could not read transitions: %v", err)
			http.Error(w, "could not read transitions", http.StatusInternalServerError)
			return
		}

		if transitions == nil {
			transitions = []*statedb.Transition{}
		}

		a.jsonResponse(w, transitions, http.StatusOK)
	}
}
