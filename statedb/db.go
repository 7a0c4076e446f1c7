package statedb

import (
	"os"
	"path"
	"time"

	"github.com/go-errors/errors"
	"go.etcd.io/bbolt"
)

const dbName = "netwatch.db"

// DB persistently stores observed connectivity transitions.
type DB struct {
	*bbolt.DB
}

// Open creates dataDir if needed and opens the database in it.
func Open(dataDir string) (*DB, error) {
	err := os.MkdirAll(dataDir, 0700)
	if err != nil {
		return nil, errors.Errorf("could not create data dir: %v", err)
	}

	db, err := bbolt.Open(path.Join(dataDir, dbName), 0600, &bbolt.Options{
		Timeout: time.Second,
	})
	if err != nil {
		return nil, errors.Errorf("could not open database: %v", err)
	}

	return &DB{DB: db}, nil
}
