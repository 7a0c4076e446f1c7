package statedb

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/go-errors/errors"
	"go.etcd.io/bbolt"
)

var transitionsBucket = []byte("transitions")

// Transition is a single connectivity change as observed by the watcher.
type Transition struct {
	Connected bool      `json:"connected"`
	Time      time.Time `json:"time"`
}

// RecordTransition appends a transition to the history.
func (db *DB) RecordTransition(transition *Transition) error {
	payload, err := json.Marshal(transition)
	if err != nil {
		return errors.Errorf("could not marshal transition: %v", err)
	}

	return db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(transitionsBucket)
		if err != nil {
			return err
		}

		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}

		var key [8]byte
		binary.BigEndian.PutUint64(key[:], seq)

		return bucket.Put(key[:], payload)
	})
}

// GetRecentTransitions returns up to limit transitions, newest first.
func (db *DB) GetRecentTransitions(limit int) ([]*Transition, error) {
	var transitions []*Transition

	err := db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(transitionsBucket)
		if bucket == nil {
			return nil
		}

		cursor := bucket.Cursor()

		for k, v := cursor.Last(); k != nil && len(transitions) < limit; k, v = cursor.Prev() {
			transition := &Transition{}

			err := json.Unmarshal(v, transition)
			if err != nil {
				return errors.Errorf("could not unmarshal transition: %v", err)
			}

			transitions = append(transitions, transition)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return transitions, nil
}
