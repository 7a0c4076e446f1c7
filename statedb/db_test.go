package statedb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndGetTransitions(t *testing.T) {
	db, err := Open(t.TempDir())
	require.NoError(t, err)

	defer func() {
		require.NoError(t, db.Close())
	}()

	start := time.Now().Round(0)

	for i, connected := range []bool{true, false, true} {
		err := db.RecordTransition(&Transition{
			Connected: connected,
			Time:      start.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	transitions, err := db.GetRecentTransitions(2)
	require.NoError(t, err)

	require.Len(t, transitions, 2)
	assert.True(t, transitions[0].Connected)
	assert.True(t, transitions[0].Time.After(transitions[1].Time))
	assert.False(t, transitions[1].Connected)
}

func TestGetTransitionsFromEmptyDB(t *testing.T) {
	db, err := Open(t.TempDir())
	require.NoError(t, err)

	defer func() {
		require.NoError(t, db.Close())
	}()

	transitions, err := db.GetRecentTransitions(10)
	require.NoError(t, err)
	assert.Empty(t, transitions)
}
