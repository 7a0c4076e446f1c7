package netman

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The numeric values are a wire contract with NetworkManager.
func TestStateValues(t *testing.T) {
	assert.Equal(t, uint32(0), uint32(StateUnknown))
	assert.Equal(t, uint32(10), uint32(StateAsleep))
	assert.Equal(t, uint32(20), uint32(StateDisconnected))
	assert.Equal(t, uint32(30), uint32(StateDisconnecting))
	assert.Equal(t, uint32(40), uint32(StateConnecting))
	assert.Equal(t, uint32(50), uint32(StateConnectedLocal))
	assert.Equal(t, uint32(60), uint32(StateConnectedSite))
	assert.Equal(t, uint32(70), uint32(StateConnectedGlobal))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "connected (global)", StateConnectedGlobal.String())
	assert.Equal(t, "disconnected", StateDisconnected.String())
	assert.Equal(t, "unknown", State(255).String())
}
