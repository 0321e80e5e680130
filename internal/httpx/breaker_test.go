package httpx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardStaysClosedBelowThreshold(t *testing.T) {
	g := NewGuard("test", 3, time.Minute)

	g.Record(false)
	g.Record(false)
	assert.NoError(t, g.Allow())
	assert.False(t, g.Open())
}

func TestGuardTripsAfterConsecutiveFailures(t *testing.T) {
	g := NewGuard("test", 3, time.Minute)

	for i := 0; i < 3; i++ {
		require.NoError(t, g.Allow())
		g.Record(false)
	}

	assert.True(t, g.Open())
	assert.ErrorIs(t, g.Allow(), ErrUpstreamSuspended)
}

func TestGuardSuccessResetsFailureRun(t *testing.T) {
	g := NewGuard("test", 3, time.Minute)

	g.Record(false)
	g.Record(false)
	g.Record(true)
	g.Record(false)
	g.Record(false)

	// Two failures after the reset: still closed.
	assert.NoError(t, g.Allow())
	assert.False(t, g.Open())
}

func TestGuardSingleProbeAfterCooldown(t *testing.T) {
	g := NewGuard("test", 1, 10*time.Millisecond)

	require.NoError(t, g.Allow())
	g.Record(false)
	assert.ErrorIs(t, g.Allow(), ErrUpstreamSuspended)

	time.Sleep(20 * time.Millisecond)

	// One probe admitted, a second concurrent request is still rejected.
	require.NoError(t, g.Allow())
	assert.ErrorIs(t, g.Allow(), ErrUpstreamSuspended)

	g.Record(true)
	assert.NoError(t, g.Allow())
	assert.False(t, g.Open())
}

func TestGuardFailedProbeReopens(t *testing.T) {
	g := NewGuard("test", 1, 10*time.Millisecond)

	require.NoError(t, g.Allow())
	g.Record(false)

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, g.Allow())
	g.Record(false)

	assert.True(t, g.Open())
	assert.ErrorIs(t, g.Allow(), ErrUpstreamSuspended)
}

func TestGuardDefaults(t *testing.T) {
	g := NewGuard("test", 0, 0)
	assert.Equal(t, "test", g.Name())

	for i := 0; i < 4; i++ {
		g.Record(false)
	}
	assert.NoError(t, g.Allow())
	g.Record(false)
	assert.True(t, g.Open())
}
