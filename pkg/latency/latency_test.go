package latency

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScalesProfile(t *testing.T) {
	sim := New(0.5)

	assert.Equal(t, 150*time.Millisecond, sim.Delay(OpList))
	assert.Equal(t, 200*time.Millisecond, sim.Delay(OpCreate))
}

func TestNoneNeverWaits(t *testing.T) {
	sim := None()
	start := time.Now()

	require.NoError(t, sim.Wait(context.Background(), OpCreate))
	assert.Less(t, time.Since(start), 50*time.Millisecond)

	var nilSim *Simulator
	assert.NoError(t, nilSim.Wait(context.Background(), OpGet))
}

func TestWaitHonoursCancellation(t *testing.T) {
	sim := Fixed(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sim.Wait(ctx, OpUpdate)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestWaitElapses(t *testing.T) {
	sim := Fixed(10 * time.Millisecond)
	start := time.Now()

	require.NoError(t, sim.Wait(context.Background(), OpGet))
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}
