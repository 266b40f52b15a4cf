package session

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaperSweepRemovesExpired(t *testing.T) {
	clock := newFakeClock()
	store := NewStore(WithClock(clock.Now))

	sess, err := store.Create(testParams(), nil)
	require.NoError(t, err)

	reaper := NewReaper(store.SweepExpired, time.Minute)

	// Not expired yet: sweep is a no-op.
	reaper.Sweep()
	assert.Equal(t, 1, store.Len())

	clock.Advance(DefaultTTL + time.Second)
	reaper.Sweep()
	assert.Equal(t, 0, store.Len())

	_, err = store.Get(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReaperRunStops(t *testing.T) {
	var sweeps int32
	reaper := NewReaper(func() []string {
		atomic.AddInt32(&sweeps, 1)
		return nil
	}, 5*time.Millisecond)

	done := make(chan struct{})
	go func() {
		reaper.Run()
		close(done)
	}()

	// Let a few ticks fire, then stop and make sure Run returns.
	time.Sleep(30 * time.Millisecond)
	reaper.Stop()
	reaper.Stop() // idempotent

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reaper did not stop")
	}
	assert.Greater(t, atomic.LoadInt32(&sweeps), int32(0))
}
