package guard

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_AcquireRelease(t *testing.T) {
	g := New()

	require.True(t, g.TryAcquire())
	assert.True(t, g.Busy())
	assert.False(t, g.TryAcquire(), "second acquire must fail while held")

	g.Release()
	assert.False(t, g.Busy())
	assert.True(t, g.TryAcquire(), "acquire after release must succeed")
	g.Release()

	stats := g.Stats()
	assert.Equal(t, int64(2), stats.Acquired)
	assert.Equal(t, int64(1), stats.Rejected)
	assert.False(t, stats.Busy)
}

func TestGuard_ConcurrentTryAcquire_ExactlyOneWins(t *testing.T) {
	for round := 0; round < 50; round++ {
		g := New()
		const callers = 16

		var wins atomic.Int32
		var start sync.WaitGroup
		var done sync.WaitGroup
		start.Add(1)
		for i := 0; i < callers; i++ {
			done.Add(1)
			go func() {
				defer done.Done()
				start.Wait()
				if g.TryAcquire() {
					wins.Add(1)
				}
			}()
		}
		start.Done()
		done.Wait()

		require.Equal(t, int32(1), wins.Load(), "round %d", round)
		assert.Equal(t, int64(callers-1), g.Stats().Rejected)
	}
}

func TestGuard_ReleaseUnheldIsNoop(t *testing.T) {
	var g Guard
	g.Release()
	assert.False(t, g.Busy())
	assert.True(t, g.TryAcquire())
}
