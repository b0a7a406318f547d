package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualClock_Frozen(t *testing.T) {
	start := time.UnixMilli(1_000_000)
	c := NewManualClock(start)

	assert.Equal(t, start, c.Now())
	assert.Equal(t, start, c.Now(), "time should not move on its own")
}

func TestManualClock_Advance(t *testing.T) {
	start := time.UnixMilli(1_000_000)
	c := NewManualClock(start)

	c.Advance(250 * time.Millisecond)
	assert.Equal(t, int64(1_000_250), c.Now().UnixMilli())

	c.Advance(time.Second)
	assert.Equal(t, int64(1_001_250), c.Now().UnixMilli())
}

func TestManualClock_Set(t *testing.T) {
	c := NewManualClock(time.UnixMilli(0))

	target := time.UnixMilli(42_000)
	c.Set(target)
	assert.Equal(t, target, c.Now())
}

func TestManualClock_ConcurrentAdvance(t *testing.T) {
	c := NewManualClock(time.UnixMilli(0))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Advance(time.Millisecond)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), c.Now().UnixMilli())
}
