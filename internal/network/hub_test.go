package network

import (
	"os"
	"sync"
	"testing"

	"github.com/Frostlock/Warrens-II/pkg/api"
	"github.com/Frostlock/Warrens-II/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	logger.Silence()

	os.Exit(m.Run())
}

func TestBroadcaster_RegisterGetsLatest(t *testing.T) {
	b := NewBroadcaster()

	early := b.Register("early")
	assert.Empty(t, early, "nothing published yet")

	snap := &api.Snapshot{Tick: 1}
	b.Publish(snap)
	assert.Same(t, snap, <-early)

	late := b.Register("late")
	require.Len(t, late, 1)
	assert.Same(t, snap, <-late, "late subscriber starts from the latest snapshot")
	assert.Same(t, snap, b.Latest())
}

func TestBroadcaster_Reregister(t *testing.T) {
	b := NewBroadcaster()
	first := b.Register("bot")
	second := b.Register("bot")

	_, ok := <-first
	assert.False(t, ok, "old channel is closed")
	assert.Equal(t, 1, b.SubscriberCount())

	b.Unregister("bot")
	_, ok = <-second
	assert.False(t, ok)
	assert.False(t, b.HasSubscriber("bot"))

	// Повторный Unregister ничего не ломает
	b.Unregister("bot")
}

func TestBroadcaster_SlowSubscriberDropsSnapshots(t *testing.T) {
	b := NewBroadcaster()
	slow := b.Register("slow")

	for i := 0; i < 100; i++ {
		b.Publish(&api.Snapshot{Tick: int64(i)})
	}

	assert.Equal(t, cap(slow), len(slow))
	assert.Equal(t, int64(0), (<-slow).Tick, "oldest buffered snapshot first")
	assert.Equal(t, int64(99), b.Latest().Tick)
}

func TestBroadcaster_ConcurrentPublish(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("reader")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b.Publish(&api.Snapshot{Tick: int64(i)})
		}(i)
	}
	wg.Wait()

	assert.Len(t, ch, 8)
	assert.NotNil(t, b.Latest())
}
