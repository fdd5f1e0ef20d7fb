package engine

import (
	"container/heap"
	"testing"

	"github.com/Frostlock/Warrens-II/internal/core/types"
	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
	"github.com/Frostlock/Warrens-II/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queueLevel(id types.LevelID, name string) *domain.Level {
	l := domain.NewLevel(name, 1, domain.NewMap(3, 3, enums.ArchetypeDungeon))
	l.ID = id
	return l
}

func TestSlotHeap_Order(t *testing.T) {
	var h slotHeap
	heap.Push(&h, &slot{level: queueLevel(3, "town"), due: 30})
	heap.Push(&h, &slot{level: queueLevel(4, "d"), due: 10})
	heap.Push(&h, &slot{level: queueLevel(1, "a"), due: 10})
	heap.Push(&h, &slot{level: queueLevel(2, "dungeon"), due: 20})

	var order []string
	for h.Len() > 0 {
		s := heap.Pop(&h).(*slot)
		assert.Equal(t, -1, s.pos)
		order = append(order, s.level.Name)
	}
	assert.Equal(t, []string{"a", "d", "dungeon", "town"}, order)
}

func TestTurnManager(t *testing.T) {
	tm := NewTurnManager()
	town := queueLevel(0, "town")
	cave := queueLevel(1, "cave")

	tm.AddLevel(town, 250)
	tm.AddLevel(cave, 100)
	tm.AddLevel(cave, 300) // второй раз только переносит время
	require.Equal(t, 2, tm.Len())

	lvl, due, ok := tm.Next()
	require.True(t, ok)
	assert.Same(t, town, lvl)
	assert.Equal(t, int64(250), due)

	tm.Reschedule(town.ID, 500)
	tm.Reschedule(types.LevelID(99), 1) // неизвестный уровень игнорируется
	lvl, _, _ = tm.Next()
	assert.Same(t, cave, lvl)
	assert.Equal(t, []ScheduleEntry{
		{ID: 1, Level: "cave", DueMs: 300},
		{ID: 0, Level: "town", DueMs: 500},
	}, tm.Entries())

	tm.RemoveLevel(cave.ID)
	tm.RemoveLevel(cave.ID)
	assert.Equal(t, 1, tm.Len())

	tm.RemoveLevel(town.ID)
	_, _, ok = tm.Next()
	assert.False(t, ok)
	assert.NotNil(t, tm.Entries())
	assert.Empty(t, tm.Entries())
}
