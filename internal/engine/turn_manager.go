package engine

import (
	"container/heap"
	"sort"

	"github.com/Frostlock/Warrens-II/internal/core/types"
	"github.com/Frostlock/Warrens-II/internal/domain"
	"github.com/Frostlock/Warrens-II/pkg/logger"
)

// ScheduleEntry - строка расписания для /debug/queue.
type ScheduleEntry struct {
	ID    types.LevelID `json:"id"`
	Level string        `json:"level"`
	DueMs int64         `json:"dueMs"`
}

// TurnManager - планировщик шагов реального времени по корневым уровням.
// Вложенные уровни не планируются отдельно: шаг корня проходит по ним сам.
type TurnManager struct {
	slots slotHeap
	byID  map[types.LevelID]*slot
}

func NewTurnManager() *TurnManager {
	return &TurnManager{byID: make(map[types.LevelID]*slot)}
}

// AddLevel ставит уровень в расписание на момент dueMs.
// Если уровень уже там, меняется только время.
func (tm *TurnManager) AddLevel(l *domain.Level, dueMs int64) {
	if _, ok := tm.byID[l.ID]; ok {
		tm.Reschedule(l.ID, dueMs)
		return
	}
	s := &slot{level: l, due: dueMs}
	heap.Push(&tm.slots, s)
	tm.byID[l.ID] = s

	logger.For("scheduler").WithField("level", l.Name).Debug("Level scheduled")
}

func (tm *TurnManager) Reschedule(id types.LevelID, dueMs int64) {
	s, ok := tm.byID[id]
	if !ok {
		return
	}
	s.due = dueMs
	heap.Fix(&tm.slots, s.pos)
}

// Next - ближайший по времени уровень. Из расписания он не убирается.
func (tm *TurnManager) Next() (*domain.Level, int64, bool) {
	if len(tm.slots) == 0 {
		return nil, 0, false
	}
	return tm.slots[0].level, tm.slots[0].due, true
}

func (tm *TurnManager) RemoveLevel(id types.LevelID) {
	if s, ok := tm.byID[id]; ok {
		heap.Remove(&tm.slots, s.pos)
		delete(tm.byID, id)
	}
}

func (tm *TurnManager) Len() int { return len(tm.slots) }

// Entries - расписание в порядке исполнения. Никогда не nil.
func (tm *TurnManager) Entries() []ScheduleEntry {
	out := make([]ScheduleEntry, 0, len(tm.slots))
	for _, s := range tm.slots {
		out = append(out, ScheduleEntry{ID: s.level.ID, Level: s.level.Name, DueMs: s.due})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DueMs == out[j].DueMs {
			return out[i].ID < out[j].ID
		}
		return out[i].DueMs < out[j].DueMs
	})
	return out
}
