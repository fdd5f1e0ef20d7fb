package engine

import "github.com/Frostlock/Warrens-II/internal/domain"

// slot - место корневого уровня в расписании.
type slot struct {
	level *domain.Level
	due   int64 // мс симуляции
	pos   int   // индекс в куче, -1 после извлечения
}

// slotHeap - min-куча по due, при равенстве раньше меньший ID уровня.
type slotHeap []*slot

func (h slotHeap) Len() int { return len(h) }

func (h slotHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.due == b.due {
		return a.level.ID < b.level.ID
	}
	return a.due < b.due
}

func (h slotHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].pos, h[j].pos = i, j
}

func (h *slotHeap) Push(x any) {
	s := x.(*slot)
	s.pos = len(*h)
	*h = append(*h, s)
}

func (h *slotHeap) Pop() any {
	n := len(*h) - 1
	s := (*h)[n]
	(*h)[n] = nil
	*h = (*h)[:n]
	s.pos = -1
	return s
}
