package domain

import (
	"github.com/Frostlock/Warrens-II/internal/core/types"
	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
)

// Level владеет картой, вложенными уровнями и активными эффектами.
// Списки акторов не владеющие: акторы живут в Registry.
type Level struct {
	ID         types.LevelID `json:"id"`
	Name       string        `json:"name"`
	Difficulty int           `json:"difficulty"`
	Map        *Map          `json:"-"`

	Portals    []types.ActorID `json:"portals"`
	Characters []types.ActorID `json:"characters"`
	Items      []types.ActorID `json:"items"`

	SubLevels []*Level `json:"-"`
	Parent    *Level   `json:"-"`

	ActiveEffects []*Effect `json:"activeEffects"`
}

func NewLevel(name string, difficulty int, m *Map) *Level {
	return &Level{
		ID:         types.NoLevel,
		Name:       name,
		Difficulty: difficulty,
		Map:        m,
	}
}

func (l *Level) Archetype() enums.Archetype {
	return l.Map.Archetype
}

// AddSubLevel делает child вложенным уровнем (например, интерьер дома).
func (l *Level) AddSubLevel(child *Level) {
	child.Parent = l
	l.SubLevels = append(l.SubLevels, child)
}

// Walk обходит уровень и все вложенные уровни, родитель раньше детей.
func (l *Level) Walk(fn func(*Level)) {
	fn(l)
	for _, sub := range l.SubLevels {
		sub.Walk(fn)
	}
}

// AddEffect регистрирует эффект один раз.
func (l *Level) AddEffect(e *Effect) {
	for _, existing := range l.ActiveEffects {
		if existing == e {
			return
		}
	}
	l.ActiveEffects = append(l.ActiveEffects, e)
}

// RemoveEffect возвращает false, если эффекта на уровне не было.
func (l *Level) RemoveEffect(e *Effect) bool {
	for i, existing := range l.ActiveEffects {
		if existing == e {
			l.ActiveEffects = append(l.ActiveEffects[:i], l.ActiveEffects[i+1:]...)
			return true
		}
	}
	return false
}

func (l *Level) listFor(kind enums.ActorKind) *[]types.ActorID {
	switch kind {
	case enums.ActorKindPortal:
		return &l.Portals
	case enums.ActorKindPlayer, enums.ActorKindMonster, enums.ActorKindNPC:
		return &l.Characters
	default:
		return &l.Items
	}
}

func (l *Level) track(kind enums.ActorKind, id types.ActorID) {
	list := l.listFor(kind)
	for _, existing := range *list {
		if existing == id {
			return
		}
	}
	*list = append(*list, id)
}

func (l *Level) untrack(kind enums.ActorKind, id types.ActorID) {
	list := l.listFor(kind)
	for i, existing := range *list {
		if existing == id {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return
		}
	}
}
