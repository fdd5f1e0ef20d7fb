package domain

import (
	"fmt"
	"strconv"

	"github.com/Frostlock/Warrens-II/internal/core/types"
)

type slot struct {
	gen   uint16
	actor *Actor
}

// Registry - арена акторов и уровней.
// Акторы адресуются хэндлом ActorID: индекс слота плюс поколение.
// Тайлы и уровни хранят только хэндлы.
type Registry struct {
	slots  []slot
	free   []uint32
	levels []*Level
	count  int
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Spawn кладёт актора в арену и выдаёт ему хэндл. Актор ещё не на карте.
func (r *Registry) Spawn(a *Actor) types.ActorID {
	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		idx = uint32(len(r.slots))
		r.slots = append(r.slots, slot{})
	}

	s := &r.slots[idx]
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	s.actor = a

	a.ID = types.PackActorID(uint8(a.Kind), s.gen, idx)
	a.Level = types.NoLevel
	r.count++
	return a.ID
}

// Actor возвращает актора по хэндлу или LookupError для устаревшего хэндла.
func (r *Registry) Actor(id types.ActorID) (*Actor, error) {
	if a := r.Get(id); a != nil {
		return a, nil
	}
	return nil, &LookupError{Kind: "actor", Key: id.String()}
}

// Get как Actor, но без ошибки.
func (r *Registry) Get(id types.ActorID) *Actor {
	if id.IsNil() {
		return nil
	}
	idx := id.Index()
	if int(idx) >= len(r.slots) {
		return nil
	}
	s := r.slots[idx]
	if s.actor == nil || s.gen != id.Generation() {
		return nil
	}
	return s.actor
}

// Despawn снимает актора с карты и освобождает слот.
// Старые хэндлы после этого не резолвятся.
func (r *Registry) Despawn(id types.ActorID) {
	a := r.Get(id)
	if a == nil {
		return
	}
	r.Remove(id)
	idx := id.Index()
	r.slots[idx].actor = nil
	r.free = append(r.free, idx)
	r.count--
}

// Count - число живых хэндлов.
func (r *Registry) Count() int {
	return r.count
}

// AddLevel регистрирует уровень и все его вложенные уровни.
func (r *Registry) AddLevel(l *Level) types.LevelID {
	l.Walk(func(lv *Level) {
		if lv.ID != types.NoLevel && int(lv.ID) < len(r.levels) && r.levels[lv.ID] == lv {
			return
		}
		lv.ID = types.LevelID(len(r.levels))
		r.levels = append(r.levels, lv)
	})
	return l.ID
}

func (r *Registry) Level(id types.LevelID) (*Level, error) {
	if id < 0 || int(id) >= len(r.levels) {
		return nil, &LookupError{Kind: "level", Key: strconv.Itoa(int(id))}
	}
	return r.levels[id], nil
}

// LevelOf - уровень, на котором стоит актор, или nil.
func (r *Registry) LevelOf(a *Actor) *Level {
	if a == nil || !a.OnMap() {
		return nil
	}
	l, err := r.Level(a.Level)
	if err != nil {
		return nil
	}
	return l
}

func (r *Registry) Levels() []*Level {
	return r.levels
}

// Place ставит актора на тайл (x, y) уровня lvl.
// Старый тайл и списки старого уровня обновляются в том же вызове.
func (r *Registry) Place(id types.ActorID, lvl *Level, x, y int) error {
	a, err := r.Actor(id)
	if err != nil {
		return err
	}
	target := lvl.Map.Tile(x, y)
	if target == nil {
		return &StateError{Op: "place " + a.Name, Reason: fmt.Sprintf("(%d,%d) is outside %s", x, y, lvl.Name)}
	}

	if old := r.LevelOf(a); old != nil {
		if t := old.Map.Tile(a.Pos.X, a.Pos.Y); t != nil {
			t.removeActor(id)
		}
		if old != lvl {
			old.untrack(a.Kind, id)
		}
	}

	target.addActor(id)
	lvl.track(a.Kind, id)
	a.Level = lvl.ID
	a.Pos = Position{X: x, Y: y}
	a.Owner = types.NilActorID
	return nil
}

// Remove снимает актора с карты (подобран, убран в сундук). Хэндл остаётся живым.
func (r *Registry) Remove(id types.ActorID) {
	a := r.Get(id)
	if a == nil {
		return
	}
	if lvl := r.LevelOf(a); lvl != nil {
		if t := lvl.Map.Tile(a.Pos.X, a.Pos.Y); t != nil {
			t.removeActor(id)
		}
		lvl.untrack(a.Kind, id)
	}
	a.Level = types.NoLevel
}

// TileOf - тайл актора. Для предмета в инвентаре - тайл владельца.
func (r *Registry) TileOf(a *Actor) *Tile {
	if lvl := r.LevelOf(a); lvl != nil {
		return lvl.Map.Tile(a.Pos.X, a.Pos.Y)
	}
	if owner := r.Get(a.Owner); owner != nil && owner != a {
		return r.TileOf(owner)
	}
	return nil
}

// ActorsAt резолвит хэндлы тайла, пропуская устаревшие.
func (r *Registry) ActorsAt(t *Tile) []*Actor {
	out := make([]*Actor, 0, len(t.actors))
	for _, id := range t.actors {
		if a := r.Get(id); a != nil {
			out = append(out, a)
		}
	}
	return out
}

// Resolve превращает список хэндлов в акторов.
func (r *Registry) Resolve(ids []types.ActorID) []*Actor {
	out := make([]*Actor, 0, len(ids))
	for _, id := range ids {
		if a := r.Get(id); a != nil {
			out = append(out, a)
		}
	}
	return out
}
