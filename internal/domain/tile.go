package domain

import (
	"github.com/Frostlock/Warrens-II/internal/core/types"
	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
)

// DefaultTileColor - цвет только что созданного тайла.
var DefaultTileColor = types.RGB{R: 175, G: 175, B: 175}

// Tile - клетка карты.
// Инвариант: blocked => blockSight. Поддерживается сеттерами.
type Tile struct {
	X int
	Y int

	blocked    bool
	blockSight bool

	// Explored только растёт, InView пересчитывается каждым проходом FOV.
	Explored bool
	InView   bool

	Material   enums.Material
	Color      types.RGB
	TextureSet int
	TextureID  int

	actors []types.ActorID
	m      *Map
}

func (t *Tile) Pos() Position { return Position{X: t.X, Y: t.Y} }

func (t *Tile) Blocked() bool    { return t.blocked }
func (t *Tile) BlockSight() bool { return t.blockSight }

// SetBlocked меняет проходимость вместе с прозрачностью.
func (t *Tile) SetBlocked(b bool) {
	if t.blocked == b && t.blockSight == b {
		return
	}
	t.blocked = b
	t.blockSight = b
	t.invalidate()
}

// SetBlockSight меняет только прозрачность.
// Заблокированный тайл остаётся непрозрачным.
func (t *Tile) SetBlockSight(b bool) {
	if !b && t.blocked {
		return
	}
	if t.blockSight == b {
		return
	}
	t.blockSight = b
	t.invalidate()
}

// Paint задаёт проходимость, материал и цвет одним вызовом.
func (t *Tile) Paint(blocked bool, material enums.Material, color types.RGB) {
	t.SetBlocked(blocked)
	t.Material = material
	t.Color = color
}

// Actors возвращает хэндлы акторов на тайле в порядке появления.
func (t *Tile) Actors() []types.ActorID {
	return t.actors
}

func (t *Tile) Empty() bool {
	return len(t.actors) == 0
}

func (t *Tile) addActor(id types.ActorID) {
	for _, a := range t.actors {
		if a == id {
			return
		}
	}
	t.actors = append(t.actors, id)
}

func (t *Tile) removeActor(id types.ActorID) {
	for i, a := range t.actors {
		if a == id {
			t.actors = append(t.actors[:i], t.actors[i+1:]...)
			return
		}
	}
}

func (t *Tile) invalidate() {
	if t.m != nil {
		t.m.dirty = true
	}
}
