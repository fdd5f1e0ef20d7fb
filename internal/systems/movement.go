package systems

import (
	"math"

	"github.com/Frostlock/Warrens-II/internal/domain"
	"github.com/Frostlock/Warrens-II/pkg/logger"
)

// MovementResult - результат вычисления движения
type MovementResult struct {
	To        domain.Position
	HasMoved  bool
	BlockedBy *domain.Actor // Если врезались в кого-то (для атаки)
	IsWall    bool          // Если врезались в стену
}

// CalculateMove вычисляет новую позицию. Не меняет состояние мира!
// Цель зажимается в границы карты.
func CalculateMove(w *World, a *domain.Actor, dx, dy int) MovementResult {
	lvl := w.Reg.LevelOf(a)
	if lvl == nil {
		return MovementResult{To: a.Pos}
	}
	m := lvl.Map

	to := a.Pos.Shift(dx, dy)
	to.X = clamp(to.X, 0, m.Width-1)
	to.Y = clamp(to.Y, 0, m.Height-1)

	res := MovementResult{To: to}
	if to == a.Pos {
		return res
	}

	tile := m.Tile(to.X, to.Y)
	if tile.Blocked() {
		res.IsWall = true
		return res
	}

	// Живые персонажи непроходимы, предметы и порталы - проходимы
	for _, other := range w.Reg.ActorsAt(tile) {
		if other.ID != a.ID && other.IsCharacter() && other.IsAlive() {
			res.BlockedBy = other
			return res
		}
	}

	res.HasMoved = true
	return res
}

// MoveAlongVector сдвигает актора на (dx, dy), если клетка свободна.
func MoveAlongVector(w *World, a *domain.Actor, dx, dy int) MovementResult {
	res := CalculateMove(w, a, dx, dy)
	if !res.HasMoved {
		return res
	}
	if err := w.Reg.Place(a.ID, w.Reg.LevelOf(a), res.To.X, res.To.Y); err != nil {
		logger.For("movement").WithError(err).Warn("Move failed")
		res.HasMoved = false
	}
	return res
}

// MoveTowards делает один шаг к цели: вектор нормализуется и округляется до сетки.
// Если прямой шаг занят, пробуем сдвинуться по одной из осей.
func MoveTowards(w *World, a *domain.Actor, target domain.Position) MovementResult {
	dxRaw := target.X - a.Pos.X
	dyRaw := target.Y - a.Pos.Y
	dist := a.Pos.DistanceTo(target)
	if dist == 0 {
		return MovementResult{To: a.Pos}
	}

	stepX := int(math.RoundToEven(float64(dxRaw) / dist))
	stepY := int(math.RoundToEven(float64(dyRaw) / dist))

	// Попытка 1: Идеальный путь
	res := MoveAlongVector(w, a, stepX, stepY)
	if res.HasMoved {
		return res
	}

	// Попытка 2: выбор приоритетной оси
	first, second := [2]int{sign(dxRaw), 0}, [2]int{0, sign(dyRaw)}
	if abs(dyRaw) > abs(dxRaw) {
		first, second = second, first
	}
	for _, step := range [][2]int{first, second} {
		if step == [2]int{stepX, stepY} || step == [2]int{0, 0} {
			continue
		}
		if CalculateMove(w, a, step[0], step[1]).HasMoved {
			return MoveAlongVector(w, a, step[0], step[1])
		}
	}

	return res // Тупик
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
