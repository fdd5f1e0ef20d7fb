package dungeon

import (
	"fmt"

	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
	"github.com/Frostlock/Warrens-II/internal/domain"
	"github.com/Frostlock/Warrens-II/pkg/utils"
)

// generateCave - круглые пещеры, соединённые кривыми коридорами в кольцо.
func (b *Builder) generateCave(m *domain.Map) error {
	if m.Width < CaveMinSize || m.Height < CaveMinSize {
		return &domain.GenerationError{
			Archetype: enums.ArchetypeCave,
			Width:     m.Width,
			Height:    m.Height,
			Reason:    fmt.Sprintf("both sides must be at least %d", CaveMinSize),
		}
	}

	fill(m, true, enums.MaterialStone, CaveRockColor)

	// Первая пещера
	x := utils.RandRange(b.rng, 2, m.Width-2)
	y := utils.RandRange(b.rng, 2, m.Height-2)
	radius := utils.RandRange(b.rng, CaveFirstMinRadius, CaveFirstMaxRadius)
	b.clearCircle(m, x, y, radius)
	m.Areas = append(m.Areas, domain.NewArea(x-radius, y-radius, 2*radius, 2*radius))

	firstX, firstY := x, y
	blobs := utils.RandInt(b.rng, CaveMinBlobs, CaveMaxBlobs)
	for i := 1; i < blobs; i++ {
		prevX, prevY := x, y
		x = utils.RandInt(b.rng, 2, m.Width-3)
		y = utils.RandInt(b.rng, 2, m.Height-3)
		radius = utils.RandInt(b.rng, CaveBlobMinRadius, CaveBlobMaxRadius)
		b.clearCircle(m, x, y, radius)
		b.corridor(m, x, y, prevX, prevY)
		m.Areas = append(m.Areas, domain.NewArea(x-radius, y-radius, 2*radius, 2*radius))
	}

	// Замыкаем кольцо
	b.corridor(m, x, y, firstX, firstY)

	// Немного воды у последней пещеры
	for _, t := range m.CircleTiles(x, y, CaveWaterRadius, true, false) {
		t.Paint(false, enums.MaterialWater, CaveWaterColor)
	}

	// Коридоры могли прорезать край карты
	blockBorder(m, CaveRockColor)

	m.Entry = &domain.Position{X: firstX, Y: firstY}
	m.Exit = &domain.Position{X: x, Y: y}
	return nil
}

func (b *Builder) clearCircle(m *domain.Map, x, y, radius int) {
	for _, t := range m.CircleTiles(x, y, radius, true, false) {
		clearCaveTile(t)
	}
}

// corridor идёт от (x, y) к (toX, toY) по диагонали, затем по прямой.
// На каждом шаге вырезается пятно случайной толщины 1..3.
func (b *Builder) corridor(m *domain.Map, x, y, toX, toY int) {
	stepX, stepY := sign(toX-x), sign(toY-y)
	for x != toX || y != toY {
		if x != toX {
			x += stepX
		}
		if y != toY {
			y += stepY
		}
		width := utils.RandInt(b.rng, 1, 3)
		for i := 0; i < width; i++ {
			for _, p := range [3]domain.Position{{X: x + i, Y: y + i}, {X: x + i, Y: y}, {X: x, Y: y + i}} {
				if t := m.Tile(p.X, p.Y); t != nil {
					clearCaveTile(t)
				}
			}
		}
	}
}

func clearCaveTile(t *domain.Tile) {
	t.Paint(false, enums.MaterialDirt, CaveDirtColor)
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
