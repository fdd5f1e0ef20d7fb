package dungeon

import (
	"fmt"

	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
	"github.com/Frostlock/Warrens-II/internal/domain"
	"github.com/Frostlock/Warrens-II/pkg/utils"
)

// generateDungeon - комнаты с коридорами.
// Первое же пересечение комнат останавливает генерацию.
func (b *Builder) generateDungeon(m *domain.Map) error {
	if m.Width < RoomMaxSize || m.Height < RoomMaxSize {
		return &domain.GenerationError{
			Archetype: enums.ArchetypeDungeon,
			Width:     m.Width,
			Height:    m.Height,
			Reason:    fmt.Sprintf("both sides must be at least %d", RoomMaxSize),
		}
	}

	// Заполняем камнем
	fill(m, true, enums.MaterialStone, DungeonWallColor)

	for i := 0; i < MaxRooms; i++ {
		w := utils.RandRange(b.rng, RoomMinSize, RoomMaxSize)
		h := utils.RandRange(b.rng, RoomMinSize, RoomMaxSize)
		x := utils.RandRange(b.rng, 0, m.Width-w-1)
		y := utils.RandRange(b.rng, 0, m.Height-h-1)

		room := domain.NewArea(x, y, w, h)

		overlap := false
		for _, other := range m.Areas {
			if room.Intersects(other, 0) {
				overlap = true
				break
			}
		}
		if overlap {
			break
		}

		carveRoom(m, room, DungeonFloorColor)

		// Соединяем с предыдущей комнатой
		if len(m.Areas) > 0 {
			prevX, prevY := m.Areas[len(m.Areas)-1].Center()
			newX, newY := room.Center()
			carveHTunnel(m, prevX, newX, newY, DungeonFloorColor)
			carveVTunnel(m, prevY, newY, prevX, DungeonFloorColor)
		}

		m.Areas = append(m.Areas, room)
	}

	if len(m.Areas) > 0 {
		ex, ey := m.Areas[0].Center()
		m.Entry = &domain.Position{X: ex, Y: ey}
		lx, ly := m.Areas[len(m.Areas)-1].Center()
		m.Exit = &domain.Position{X: lx, Y: ly}
	}
	return nil
}
