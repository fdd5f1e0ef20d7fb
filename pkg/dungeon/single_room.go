package dungeon

import (
	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
	"github.com/Frostlock/Warrens-II/internal/domain"
)

// generateSingleRoom - одна комната, например интерьер дома.
func (b *Builder) generateSingleRoom(m *domain.Map) error {
	room := domain.NewArea(0, 0, m.Width-1, m.Height-1)
	if b.room != nil {
		room = *b.room
	}
	if room.X1 < 0 || room.Y1 < 0 || room.X2 >= m.Width || room.Y2 >= m.Height || room.X2-room.X1 < 2 || room.Y2-room.Y1 < 2 {
		return &domain.GenerationError{
			Archetype: enums.ArchetypeSingleRoom,
			Width:     m.Width,
			Height:    m.Height,
			Reason:    "room does not fit the map",
		}
	}

	fill(m, true, enums.MaterialStone, DungeonWallColor)
	carveRoom(m, room, DungeonFloorColor)

	m.Areas = append(m.Areas, room)
	cx, cy := room.Center()
	m.Entry = &domain.Position{X: cx, Y: cy}
	return nil
}
