package dungeon

import (
	"fmt"

	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
	"github.com/Frostlock/Warrens-II/internal/domain"
	"github.com/Frostlock/Warrens-II/pkg/utils"
)

// generateTown - открытая площадь с домами.
// Дома здесь только заблокированные прямоугольники, интерьеры строятся отдельными уровнями SingleRoom.
func (b *Builder) generateTown(m *domain.Map) error {
	minSide := HouseMaxSize + 2*HouseBorder
	if m.Width < minSide || m.Height < minSide {
		return &domain.GenerationError{
			Archetype: enums.ArchetypeTown,
			Width:     m.Width,
			Height:    m.Height,
			Reason:    fmt.Sprintf("both sides must be at least %d", minSide),
		}
	}

	m.RangeOfView = domain.DaylightRadius

	// Город виден целиком, заблокирована только граница
	m.Each(func(t *domain.Tile) {
		t.Explored = true
		if t.X == 0 || t.Y == 0 || t.X == m.Width-1 || t.Y == m.Height-1 {
			t.Paint(true, enums.MaterialStone, TownBorderColor)
		} else {
			t.Paint(false, enums.MaterialDirt, TownDirtColor)
		}
	})

	for i := 0; i < MaxHouses; i++ {
		w := utils.RandRange(b.rng, HouseMinSize, HouseMaxSize)
		h := utils.RandRange(b.rng, HouseMinSize, HouseMaxSize)
		x := utils.RandRange(b.rng, HouseBorder, m.Width-w-HouseBorder)
		y := utils.RandRange(b.rng, HouseBorder, m.Height-h-HouseBorder)

		house := domain.NewArea(x, y, w, h)

		overlap := false
		for _, other := range m.Areas {
			if house.Intersects(other, HouseBorder) {
				overlap = true
				break
			}
		}
		if overlap {
			break
		}

		for hx := house.X1; hx <= house.X2; hx++ {
			for hy := house.Y1; hy <= house.Y2; hy++ {
				if t := m.Tile(hx, hy); t != nil {
					t.Paint(true, enums.MaterialStone, TownStoneColor)
				}
			}
		}

		m.Areas = append(m.Areas, house)
	}
	return nil
}
