package systems

import (
	"github.com/Frostlock/Warrens-II/internal/domain"
	"github.com/Frostlock/Warrens-II/pkg/logger"
	"github.com/sirupsen/logrus"
)

// UpdateFieldOfView пересчитывает видимость уровня из точки origin.
// Тайл виден, если он в радиусе обзора карты и до него есть LineOfSight.
// Видимый тайл становится исследованным, невидимый только гаснет.
// Акторы на тайле получают его видимость. Возвращает число видимых тайлов.
func UpdateFieldOfView(reg *domain.Registry, level *domain.Level, origin domain.Position) int {
	fovLogger := logger.Log.WithFields(logrus.Fields{
		"component":    "fov_system",
		"level":        level.Name,
		"observer_pos": origin,
	})

	m := level.Map
	solid := m.Solid()
	rangeOfView := float64(m.RangeOfView)
	visibleCount := 0

	m.Each(func(t *domain.Tile) {
		visible := origin.DistanceTo(t.Pos()) <= rangeOfView &&
			LineOfSight(solid, origin.X, origin.Y, t.X, t.Y)

		if visible {
			t.InView = true
			t.Explored = true
			visibleCount++
		} else {
			t.InView = false
		}

		for _, a := range reg.ActorsAt(t) {
			a.InView = visible
		}
	})

	fovLogger.WithFields(logrus.Fields{
		"range":         m.RangeOfView,
		"visible_tiles": visibleCount,
	}).Debug("FOV calculation complete.")

	return visibleCount
}

// VisibleTiles - тайлы уровня, видимые после последнего UpdateFieldOfView.
func VisibleTiles(m *domain.Map) []*domain.Tile {
	var out []*domain.Tile
	m.Each(func(t *domain.Tile) {
		if t.InView {
			out = append(out, t)
		}
	})
	return out
}
