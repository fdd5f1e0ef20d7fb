package systems

import "github.com/Frostlock/Warrens-II/internal/domain"

// LineSegments возвращает клетки отрезка Брезенхэма от (x1, y1) до (x2, y2).
// Первой всегда идёт исходная клетка.
func LineSegments(x1, y1, x2, y2 int) []domain.Position {
	steep := abs(y2-y1) > abs(x2-x1)
	if steep {
		x1, y1 = y1, x1
		x2, y2 = y2, x2
	}

	reversed := false
	if x1 > x2 {
		x1, x2 = x2, x1
		y1, y2 = y2, y1
		reversed = true
	}

	dx := x2 - x1
	dy := abs(y2 - y1)
	err := dx / 2
	y := y1
	yStep := -1
	if y1 < y2 {
		yStep = 1
	}

	points := make([]domain.Position, 0, dx+1)
	for x := x1; x <= x2; x++ {
		if steep {
			points = append(points, domain.Position{X: y, Y: x})
		} else {
			points = append(points, domain.Position{X: x, Y: y})
		}
		err -= dy
		if err < 0 {
			y += yStep
			err += dx
		}
	}

	if reversed {
		for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
			points[i], points[j] = points[j], points[i]
		}
	}
	return points
}

// LineOfSight проверяет видимость по матрице solid[y][x].
// Видимость есть, если на отрезке нет непрозрачных клеток
// или ровно одна, и это сама цель (стену видно).
// Клетки за пределами матрицы считаются непрозрачными.
func LineOfSight(solid [][]bool, x1, y1, x2, y2 int) bool {
	hits := 0
	for _, p := range LineSegments(x1, y1, x2, y2) {
		if isSolid(solid, p.X, p.Y) {
			hits++
		}
	}
	return hits == 0 || (hits == 1 && isSolid(solid, x2, y2))
}

func isSolid(solid [][]bool, x, y int) bool {
	if y < 0 || y >= len(solid) || x < 0 || x >= len(solid[y]) {
		return true
	}
	return solid[y][x]
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
