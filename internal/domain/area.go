package domain

import "math/rand"

// Area - прямоугольная комната или дом. X2 = X1 + w, Y2 = Y1 + h.
type Area struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func NewArea(x, y, w, h int) Area {
	return Area{X1: x, Y1: y, X2: x + w, Y2: y + h}
}

func (a Area) Center() (int, int) {
	return (a.X1 + a.X2) / 2, (a.Y1 + a.Y2) / 2
}

// Intersects сравнивает включительно, border раздвигает зону проверки.
func (a Area) Intersects(other Area, border int) bool {
	return a.X1-border <= other.X2 && a.X2+border >= other.X1 &&
		a.Y1-border <= other.Y2 && a.Y2+border >= other.Y1
}

func (a Area) Contains(x, y int) bool {
	return x >= a.X1 && x <= a.X2 && y >= a.Y1 && y <= a.Y2
}

// RandomEmptyTile ищет свободный проходимый тайл внутри области в случайном порядке.
func (a Area) RandomEmptyTile(m *Map, rng *rand.Rand) *Tile {
	xs := shuffledRange(rng, a.X1, a.X2)
	ys := shuffledRange(rng, a.Y1, a.Y2)
	for _, x := range xs {
		for _, y := range ys {
			t := m.Tile(x, y)
			if t != nil && !t.Blocked() && t.Empty() {
				return t
			}
		}
	}
	return nil
}

func shuffledRange(rng *rand.Rand, lo, hi int) []int {
	out := make([]int, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		out = append(out, v)
	}
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
