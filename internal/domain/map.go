package domain

import (
	"math"
	"math/rand"
	"strings"

	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
	"github.com/zyedidia/generic/mapset"
)

// Map - фиксированная сетка тайлов уровня.
type Map struct {
	Width      int
	Height     int
	Archetype  enums.Archetype
	Difficulty int

	// RangeOfView - радиус обзора игрока на этой карте.
	RangeOfView int

	// Areas - комнаты подземелья или дома города.
	Areas []Area
	Entry *Position
	Exit  *Position

	tiles [][]Tile // [y][x]
	solid [][]bool // [y][x], кэш blockSight
	dirty bool
}

// NewMap создает карту из тайлов по умолчанию: видимых, неисследованных, без материала.
func NewMap(width, height int, archetype enums.Archetype) *Map {
	m := &Map{
		Width:       width,
		Height:      height,
		Archetype:   archetype,
		RangeOfView: TorchRadius,
		tiles:       make([][]Tile, height),
		dirty:       true,
	}
	for y := 0; y < height; y++ {
		row := make([]Tile, width)
		for x := 0; x < width; x++ {
			row[x] = Tile{X: x, Y: y, InView: true, Color: DefaultTileColor, m: m}
		}
		m.tiles[y] = row
	}
	return m
}

func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width && y < m.Height
}

// Tile возвращает тайл или nil за пределами карты.
func (m *Map) Tile(x, y int) *Tile {
	if !m.InBounds(x, y) {
		return nil
	}
	return &m.tiles[y][x]
}

// Each обходит тайлы построчно.
func (m *Map) Each(fn func(t *Tile)) {
	for y := range m.tiles {
		for x := range m.tiles[y] {
			fn(&m.tiles[y][x])
		}
	}
}

// Solid возвращает матрицу непрозрачности [y][x].
// Пересобирается только после изменения проходимости хотя бы одного тайла.
func (m *Map) Solid() [][]bool {
	if !m.dirty && m.solid != nil {
		return m.solid
	}
	if m.solid == nil {
		m.solid = make([][]bool, m.Height)
		for y := range m.solid {
			m.solid[y] = make([]bool, m.Width)
		}
	}
	for y := range m.tiles {
		for x := range m.tiles[y] {
			m.solid[y][x] = m.tiles[y][x].blockSight
		}
	}
	m.dirty = false
	return m.solid
}

// CircleTiles аппроксимирует круг радиуса radius вокруг (x, y).
//
// По окружности берётся 6*radius выборок. От каждой точки идём к центру
// (сначала по X, потом по Y), собирая тайлы без повторов.
// full=false оставляет только точки самой окружности, full=true добавляет
// центр первым и заполняет внутренность.
func (m *Map) CircleTiles(x, y, radius int, full, excludeBlocked bool) []*Tile {
	var out []*Tile
	seen := mapset.New[Position]()

	if full {
		if center := m.Tile(x, y); center != nil {
			out = append(out, center)
			seen.Put(center.Pos())
		}
	}

	samples := 6 * radius
	half := float64(samples) / 2
	for i := 0; i < samples; i++ {
		angle := (math.Pi / half) * float64(i)
		px := int(math.RoundToEven(float64(x) + float64(radius)*math.Cos(angle)))
		py := int(math.RoundToEven(float64(y) + float64(radius)*math.Sin(angle)))

		for px != x || py != y {
			if t := m.Tile(px, py); t != nil && !seen.Has(t.Pos()) {
				if !excludeBlocked || !t.Blocked() {
					out = append(out, t)
					seen.Put(t.Pos())
				}
			}
			if !full {
				break
			}
			switch {
			case px > x:
				px--
			case px < x:
				px++
			case py > y:
				py--
			case py < y:
				py++
			}
		}
	}
	return out
}

// RandomEmptyTile - свободный проходимый тайл без крайних клеток.
// Подземелье сначала выбирает случайную комнату.
func (m *Map) RandomEmptyTile(rng *rand.Rand) *Tile {
	if m.Archetype == enums.ArchetypeDungeon && len(m.Areas) > 0 {
		for _, i := range rng.Perm(len(m.Areas)) {
			if t := m.Areas[i].RandomEmptyTile(m, rng); t != nil {
				return t
			}
		}
		return nil
	}
	return NewArea(1, 1, m.Width-2, m.Height-2).RandomEmptyTile(m, rng)
}

// CountExplored и CountInView нужны отладке и тестам.
func (m *Map) CountExplored() int {
	n := 0
	m.Each(func(t *Tile) {
		if t.Explored {
			n++
		}
	})
	return n
}

func (m *Map) CountInView() int {
	n := 0
	m.Each(func(t *Tile) {
		if t.InView {
			n++
		}
	})
	return n
}

// String рисует карту символами ASCII.
func (m *Map) String() string {
	var sb strings.Builder
	sb.Grow((m.Width + 1) * m.Height)
	for y := range m.tiles {
		for x := range m.tiles[y] {
			t := &m.tiles[y][x]
			switch {
			case t.Blocked():
				sb.WriteByte('#')
			case t.Material == enums.MaterialWater:
				sb.WriteByte('~')
			case t.Material == enums.MaterialDoor:
				sb.WriteByte('+')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
