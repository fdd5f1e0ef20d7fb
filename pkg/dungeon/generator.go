package dungeon

import (
	"context"
	"math/rand"

	"github.com/Frostlock/Warrens-II/internal/core/types"
	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
	"github.com/Frostlock/Warrens-II/internal/domain"
)

// Размеры карт по умолчанию
const (
	MapWidth  = 80
	MapHeight = 50
)

// Подземелье
const (
	RoomMinSize = 6
	RoomMaxSize = 10
	MaxRooms    = 30
)

// Город
const (
	HouseMinSize = 8
	HouseMaxSize = 14
	MaxHouses    = 18
	HouseBorder  = 2
)

// Пещера
const (
	CaveMinBlobs       = 3
	CaveMaxBlobs       = 8
	CaveFirstMinRadius = 5
	CaveFirstMaxRadius = 10
	CaveBlobMinRadius  = 5
	CaveBlobMaxRadius  = 15
	CaveWaterRadius    = 2
	CaveMinSize        = 5
)

// Цвета материалов
var (
	DungeonFloorColor = types.RGB{R: 134, G: 134, B: 134}
	DungeonWallColor  = types.RGB{R: 75, G: 70, B: 50}

	TownBorderColor = types.RGB{R: 25, G: 25, B: 25}
	TownDirtColor   = types.RGB{R: 127, G: 75, B: 35}
	TownStoneColor  = types.RGB{R: 105, G: 105, B: 105}
	DoorColor       = types.RGB{R: 139, G: 69, B: 19}

	CaveRockColor  = types.RGB{R: 75, G: 50, B: 35}
	CaveDirtColor  = types.RGB{R: 120, G: 90, B: 70}
	CaveWaterColor = types.RGB{R: 30, G: 144, B: 255}
)

// Option настраивает Builder при вызове NewMap.
type Option func(*Builder)

// WithRand задаёт генератор случайных чисел.
func WithRand(rng *rand.Rand) Option {
	return func(b *Builder) { b.rng = rng }
}

// WithArea задаёт комнату для SingleRoom.
func WithArea(area domain.Area) Option {
	return func(b *Builder) { b.WithRoom(area) }
}

// WithoutTextures отключает расчёт текстур.
func WithoutTextures() Option {
	return func(b *Builder) { b.textures = false }
}

// NewMap строит карту заданного архетипа.
// Без WithRand генератор засевается текущим временем.
func NewMap(ctx context.Context, width, height int, archetype enums.Archetype, difficulty int, opts ...Option) (*domain.Map, error) {
	b := NewBuilder(archetype, nil).WithSize(width, height).WithDifficulty(difficulty)
	for _, opt := range opts {
		opt(b)
	}
	return b.Build(ctx)
}

// --- Вспомогательные функции ---

func fill(m *domain.Map, blocked bool, material enums.Material, color types.RGB) {
	m.Each(func(t *domain.Tile) {
		t.Paint(blocked, material, color)
	})
}

// carveRoom вырезает внутренность комнаты, стены остаются.
func carveRoom(m *domain.Map, room domain.Area, color types.RGB) {
	for x := room.X1 + 1; x < room.X2; x++ {
		for y := room.Y1 + 1; y < room.Y2; y++ {
			if t := m.Tile(x, y); t != nil {
				t.Paint(false, enums.MaterialDirt, color)
			}
		}
	}
}

func carveHTunnel(m *domain.Map, x1, x2, y int, color types.RGB) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		if t := m.Tile(x, y); t != nil {
			t.Paint(false, enums.MaterialDirt, color)
		}
	}
}

func carveVTunnel(m *domain.Map, y1, y2, x int, color types.RGB) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		if t := m.Tile(x, y); t != nil {
			t.Paint(false, enums.MaterialDirt, color)
		}
	}
}

func blockBorder(m *domain.Map, color types.RGB) {
	m.Each(func(t *domain.Tile) {
		if t.X == 0 || t.Y == 0 || t.X == m.Width-1 || t.Y == m.Height-1 {
			t.Paint(true, enums.MaterialStone, color)
		}
	})
}
