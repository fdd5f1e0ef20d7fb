package dungeon

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
	"github.com/Frostlock/Warrens-II/internal/domain"
	"github.com/Frostlock/Warrens-II/pkg/logger"
	"github.com/Frostlock/Warrens-II/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	logger.Silence()

	os.Exit(m.Run())
}

func build(t *testing.T, archetype enums.Archetype, w, h int, seed int64) *domain.Map {
	t.Helper()
	m, err := NewMap(context.Background(), w, h, archetype, 1, WithRand(utils.NewRand(seed)))
	require.NoError(t, err)
	return m
}

func assertBlockedImpliesBlockSight(t *testing.T, m *domain.Map) {
	t.Helper()
	m.Each(func(tile *domain.Tile) {
		if tile.Blocked() {
			assert.True(t, tile.BlockSight(), "tile (%d,%d) blocked but transparent", tile.X, tile.Y)
		}
	})
}

func TestNewMap_Dungeon(t *testing.T) {
	withRooms := 0
	for seed := int64(1); seed <= 20; seed++ {
		m := build(t, enums.ArchetypeDungeon, 120, 100, seed)
		assertBlockedImpliesBlockSight(t, m)

		require.NotEmpty(t, m.Areas, "seed %d", seed)
		require.NotNil(t, m.Entry)
		require.NotNil(t, m.Exit)

		if len(m.Areas) >= 2 {
			withRooms++
			assert.NotEqual(t, *m.Entry, *m.Exit, "seed %d", seed)
		}

		// Комнаты не пересекаются, внутренности вырезаны
		for i, a := range m.Areas {
			for j := i + 1; j < len(m.Areas); j++ {
				assert.False(t, a.Intersects(m.Areas[j], 0), "seed %d: rooms %d and %d overlap", seed, i, j)
			}
			for x := a.X1 + 1; x < a.X2; x++ {
				for y := a.Y1 + 1; y < a.Y2; y++ {
					assert.False(t, m.Tile(x, y).Blocked())
				}
			}
		}

		assert.False(t, m.Tile(m.Entry.X, m.Entry.Y).Blocked())
		assert.False(t, m.Tile(m.Exit.X, m.Exit.Y).Blocked())
	}
	assert.GreaterOrEqual(t, withRooms, 15, "most large dungeons should have at least two rooms")
}

func TestNewMap_DungeonRoomsAreConnected(t *testing.T) {
	m := build(t, enums.ArchetypeDungeon, 80, 50, 42)
	require.NotNil(t, m.Entry)

	reached := floodFill(m, *m.Entry)
	for _, a := range m.Areas {
		cx, cy := a.Center()
		assert.True(t, reached[domain.Position{X: cx, Y: cy}], "room %v unreachable", a)
	}
}

func TestNewMap_DungeonTooSmall(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"narrow", 9, 50},
		{"short", 50, 9},
		{"tiny", 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMap(context.Background(), tt.w, tt.h, enums.ArchetypeDungeon, 1, WithRand(utils.NewRand(1)))
			var genErr *domain.GenerationError
			require.True(t, errors.As(err, &genErr), "expected GenerationError, got %v", err)
			assert.Equal(t, enums.ArchetypeDungeon, genErr.Archetype)
		})
	}
}

func TestNewMap_Deterministic(t *testing.T) {
	for _, archetype := range []enums.Archetype{enums.ArchetypeDungeon, enums.ArchetypeTown, enums.ArchetypeCave} {
		a := build(t, archetype, 60, 40, 7)
		b := build(t, archetype, 60, 40, 7)
		assert.Equal(t, a.String(), b.String(), archetype.String())
	}
}

func TestNewMap_Town(t *testing.T) {
	m := build(t, enums.ArchetypeTown, 80, 50, 3)

	assert.Equal(t, domain.DaylightRadius, m.RangeOfView)
	assert.Equal(t, m.Width*m.Height, m.CountExplored(), "town starts fully explored")
	assertBlockedImpliesBlockSight(t, m)

	m.Each(func(tile *domain.Tile) {
		if tile.X == 0 || tile.Y == 0 || tile.X == m.Width-1 || tile.Y == m.Height-1 {
			assert.True(t, tile.Blocked())
			assert.Equal(t, TownBorderColor, tile.Color)
		}
	})

	require.NotEmpty(t, m.Areas)
	for i, house := range m.Areas {
		for j := i + 1; j < len(m.Areas); j++ {
			assert.False(t, house.Intersects(m.Areas[j], HouseBorder))
		}
		for x := house.X1; x <= house.X2; x++ {
			for y := house.Y1; y <= house.Y2; y++ {
				assert.True(t, m.Tile(x, y).Blocked())
				assert.Equal(t, enums.MaterialStone, m.Tile(x, y).Material)
			}
		}
	}
}

func TestNewMap_TownTooSmall(t *testing.T) {
	_, err := NewMap(context.Background(), 17, 40, enums.ArchetypeTown, 1)
	var genErr *domain.GenerationError
	assert.True(t, errors.As(err, &genErr))
}

func TestNewMap_Cave(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		m := build(t, enums.ArchetypeCave, 80, 50, seed)
		assertBlockedImpliesBlockSight(t, m)

		m.Each(func(tile *domain.Tile) {
			if tile.X == 0 || tile.Y == 0 || tile.X == m.Width-1 || tile.Y == m.Height-1 {
				assert.True(t, tile.Blocked(), "seed %d: border (%d,%d) open", seed, tile.X, tile.Y)
			}
		})

		water := 0
		m.Each(func(tile *domain.Tile) {
			if tile.Material == enums.MaterialWater {
				water++
				assert.False(t, tile.Blocked())
			}
		})
		assert.Positive(t, water, "seed %d: no water", seed)

		assert.GreaterOrEqual(t, len(m.Areas), CaveMinBlobs)
		assert.LessOrEqual(t, len(m.Areas), CaveMaxBlobs)

		require.NotNil(t, m.Entry)
		require.NotNil(t, m.Exit)
		assert.True(t, floodFill(m, *m.Entry)[*m.Exit], "seed %d: last cave is not connected", seed)
	}
}

func TestNewMap_SingleRoom(t *testing.T) {
	room := domain.NewArea(2, 2, 5, 4)
	m, err := NewMap(context.Background(), 10, 10, enums.ArchetypeSingleRoom, 1, WithArea(room), WithRand(utils.NewRand(1)))
	require.NoError(t, err)

	m.Each(func(tile *domain.Tile) {
		inside := tile.X > room.X1 && tile.X < room.X2 && tile.Y > room.Y1 && tile.Y < room.Y2
		assert.Equal(t, !inside, tile.Blocked(), "(%d,%d)", tile.X, tile.Y)
	})
	assert.Equal(t, domain.TorchRadius, m.RangeOfView)

	_, err = NewMap(context.Background(), 10, 10, enums.ArchetypeSingleRoom, 1, WithArea(domain.NewArea(5, 5, 8, 8)))
	var genErr *domain.GenerationError
	assert.True(t, errors.As(err, &genErr))
}

func TestBuilder_Fluent(t *testing.T) {
	m, err := NewBuilder(enums.ArchetypeDungeon, utils.NewRand(11)).
		WithSize(40, 30).
		WithDifficulty(4).
		Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 40, m.Width)
	assert.Equal(t, 30, m.Height)
	assert.Equal(t, 4, m.Difficulty)
}

func TestTextures(t *testing.T) {
	m := build(t, enums.ArchetypeDungeon, 60, 40, 5)

	floors := map[int]bool{TextureEmpty: true, TextureLined: true, TextureCracked: true, TextureSubtiles: true}
	walls := make(map[int]bool)
	for _, texture := range wallTextures {
		walls[texture] = true
	}

	m.Each(func(tile *domain.Tile) {
		assert.Equal(t, TextureSandstone, tile.TextureSet)
		if tile.BlockSight() {
			assert.True(t, walls[tile.TextureID], "wall texture %d", tile.TextureID)
		} else {
			assert.True(t, floors[tile.TextureID], "floor texture %d", tile.TextureID)
		}
	})

	plain, err := NewMap(context.Background(), 60, 40, enums.ArchetypeDungeon, 1, WithRand(utils.NewRand(5)), WithoutTextures())
	require.NoError(t, err)
	assert.Zero(t, plain.Tile(0, 0).TextureSet)
}

func TestNeighbourhoodHash(t *testing.T) {
	m := domain.NewMap(3, 3, enums.ArchetypeDungeon)

	assert.Equal(t, 0, NeighbourhoodHash(m, 1, 1))

	m.Tile(1, 1).SetBlocked(true)
	assert.Equal(t, 16, NeighbourhoodHash(m, 1, 1))
	assert.Equal(t, TexturePillar, wallTextures[16])

	// Угол: северо-запад, север, северо-восток, запад и юго-запад за картой, юго-восток - стена
	assert.Equal(t, 256+128+64+32+4+1, NeighbourhoodHash(m, 0, 0))
}

// floodFill обходит проходимые тайлы по 8 направлениям.
func floodFill(m *domain.Map, from domain.Position) map[domain.Position]bool {
	seen := map[domain.Position]bool{from: true}
	queue := []domain.Position{from}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range domain.Directions8 {
			n := p.Shift(d.X, d.Y)
			tile := m.Tile(n.X, n.Y)
			if tile == nil || tile.Blocked() || seen[n] {
				continue
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}
	return seen
}
