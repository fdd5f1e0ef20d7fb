package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
	"github.com/Frostlock/Warrens-II/internal/domain"
	"github.com/Frostlock/Warrens-II/internal/systems"
	"github.com/Frostlock/Warrens-II/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func smallWorldConfig(seed int64) Config {
	cfg := NewConfig()
	cfg.Seed = seed
	cfg.DungeonLevels = 2
	cfg.CaveLevels = 1
	return cfg
}

func buildTestWorld(t *testing.T, cfg Config) (*systems.World, *domain.MessageBuffer, *WorldLayout) {
	t.Helper()
	buf := domain.NewMessageBuffer(cfg.MessageHistory)
	w := systems.NewWorld(domain.NewRegistry(), utils.NewRand(cfg.Seed), buf)
	layout, err := BuildWorld(context.Background(), cfg, w)
	require.NoError(t, err)
	return w, buf, layout
}

func TestBuildWorld_Layout(t *testing.T) {
	w, buf, layout := buildTestWorld(t, smallWorldConfig(42))

	names := make([]string, 0, len(layout.Levels))
	for _, lvl := range layout.Levels {
		names = append(names, lvl.Name)
		assert.Nil(t, lvl.Parent, "%s is a root level", lvl.Name)
	}
	assert.Equal(t, []string{townName, "Dungeon level 1", "Dungeon level 2", caveName}, names)
	assert.Equal(t, layout.Levels[0], layout.Town)

	t.Run("houses are sub-levels of the town", func(t *testing.T) {
		town := layout.Town
		assert.Len(t, town.SubLevels, len(town.Map.Areas))
		for _, house := range town.SubLevels {
			assert.Equal(t, town, house.Parent)
			assert.Equal(t, enums.ArchetypeSingleRoom, house.Archetype())
			require.Len(t, house.Portals, 1)

			door := w.Reg.Get(house.Portals[0])
			require.NotNil(t, door)
			assert.Equal(t, enums.DirectionUp, door.Portal.Direction)
			assert.Equal(t, town, w.Reg.LevelOf(w.Reg.Get(door.Portal.Destination)))
			assert.Equal(t, enums.MaterialDoor, house.Map.Tile(door.Pos.X, door.Pos.Y).Material)
		}
	})

	t.Run("portals are connected both ways", func(t *testing.T) {
		for _, lvl := range w.Reg.Levels() {
			for _, p := range w.Reg.Resolve(lvl.Portals) {
				dest := w.Reg.Get(p.Portal.Destination)
				require.NotNil(t, dest, "portal %s on %s", p.Name, lvl.Name)
				assert.Equal(t, p.ID, dest.Portal.Destination)
				assert.NotEqual(t, p.Portal.Direction, dest.Portal.Direction)
				assert.NotEqual(t, lvl, w.Reg.LevelOf(dest))
			}
		}
	})

	t.Run("dungeons are chained below the town", func(t *testing.T) {
		below := func(from *domain.Level) []string {
			var out []string
			for _, p := range w.Reg.Resolve(from.Portals) {
				if p.Portal.Direction != enums.DirectionDown {
					continue
				}
				if lvl := w.Reg.LevelOf(w.Reg.Get(p.Portal.Destination)); lvl != nil && lvl.Parent == nil {
					out = append(out, lvl.Name)
				}
			}
			return out
		}
		assert.ElementsMatch(t, []string{"Dungeon level 1", caveName}, below(layout.Town))
		assert.ElementsMatch(t, []string{"Dungeon level 2"}, below(layout.Levels[1]))
		assert.ElementsMatch(t, []string{caveName}, below(layout.Levels[2]))
	})

	t.Run("player starts in town with gear", func(t *testing.T) {
		p := layout.Player
		assert.Equal(t, layout.Town, w.Reg.LevelOf(p))
		assert.True(t, p.IsAlive())
		assert.True(t, layout.Town.Map.Tile(p.Pos.X, p.Pos.Y).InView)

		var potions int
		for _, it := range systems.InventoryItems(w, p) {
			if it.Key == "healingpotion" {
				potions += it.Item.StackSize
			}
		}
		assert.Equal(t, 2, potions)
	})

	t.Run("quick start chest near the player", func(t *testing.T) {
		var chest *domain.Actor
		// Сундук лежит в списке предметов уровня
		for _, id := range layout.Town.Items {
			if a := w.Reg.Get(id); a != nil && a.Container != nil {
				chest = a
			}
		}
		require.NotNil(t, chest)
		assert.NotEmpty(t, chest.Inventory.Items)
		assert.LessOrEqual(t, chest.Pos.DistanceTo(layout.Player.Pos), 6.0)
	})

	t.Run("welcome message", func(t *testing.T) {
		var found bool
		for _, m := range buf.Messages() {
			if strings.HasPrefix(m.Text, "You are Ewan") {
				found = true
			}
		}
		assert.True(t, found)
	})
}

func TestBuildWorld_Deterministic(t *testing.T) {
	w1, _, a := buildTestWorld(t, smallWorldConfig(7))
	w2, _, b := buildTestWorld(t, smallWorldConfig(7))

	assert.Equal(t, w1.Reg.Count(), w2.Reg.Count())
	assert.Equal(t, a.Player.Pos, b.Player.Pos)
	for i := range a.Levels {
		assert.Equal(t, a.Levels[i].Map.String(), b.Levels[i].Map.String(), a.Levels[i].Name)
	}
}

func TestNewGame(t *testing.T) {
	cfg := smallWorldConfig(3)
	cfg.QuickStart = false

	g, err := NewGame(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, g.Town, g.CurrentLevel())
	assert.Len(t, g.Levels, 4)
	assert.NotNil(t, g.Library)
	assert.Equal(t, int64(0), g.Turn)
}

func TestBuildWorld_RecordsSpan(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	g, err := NewGame(context.Background(), smallWorldConfig(5))
	require.NoError(t, err)
	require.NoError(t, g.Wait(g.Player))
	require.True(t, g.AdvanceTurn(context.Background()))

	var names []string
	for _, s := range rec.Ended() {
		names = append(names, s.Name())
	}
	assert.Contains(t, names, "world.build")
	assert.Contains(t, names, "game.turn")
}
