package engine

import (
	"testing"

	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
	"github.com/Frostlock/Warrens-II/internal/domain"
	"github.com/Frostlock/Warrens-II/internal/systems"
	"github.com/Frostlock/Warrens-II/pkg/api"
	"github.com/Frostlock/Warrens-II/pkg/dungeon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findActor(snap *api.Snapshot, name string) *api.ActorView {
	for i := range snap.Actors {
		if snap.Actors[i].Name == name {
			return &snap.Actors[i]
		}
	}
	return nil
}

func TestSnapshot_FogOfWar(t *testing.T) {
	g, lvl := newArena(t)

	// Забываем карту и ставим стену: правые колонки игрок не видел
	lvl.Map.Each(func(tile *domain.Tile) {
		tile.Explored = false
		tile.InView = false
	})
	for y := 0; y < 10; y++ {
		lvl.Map.Tile(7, y).Paint(true, enums.MaterialStone, dungeon.DoorColor)
	}
	spawn(t, g.World, lvl, dummy("hidden orc"), 9, 5)
	spawn(t, g.World, lvl, dummy("visible orc"), 3, 5)
	systems.UpdateFieldOfView(g.World.Reg, lvl, g.Player.Pos)

	snap := g.Snapshot()

	require.NotNil(t, snap.Grid)
	assert.Equal(t, 10, snap.Grid.Width)
	assert.Equal(t, ModeTurn, snap.Mode)
	assert.Equal(t, "arena", snap.Level.Name)

	for _, tile := range snap.Map {
		assert.True(t, tile.Explored)
		assert.Less(t, tile.X, 8, "tiles behind the wall were never seen")
	}
	assert.NotNil(t, findActor(snap, "visible orc"))
	assert.Nil(t, findActor(snap, "hidden orc"))
	assert.NotNil(t, findActor(snap, "Tester"))
}

func TestSnapshot_PlayerAlwaysIncluded(t *testing.T) {
	g, lvl := newArena(t)
	g.Player.Player.ActionTaken = true

	// Тайл игрока погас, сам игрок в снимке остаётся
	lvl.Map.Tile(5, 5).InView = false
	snap := g.Snapshot()

	me := findActor(snap, "Tester")
	require.NotNil(t, me)
	assert.Equal(t, g.Player.ID, me.ID)
	assert.Equal(t, 5, me.X)

	require.NotNil(t, snap.Player)
	assert.True(t, snap.Player.ActionTaken)
	assert.Equal(t, 1, snap.Player.Level)
	assert.Equal(t, g.Player.Stats.MaxHP, snap.Player.Stats.MaxHP)
}

func TestSnapshot_InventoryAndEffects(t *testing.T) {
	g, lvl := newArena(t)
	give(t, g.World, g.Player, item(t, g, "healingpotion"))
	give(t, g.World, g.Player, item(t, g, "healingpotion"))
	fireball := give(t, g.World, g.Player, item(t, g, "fireball"))
	spawn(t, g.World, lvl, dummy("orc"), 8, 8)

	require.NoError(t, g.ApplyEffectItem(fireball, systems.TileTarget(lvl.Map.Tile(8, 8))))
	snap := g.Snapshot()

	require.Len(t, snap.Player.Items, 1, "potions stack, the fireball is used up")
	assert.Equal(t, 2, snap.Player.Items[0].StackSize)
	assert.Equal(t, "HEAL", snap.Player.Items[0].Effect)

	require.Len(t, snap.Effects, 1)
	fx := snap.Effects[0]
	assert.Equal(t, "DAMAGE", fx.Kind)
	assert.Equal(t, fireball.Name, fx.Source)
	assert.Contains(t, fx.Tiles, api.PositionPayload{X: 8, Y: 8})
}

func TestSnapshot_Messages(t *testing.T) {
	g, _ := newArena(t)
	g.World.Emit(enums.MessageGame, "first")
	g.World.Emit(enums.MessageDebug, "debug only")
	g.World.Emit(enums.MessageCombat, "second")

	snap := g.Snapshot()

	require.Len(t, snap.Messages, 2)
	assert.Equal(t, "first", snap.Messages[0].Text)
	assert.Equal(t, "second", snap.Messages[1].Text)
	assert.Equal(t, enums.MessageCombat.String(), snap.Messages[1].Category)

	// Снимок не зависит от дальнейших сообщений
	g.World.Emit(enums.MessageGame, "third")
	assert.Len(t, snap.Messages, 2)
}
