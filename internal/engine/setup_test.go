package engine

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
	"github.com/Frostlock/Warrens-II/internal/domain"
	"github.com/Frostlock/Warrens-II/internal/systems"
	"github.com/Frostlock/Warrens-II/pkg/api"
	"github.com/Frostlock/Warrens-II/pkg/dungeon"
	"github.com/Frostlock/Warrens-II/pkg/logger"
	"github.com/Frostlock/Warrens-II/pkg/utils"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	logger.Silence()

	os.Exit(m.Run())
}

// newArena - игра на открытой карте 10x10 с игроком в (5, 5).
func newArena(t *testing.T) (*Game, *domain.Level) {
	t.Helper()
	buf := domain.NewMessageBuffer(20)
	w := systems.NewWorld(domain.NewRegistry(), utils.NewRand(7), buf)

	lvl := domain.NewLevel("arena", 1, domain.NewMap(10, 10, enums.ArchetypeDungeon))
	w.Reg.AddLevel(lvl)

	lib, err := dungeon.LoadLibrary(utils.NewRand(7))
	require.NoError(t, err)

	player := dungeon.CreatePlayer("Tester")
	spawn(t, w, lvl, player, 5, 5)
	systems.UpdateFieldOfView(w.Reg, lvl, player.Pos)

	g := newGame(w, buf, &WorldLayout{
		Library: lib,
		Town:    lvl,
		Player:  player,
		Levels:  []*domain.Level{lvl},
	})
	return g, lvl
}

func spawn(t *testing.T, w *systems.World, lvl *domain.Level, a *domain.Actor, x, y int) *domain.Actor {
	t.Helper()
	w.Reg.Spawn(a)
	require.NoError(t, w.Reg.Place(a.ID, lvl, x, y))
	return a
}

func give(t *testing.T, w *systems.World, owner, item *domain.Actor) *domain.Actor {
	t.Helper()
	w.Reg.Spawn(item)
	stored, err := systems.AddToInventory(w, owner, item)
	require.NoError(t, err)
	return stored
}

// dummy - монстр, которого не убить одним ударом.
func dummy(name string) *domain.Actor {
	stats := domain.NewBaseStats()
	stats.MaxHP = 1000
	stats.HP = 1000
	return &domain.Actor{
		Kind:      enums.ActorKindMonster,
		Name:      name,
		Char:      'o',
		Stats:     stats,
		AI:        domain.NewBasicAI(),
		Inventory: &domain.InventoryComponent{},
		Monster:   &domain.MonsterComponent{XPValue: 10},
	}
}

func item(t *testing.T, g *Game, key string) *domain.Actor {
	t.Helper()
	a, err := g.Library.CreateItem(key)
	require.NoError(t, err)
	return a
}

func cmd(t *testing.T, action string, payload any) api.ClientCommand {
	t.Helper()
	c := api.ClientCommand{Action: action}
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		c.Payload = raw
	}
	return c
}

func messageTexts(g *Game) []string {
	var out []string
	for _, m := range g.Buffer.Messages() {
		out = append(out, m.Text)
	}
	return out
}
