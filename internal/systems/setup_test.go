package systems

import (
	"os"
	"testing"

	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
	"github.com/Frostlock/Warrens-II/internal/domain"
	"github.com/Frostlock/Warrens-II/pkg/logger"
	"github.com/Frostlock/Warrens-II/pkg/utils"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()
	logger.Silence()

	// Exit with the result of the tests
	os.Exit(m.Run())
}

// newTestWorld - открытая карта w x h без стен.
func newTestWorld(t *testing.T, w, h int) (*World, *domain.Level) {
	t.Helper()
	reg := domain.NewRegistry()
	lvl := domain.NewLevel("test level", 1, domain.NewMap(w, h, enums.ArchetypeDungeon))
	reg.AddLevel(lvl)
	return NewWorld(reg, utils.NewRand(1), &domain.RecordingSink{}), lvl
}

func messages(w *World) []string {
	return w.Events.(*domain.RecordingSink).Texts()
}

func spawnAt(t *testing.T, w *World, lvl *domain.Level, a *domain.Actor, x, y int) *domain.Actor {
	t.Helper()
	w.Reg.Spawn(a)
	require.NoError(t, w.Reg.Place(a.ID, lvl, x, y))
	return a
}

func spawnInto(t *testing.T, w *World, owner, item *domain.Actor) *domain.Actor {
	t.Helper()
	w.Reg.Spawn(item)
	stored, err := AddToInventory(w, owner, item)
	require.NoError(t, err)
	return stored
}

func newPlayer(name string) *domain.Actor {
	return &domain.Actor{
		Kind:      enums.ActorKindPlayer,
		Name:      name,
		Char:      '@',
		Stats:     domain.NewBaseStats(),
		Inventory: &domain.InventoryComponent{},
		Player:    &domain.PlayerComponent{Level: 1, NextLevelXP: domain.NextLevelXP(1)},
	}
}

func newMonster(name string) *domain.Actor {
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
		Monster:   &domain.MonsterComponent{XPValue: 50},
	}
}

func newConsumable(key string, spec domain.EffectSpec) *domain.Actor {
	return &domain.Actor{
		Kind: enums.ActorKindItem,
		Key:  key,
		Name: key,
		Char: '!',
		Item: &domain.ItemComponent{
			Category:  enums.ItemCategoryConsumable,
			Stackable: true,
			StackSize: 1,
			Effect:    spec,
		},
	}
}

func newEquipment(key string, bonuses domain.Bonuses) *domain.Actor {
	return &domain.Actor{
		Kind: enums.ActorKindItem,
		Key:  key,
		Name: key,
		Char: '[',
		Item: &domain.ItemComponent{
			Category:  enums.ItemCategoryEquipment,
			StackSize: 1,
			Bonuses:   bonuses,
		},
	}
}

var (
	healSpec = domain.EffectSpec{
		Kind:     enums.EffectKindHeal,
		HitDie:   utils.HitDie{Count: 2, Sides: 6},
		Duration: 2,
		Element:  enums.ElementHeal,
	}
	novaSpec = domain.EffectSpec{
		Kind:     enums.EffectKindDamage,
		HitDie:   utils.HitDie{Count: 2, Sides: 6},
		Radius:   2,
		Duration: 1,
		Element:  enums.ElementFire,
	}
	confuseSpec = domain.EffectSpec{
		Kind:     enums.EffectKindConfuse,
		Duration: 5,
		Element:  enums.ElementMind,
		Targeted: true,
	}
)
