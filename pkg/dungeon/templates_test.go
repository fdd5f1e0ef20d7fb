package dungeon

import (
	"errors"
	"testing"

	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
	"github.com/Frostlock/Warrens-II/internal/domain"
	"github.com/Frostlock/Warrens-II/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLibrary(t *testing.T) *Library {
	t.Helper()
	lib, err := LoadLibrary(utils.NewRand(1))
	require.NoError(t, err)
	return lib
}

func TestLoadLibrary(t *testing.T) {
	lib := newLibrary(t)

	assert.Contains(t, lib.MonsterKeys(), "rat")
	for _, key := range []string{"healingvial", "healingpotion", "lightning", "fireball", "firenova", "tremor", "confuse", "cloak"} {
		assert.Contains(t, lib.ItemKeys(), key)
	}

	mods, err := lib.ModifiersFor("firenova")
	require.NoError(t, err)
	assert.Contains(t, mods, "double")
	assert.NotContains(t, mods, "sturdy")
}

func TestNewLibrary_UnknownNamesFailAtLoad(t *testing.T) {
	tests := []struct {
		name      string
		monsters  []MonsterTemplate
		items     []ItemTemplate
		modifiers []ModifierTemplate
	}{
		{"ai", []MonsterTemplate{{Key: "imp", AI: "sneaky"}}, nil, nil},
		{"effect", nil, []ItemTemplate{{Key: "wand", Type: "consumable", Effect: "teleport"}}, nil},
		{"element", nil, []ItemTemplate{{Key: "wand", Type: "consumable", Effect: "damage", EffectElement: "ACID"}}, nil},
		{"item type", nil, []ItemTemplate{{Key: "wand", Type: "weapon"}}, nil},
		{"modifier element", nil, nil, []ModifierTemplate{{Key: "acid", Type: "consumable", Element: "ACID"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLibrary(utils.NewRand(1), tt.monsters, tt.items, tt.modifiers)
			var lookupErr *domain.LookupError
			assert.True(t, errors.As(err, &lookupErr), "expected LookupError, got %v", err)
		})
	}
}

func TestLibrary_CreateMonster(t *testing.T) {
	lib := newLibrary(t)

	rat, err := lib.CreateMonster("rat")
	require.NoError(t, err)
	assert.Equal(t, enums.ActorKindMonster, rat.Kind)
	require.NotNil(t, rat.AI)
	assert.Equal(t, enums.AIKindBasic, rat.AI.Kind)
	assert.True(t, rat.IsAlive())
	assert.GreaterOrEqual(t, rat.Stats.MaxHP, 1)
	assert.LessOrEqual(t, rat.Stats.MaxHP, 4)
	assert.Equal(t, rat.Stats.MaxHP, rat.Stats.HP)

	_, err = lib.CreateMonster("dragon")
	var lookupErr *domain.LookupError
	assert.True(t, errors.As(err, &lookupErr))
}

func TestLibrary_UniqueMonsterOnlyOnce(t *testing.T) {
	lib := newLibrary(t)

	_, err := lib.CreateMonster("cannibal")
	require.NoError(t, err)

	_, err = lib.CreateMonster("cannibal")
	var stateErr *domain.StateError
	assert.True(t, errors.As(err, &stateErr))

	// Рейтинг 7 опустел, выбор спускается ниже
	m, err := lib.RandomMonster(7)
	require.NoError(t, err)
	assert.NotEqual(t, "cannibal", m.Key)
	assert.Less(t, m.Monster.ChallengeRating, 7)
}

func TestLibrary_RandomMonster(t *testing.T) {
	lib := newLibrary(t)

	for i := 0; i < 20; i++ {
		m, err := lib.RandomMonster(1)
		require.NoError(t, err)
		assert.Equal(t, 1, m.Monster.ChallengeRating)
	}

	_, err := lib.RandomMonster(0)
	var lookupErr *domain.LookupError
	assert.True(t, errors.As(err, &lookupErr))
}

func TestLibrary_GenerateMonster(t *testing.T) {
	lib := newLibrary(t)
	m := lib.GenerateMonster(3)

	assert.Equal(t, 30, m.Stats.Body)
	assert.Equal(t, 450, m.Monster.XPValue)
	assert.GreaterOrEqual(t, m.Stats.MaxHP, 3)
	assert.LessOrEqual(t, m.Stats.MaxHP, 24)
	assert.Equal(t, enums.AIKindBasic, m.AI.Kind)
}

func TestLibrary_CreateItem(t *testing.T) {
	lib := newLibrary(t)

	nova, err := lib.CreateItem("firenova", "double")
	require.NoError(t, err)
	assert.Equal(t, "Double scroll of fire nova", nova.DisplayName())
	assert.True(t, nova.Item.Stackable)

	spec := nova.Item.ResolvedEffect()
	assert.Equal(t, enums.EffectKindDamage, spec.Kind)
	assert.Equal(t, utils.HitDie{Count: 3, Sides: 6}, spec.HitDie)
	assert.Equal(t, 6, spec.Duration)
	assert.Equal(t, enums.ElementFire, spec.Element)
	assert.False(t, spec.Targeted)

	cloak, err := lib.CreateItem("cloak")
	require.NoError(t, err)
	assert.Equal(t, enums.ItemCategoryEquipment, cloak.Item.Category)
	assert.False(t, cloak.Item.Stackable)

	_, err = lib.CreateItem("cloak", "double")
	var stateErr *domain.StateError
	assert.True(t, errors.As(err, &stateErr), "consumable modifier on equipment")

	_, err = lib.CreateItem("firenova", "nope")
	var lookupErr *domain.LookupError
	assert.True(t, errors.As(err, &lookupErr))
}

func TestLibrary_RandomItem(t *testing.T) {
	lib := newLibrary(t)

	for lvl := 1; lvl < 14; lvl++ {
		item, err := lib.RandomItem(lvl)
		require.NoError(t, err, "level %d", lvl)
		for _, mod := range item.Item.Modifiers {
			tmpl := lib.modifiers[mod.Key]
			assert.Equal(t, item.Item.Category, tmpl.Category(), "modifier %s on %s", mod.Key, item.Key)
		}
	}

	_, err := lib.RandomItem(0)
	assert.Error(t, err)
}

func TestLibrary_Kits(t *testing.T) {
	lib := newLibrary(t)

	gear, err := lib.StartingGear()
	require.NoError(t, err)
	require.Len(t, gear, 2)
	assert.Equal(t, "healingpotion", gear[0].Key)

	quick, err := lib.QuickStartGear()
	require.NoError(t, err)
	assert.Len(t, quick, 7)

	assert.Len(t, lib.ChestLoot(), 13)
}

func TestMaxPerRoom(t *testing.T) {
	assert.Equal(t, 1, MaxMonstersPerRoom(1))
	assert.Equal(t, 2, MaxMonstersPerRoom(5))
	assert.Equal(t, 1, MaxItemsPerRoom(0))
}

func TestFactory(t *testing.T) {
	hero := CreatePlayer("Ewan")
	assert.Equal(t, 50, hero.Stats.HP)
	assert.Equal(t, domain.XPBase, hero.Player.NextLevelXP)

	down := CreatePortal(StairsDown)
	up := CreatePortal(StairsUp)
	assert.Equal(t, byte('>'), down.Char)
	assert.Equal(t, byte('<'), up.Char)

	reg := domain.NewRegistry()
	reg.Spawn(down)
	reg.Spawn(up)
	ConnectPortals(down, up)
	assert.Equal(t, up.ID, down.Portal.Destination)
	assert.Equal(t, down.ID, up.Portal.Destination)

	chest := CreateChest("Ancient chest", "A sturdy wooden chest.", true)
	assert.True(t, chest.Container.Locked)
	assert.Equal(t, enums.ActorKindChest, chest.Kind)
}
