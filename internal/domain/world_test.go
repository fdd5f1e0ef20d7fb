package domain

import (
	"errors"
	"testing"

	"github.com/Frostlock/Warrens-II/internal/core/types"
	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLevel(name string, w, h int) *Level {
	return NewLevel(name, 1, NewMap(w, h, enums.ArchetypeDungeon))
}

func TestRegistry_SpawnAndLookup(t *testing.T) {
	reg := NewRegistry()
	orc := &Actor{Kind: enums.ActorKindMonster, Name: "orc"}

	id := reg.Spawn(orc)
	require.False(t, id.IsNil())
	assert.Equal(t, uint8(enums.ActorKindMonster), id.Kind())

	got, err := reg.Actor(id)
	require.NoError(t, err)
	assert.Same(t, orc, got)
	assert.False(t, got.OnMap())

	reg.Despawn(id)
	_, err = reg.Actor(id)
	var lookupErr *LookupError
	assert.True(t, errors.As(err, &lookupErr), "stale handle must fail with LookupError")

	// Слот переиспользуется с новым поколением
	rat := &Actor{Kind: enums.ActorKindMonster, Name: "rat"}
	id2 := reg.Spawn(rat)
	assert.Equal(t, id.Index(), id2.Index())
	assert.NotEqual(t, id, id2)
	assert.Nil(t, reg.Get(id))
	assert.Equal(t, 1, reg.Count())
}

func TestRegistry_PlaceKeepsBothSidesInSync(t *testing.T) {
	reg := NewRegistry()
	town := newTestLevel("town", 5, 5)
	cellar := newTestLevel("cellar", 5, 5)
	reg.AddLevel(town)
	reg.AddLevel(cellar)

	hero := &Actor{Kind: enums.ActorKindPlayer, Name: "hero", Stats: NewBaseStats()}
	id := reg.Spawn(hero)

	require.NoError(t, reg.Place(id, town, 1, 1))
	assert.Equal(t, []types.ActorID{id}, town.Map.Tile(1, 1).Actors())
	assert.Contains(t, town.Characters, id)

	require.NoError(t, reg.Place(id, town, 2, 1))
	assert.True(t, town.Map.Tile(1, 1).Empty())
	assert.Equal(t, Position{X: 2, Y: 1}, hero.Pos)
	assert.Len(t, town.Characters, 1)

	require.NoError(t, reg.Place(id, cellar, 3, 3))
	assert.True(t, town.Map.Tile(2, 1).Empty())
	assert.NotContains(t, town.Characters, id)
	assert.Contains(t, cellar.Characters, id)
	assert.Same(t, cellar, reg.LevelOf(hero))

	err := reg.Place(id, cellar, 9, 9)
	var stateErr *StateError
	assert.True(t, errors.As(err, &stateErr))

	reg.Remove(id)
	assert.True(t, cellar.Map.Tile(3, 3).Empty())
	assert.False(t, hero.OnMap())
}

func TestRegistry_TileOfFollowsOwner(t *testing.T) {
	reg := NewRegistry()
	lvl := newTestLevel("dungeon", 5, 5)
	reg.AddLevel(lvl)

	hero := &Actor{Kind: enums.ActorKindPlayer, Name: "hero"}
	heroID := reg.Spawn(hero)
	require.NoError(t, reg.Place(heroID, lvl, 2, 3))

	scroll := &Actor{Kind: enums.ActorKindItem, Name: "scroll", Owner: heroID}
	reg.Spawn(scroll)
	scroll.Owner = heroID

	tile := reg.TileOf(scroll)
	require.NotNil(t, tile)
	assert.Equal(t, Position{X: 2, Y: 3}, tile.Pos())
}

func TestRegistry_AddLevelRegistersSubLevels(t *testing.T) {
	reg := NewRegistry()
	town := newTestLevel("town", 5, 5)
	house := newTestLevel("house", 5, 5)
	town.AddSubLevel(house)

	reg.AddLevel(town)
	assert.Equal(t, types.LevelID(0), town.ID)
	assert.Equal(t, types.LevelID(1), house.ID)
	assert.Same(t, town, house.Parent)

	got, err := reg.Level(house.ID)
	require.NoError(t, err)
	assert.Same(t, house, got)

	_, err = reg.Level(7)
	assert.Error(t, err)
}

func TestLevel_EffectsRegisteredOnce(t *testing.T) {
	lvl := newTestLevel("dungeon", 3, 3)
	e := NewEffect(1, EffectSource{Spec: EffectSpec{Kind: enums.EffectKindHeal, Duration: 2}}, lvl.ID)

	lvl.AddEffect(e)
	lvl.AddEffect(e)
	assert.Len(t, lvl.ActiveEffects, 1)

	assert.True(t, lvl.RemoveEffect(e))
	assert.False(t, lvl.RemoveEffect(e))
}

func TestEffect_Transitions(t *testing.T) {
	e := NewEffect(1, EffectSource{Spec: EffectSpec{Kind: enums.EffectKindDamage, Duration: 1}}, 0)
	assert.Equal(t, enums.TargetTile, e.Target)

	require.NoError(t, e.Transition(enums.EffectApplied))
	require.NoError(t, e.Transition(enums.EffectTicking))
	require.NoError(t, e.Transition(enums.EffectTicking))
	require.NoError(t, e.Transition(enums.EffectExpired))

	err := e.Transition(enums.EffectTicking)
	var stateErr *StateError
	assert.True(t, errors.As(err, &stateErr), "expired effects never restart")
}

func TestActor_DisplayName(t *testing.T) {
	fire := enums.ElementFire
	scroll := &Actor{
		Kind: enums.ActorKindItem,
		Name: "Firenova",
		Item: &ItemComponent{
			Category:  enums.ItemCategoryConsumable,
			Stackable: true,
			StackSize: 3,
			Modifiers: []Modifier{
				{Key: "double", Name: "Double", Position: enums.ModifierPrefix, Element: &fire},
				{Key: "fury", Name: "of Fury", Position: enums.ModifierSuffix},
			},
		},
	}
	assert.Equal(t, "Double firenova of fury (stack: 3)", scroll.DisplayName())

	cloak := &Actor{Kind: enums.ActorKindItem, Name: "cloak", Item: &ItemComponent{Category: enums.ItemCategoryEquipment, Equipped: true}}
	assert.Equal(t, "Cloak (equipped)", cloak.DisplayName())
}

func TestStats_HealAndDamage(t *testing.T) {
	s := NewBaseStats()
	assert.Equal(t, 50, s.MaxHP)

	s.HP = 10
	assert.Equal(t, 40, s.Heal(100))
	assert.Equal(t, 50, s.HP)

	assert.False(t, s.TakeDamage(0))
	assert.True(t, s.TakeDamage(60))
	assert.False(t, s.Alive)
	assert.False(t, s.TakeDamage(5), "already dead")
	assert.Equal(t, 0, s.Heal(5), "dead characters are not healed")
}
