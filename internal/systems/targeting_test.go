package systems

import (
	"errors"
	"testing"

	"github.com/Frostlock/Warrens-II/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestPossibleTargets(t *testing.T) {
	w, lvl := newTestWorld(t, 30, 5)
	hero := spawnAt(t, w, lvl, newPlayer("Hero"), 1, 2)
	near := spawnAt(t, w, lvl, newMonster("near"), 4, 2)
	far := spawnAt(t, w, lvl, newMonster("far"), 25, 2)
	UpdateFieldOfView(w.Reg, lvl, hero.Pos)

	potion := spawnInto(t, w, hero, newConsumable("healingpotion", healSpec))
	scroll := spawnInto(t, w, hero, newConsumable("confuse", confuseSpec))
	nova := spawnInto(t, w, hero, newConsumable("firenova", novaSpec))

	assert.Equal(t, []Target{ActorTarget(hero)}, PossibleTargets(w, hero, potion))

	confuseTargets := PossibleTargets(w, hero, scroll)
	assert.Equal(t, []Target{ActorTarget(near)}, confuseTargets)

	damageTargets := PossibleTargets(w, hero, nova)
	assert.Contains(t, damageTargets, ActorTarget(near))
	assert.Contains(t, damageTargets, ActorTarget(hero))
	assert.Contains(t, damageTargets, TileTarget(lvl.Map.Tile(5, 2)))
	assert.NotContains(t, damageTargets, ActorTarget(far))
	assert.Len(t, damageTargets, 2+lvl.Map.CountInView())

	assert.NoError(t, ValidateTarget(w, hero, scroll, ActorTarget(near)))
	var targetErr *domain.TargetError
	assert.True(t, errors.As(ValidateTarget(w, hero, scroll, ActorTarget(far)), &targetErr))
}
