package systems

import (
	"strings"
	"testing"

	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
	"github.com/Frostlock/Warrens-II/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicAI(t *testing.T) {
	tests := []struct {
		name     string
		npcPos   domain.Position
		wantPos  domain.Position
		attacked bool
	}{
		{"Target Too Far", domain.Position{X: 5, Y: 15}, domain.Position{X: 5, Y: 15}, false},
		{"Target In Pursuit Range", domain.Position{X: 5, Y: 2}, domain.Position{X: 5, Y: 3}, false},
		{"Target In Melee Range", domain.Position{X: 5, Y: 4}, domain.Position{X: 5, Y: 4}, true},
		{"Diagonal Is Melee Range", domain.Position{X: 4, Y: 4}, domain.Position{X: 4, Y: 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, lvl := newTestWorld(t, 20, 20)
			spawnAt(t, w, lvl, newPlayer("Player"), 5, 5)
			npc := spawnAt(t, w, lvl, newMonster("Goblin"), tt.npcPos.X, tt.npcPos.Y)

			TakeTurn(w, npc)

			assert.Equal(t, tt.wantPos, npc.Pos)
			assert.Equal(t, tt.attacked, containsText(messages(w), "Goblin attacks Player"))
		})
	}
}

func TestBasicAI_SkipsDeadAndIdle(t *testing.T) {
	w, lvl := newTestWorld(t, 10, 10)
	player := spawnAt(t, w, lvl, newPlayer("Player"), 5, 5)
	npc := spawnAt(t, w, lvl, newMonster("Goblin"), 5, 4)

	npc.Stats.Alive = false
	TakeTurn(w, npc)
	assert.Empty(t, messages(w), "dead NPC should not act")

	npc.Stats.Alive = true
	player.Stats.Alive = false
	TakeTurn(w, npc)
	assert.Empty(t, messages(w), "no living player to chase")
}

func TestConfusedAI_RestoresOriginal(t *testing.T) {
	w, lvl := newTestWorld(t, 20, 20)
	npc := spawnAt(t, w, lvl, newMonster("orc"), 10, 10)
	original := npc.AI
	npc.AI = domain.NewConfusedAI(original, 3, 1)
	npc.Status.Confused = true

	prev := npc.Pos
	for turn := 1; turn <= 3; turn++ {
		require.Equal(t, enums.AIKindConfused, npc.AI.Kind, "turn %d", turn)
		TakeTurn(w, npc)
		assert.NotEqual(t, prev, npc.Pos, "turn %d: confused monster should stumble", turn)
		assert.True(t, npc.Pos.IsAdjacent(prev))
		prev = npc.Pos
	}

	assert.Same(t, original, npc.AI)
	assert.False(t, npc.Status.Confused)
	assert.Contains(t, messages(w), "Orc is no longer confused.")
}

func TestConfusedAI_Trapped(t *testing.T) {
	w, lvl := newTestWorld(t, 5, 5)
	npc := spawnAt(t, w, lvl, newMonster("orc"), 2, 2)
	for _, d := range domain.Directions8 {
		lvl.Map.Tile(2+d.X, 2+d.Y).SetBlocked(true)
	}
	original := npc.AI
	npc.AI = domain.NewConfusedAI(original, 2, 1)

	TakeTurn(w, npc)
	assert.Equal(t, domain.Position{X: 2, Y: 2}, npc.Pos)
	assert.Equal(t, 1, npc.AI.Turns)

	TakeTurn(w, npc)
	assert.Same(t, original, npc.AI)
}

func containsText(texts []string, sub string) bool {
	for _, s := range texts {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
