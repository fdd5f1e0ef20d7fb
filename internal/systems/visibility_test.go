package systems

import (
	"testing"

	"github.com/Frostlock/Warrens-II/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestLineSegments(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 int
		want           []domain.Position
	}{
		{"single point", 2, 2, 2, 2, []domain.Position{{X: 2, Y: 2}}},
		{"shallow", 0, 0, 3, 1, []domain.Position{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 1}, {X: 3, Y: 1}}},
		{"reversed keeps source first", 3, 1, 0, 0, []domain.Position{{X: 3, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0}}},
		{"steep", 0, 0, 1, 3, []domain.Position{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 2}, {X: 1, Y: 3}}},
		{"diagonal", 0, 0, 2, 2, []domain.Position{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LineSegments(tt.x1, tt.y1, tt.x2, tt.y2))
		})
	}
}

func TestLineOfSight(t *testing.T) {
	// Карта 5x5
	// . . . . .
	// . . # . .  (2,1) - стена
	// . # # # .  (1,2), (2,2), (3,2) - стена
	// . . # . .  (2,3) - стена
	// . . . . .
	solid := make([][]bool, 5)
	for y := range solid {
		solid[y] = make([]bool, 5)
	}
	solid[1][2] = true
	solid[2][1] = true
	solid[2][2] = true
	solid[2][3] = true
	solid[3][2] = true

	tests := []struct {
		name   string
		p1, p2 domain.Position
		want   bool
	}{
		{"Clear horizontal", domain.Position{X: 0, Y: 0}, domain.Position{X: 4, Y: 0}, true},
		{"Blocked horizontal", domain.Position{X: 0, Y: 2}, domain.Position{X: 4, Y: 2}, false},
		{"Clear diagonal", domain.Position{X: 0, Y: 0}, domain.Position{X: 1, Y: 1}, true},
		{"Blocked diagonal", domain.Position{X: 0, Y: 0}, domain.Position{X: 4, Y: 4}, false}, // через (2,2)
		{"Adjacent wall", domain.Position{X: 1, Y: 1}, domain.Position{X: 2, Y: 1}, true},    // Стену рядом видно
		{"Wall behind wall", domain.Position{X: 0, Y: 2}, domain.Position{X: 2, Y: 2}, false},
		{"Behind wall", domain.Position{X: 2, Y: 0}, domain.Position{X: 2, Y: 4}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineOfSight(solid, tt.p1.X, tt.p1.Y, tt.p2.X, tt.p2.Y); got != tt.want {
				t.Errorf("LineOfSight(%v, %v) = %v, want %v", tt.p1, tt.p2, got, tt.want)
			}
		})
	}
}

func TestLineOfSight_FollowsMapChanges(t *testing.T) {
	_, lvl := newTestWorld(t, 5, 5)
	assert.True(t, LineOfSight(lvl.Map.Solid(), 0, 2, 4, 2))

	lvl.Map.Tile(2, 2).SetBlocked(true)
	assert.False(t, LineOfSight(lvl.Map.Solid(), 0, 2, 4, 2), "solid cache must follow tile changes")
}
