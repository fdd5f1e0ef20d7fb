package domain

import "github.com/Frostlock/Warrens-II/internal/core/types/enums"

// AI - мозги монстра. Поведение выбирается по Kind в systems.
type AI struct {
	Kind        enums.AIKind `json:"kind"`
	SightRange  int          `json:"sightRange"`
	AttackRange int          `json:"attackRange"`

	// Поля растерянного поведения.
	// Original - AI, который вернётся монстру, когда счётчик Turns дойдёт до нуля.
	Original *AI `json:"-"`
	Turns    int `json:"turns,omitempty"`
	EffectID int `json:"effectId,omitempty"`
}

func NewBasicAI() *AI {
	return &AI{
		Kind:        enums.AIKindBasic,
		SightRange:  MonsterSightRange,
		AttackRange: MonsterAttackRange,
	}
}

// NewConfusedAI оборачивает текущий AI на turns ходов.
func NewConfusedAI(original *AI, turns, effectID int) *AI {
	return &AI{
		Kind:     enums.AIKindConfused,
		Original: original,
		Turns:    turns,
		EffectID: effectID,
	}
}
