package domain

import (
	"fmt"

	"github.com/Frostlock/Warrens-II/internal/core/types"
	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
)

// EffectSource - снимок параметров источника на момент создания эффекта.
type EffectSource struct {
	Name    string        `json:"name"`
	Item    types.ActorID `json:"item"`
	Wielder types.ActorID `json:"wielder"`
	Spec    EffectSpec    `json:"spec"`
}

// Effect - активный эффект на уровне.
type Effect struct {
	ID     int               `json:"id"`
	Kind   enums.EffectKind  `json:"kind"`
	Target enums.TargetKind  `json:"target"`
	State  enums.EffectState `json:"state"`
	Source EffectSource      `json:"source"`
	Level  types.LevelID     `json:"level"`

	// Remaining - оставшаяся длительность в ходах. Не растёт.
	Remaining   int    `json:"remaining"`
	Description string `json:"description"`

	Center *Position       `json:"center,omitempty"`
	Tiles  []Position      `json:"tiles,omitempty"`
	Actors []types.ActorID `json:"actors,omitempty"`
}

func NewEffect(id int, source EffectSource, level types.LevelID) *Effect {
	return &Effect{
		ID:        id,
		Kind:      source.Spec.Kind,
		Target:    source.Spec.Kind.Target(),
		State:     enums.EffectCreated,
		Source:    source,
		Level:     level,
		Remaining: source.Spec.Duration,
	}
}

var effectTransitions = map[enums.EffectState][]enums.EffectState{
	enums.EffectCreated: {enums.EffectApplied, enums.EffectExpired},
	enums.EffectApplied: {enums.EffectTicking, enums.EffectExpired},
	enums.EffectTicking: {enums.EffectTicking, enums.EffectExpired},
}

// Transition переводит эффект в следующее состояние.
// Из EXPIRED выхода нет.
func (e *Effect) Transition(to enums.EffectState) error {
	for _, allowed := range effectTransitions[e.State] {
		if allowed == to {
			e.State = to
			return nil
		}
	}
	return &StateError{
		Op:     fmt.Sprintf("effect %d transition", e.ID),
		Reason: fmt.Sprintf("%s -> %s is not allowed", e.State, to),
	}
}

func (e *Effect) Expired() bool {
	return e.State == enums.EffectExpired
}
