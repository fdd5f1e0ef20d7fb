package domain

import (
	"fmt"

	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
)

// GenerationError - карту запрошенного размера построить нельзя.
type GenerationError struct {
	Archetype enums.Archetype
	Width     int
	Height    int
	Reason    string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %s map %dx%d: %s", e.Archetype, e.Width, e.Height, e.Reason)
}

// TargetError - эффект применён к цели неподходящего вида.
type TargetError struct {
	Effect enums.EffectKind
	Target string
	Reason string
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("can not apply %s effect to %s: %s", e.Effect, e.Target, e.Reason)
}

// LookupError - неизвестный ключ шаблона или устаревший хэндл.
type LookupError struct {
	Kind string
	Key  string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

// StateError - операция недопустима в текущем состоянии
// (мёртвый персонаж, запертый сундук, пустой стек).
type StateError struct {
	Op     string
	Reason string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}
