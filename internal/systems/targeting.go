package systems

import (
	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
	"github.com/Frostlock/Warrens-II/internal/domain"
)

// PossibleTargets - допустимые цели для предмета item в руках seeker.
// Список строится по видимым тайлам уровня (после UpdateFieldOfView):
//   - лечение: только сам seeker;
//   - спутывание: видимые монстры;
//   - урон: акторы на видимых тайлах и сами тайлы.
func PossibleTargets(w *World, seeker, item *domain.Actor) []Target {
	if item.Item == nil {
		return nil
	}
	lvl := w.Reg.LevelOf(seeker)
	if lvl == nil {
		return nil
	}

	switch item.Item.Effect.Kind {
	case enums.EffectKindHeal:
		return []Target{ActorTarget(seeker)}

	case enums.EffectKindConfuse:
		var out []Target
		for _, t := range VisibleTiles(lvl.Map) {
			for _, a := range w.Reg.ActorsAt(t) {
				if a.Monster != nil && a.IsAlive() {
					out = append(out, ActorTarget(a))
				}
			}
		}
		return out

	case enums.EffectKindDamage:
		visible := VisibleTiles(lvl.Map)
		var out []Target
		for _, t := range visible {
			for _, a := range w.Reg.ActorsAt(t) {
				out = append(out, ActorTarget(a))
			}
		}
		for _, t := range visible {
			out = append(out, TileTarget(t))
		}
		return out
	}
	return nil
}

// ValidateTarget проверяет, что target есть среди PossibleTargets.
// Для интерфейса: ошибка цели отдаётся как TargetError.
func ValidateTarget(w *World, seeker, item *domain.Actor, target Target) error {
	for _, candidate := range PossibleTargets(w, seeker, item) {
		if candidate == target {
			return nil
		}
	}
	kind := enums.EffectKindNone
	if item.Item != nil {
		kind = item.Item.Effect.Kind
	}
	return &domain.TargetError{Effect: kind, Target: target.String(), Reason: "not a valid target for " + item.Name}
}
