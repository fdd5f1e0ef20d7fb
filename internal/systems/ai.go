package systems

import (
	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
	"github.com/Frostlock/Warrens-II/internal/domain"
	"github.com/Frostlock/Warrens-II/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Behavior - реализация одного вида ИИ.
type Behavior interface {
	TakeTurn(w *World, lvl *domain.Level, npc *domain.Actor)
}

var behaviors = map[enums.AIKind]Behavior{
	enums.AIKindBasic:    basicBehavior{},
	enums.AIKindConfused: confusedBehavior{},
}

// BehaviorFor возвращает реализацию для вида ИИ или nil.
func BehaviorFor(kind enums.AIKind) Behavior {
	return behaviors[kind]
}

// TakeTurn даёт персонажу сделать ход согласно его ИИ.
// Мёртвые, персонажи без ИИ и персонажи вне карты пропускают ход.
func TakeTurn(w *World, npc *domain.Actor) {
	if npc.AI == nil || !npc.IsAlive() {
		return
	}
	lvl := w.Reg.LevelOf(npc)
	if lvl == nil {
		return
	}
	b := BehaviorFor(npc.AI.Kind)
	if b == nil {
		aiLogger(npc).WithField("ai", npc.AI.Kind.String()).Warn("No behavior for AI kind")
		return
	}
	b.TakeTurn(w, lvl, npc)
}

// basicBehavior идёт к ближайшему живому игроку на уровне и атакует вплотную.
type basicBehavior struct{}

func (basicBehavior) TakeTurn(w *World, lvl *domain.Level, npc *domain.Actor) {
	log := aiLogger(npc)

	player := nearestPlayer(w, lvl, npc.Pos)
	if player == nil {
		log.Trace("No player found, staying put")
		return
	}

	dist := npc.Pos.DistanceTo(player.Pos)
	log = log.WithField("distance", dist)

	switch {
	case dist > float64(npc.AI.SightRange):
		return
	case dist < float64(npc.AI.AttackRange):
		log.Debug("Attacking player")
		Attack(w, npc, player)
	default:
		res := MoveTowards(w, npc, player.Pos)
		log.WithField("moved", res.HasMoved).Debug("Moving towards player")
	}
}

// confusedBehavior бродит в случайную свободную сторону.
// Счётчик Turns свой, по нулю возвращается исходный ИИ.
type confusedBehavior struct{}

func (confusedBehavior) TakeTurn(w *World, lvl *domain.Level, npc *domain.Actor) {
	w.Emit(enums.MessageGame, "%s stumbles around (confused).", title(npc.Name))

	if dir, ok := randomFreeDirection(w, lvl, npc.Pos); ok {
		MoveAlongVector(w, npc, dir.X, dir.Y)
	}

	ai := npc.AI
	ai.Turns--
	if ai.Turns <= 0 {
		npc.AI = ai.Original
		npc.Status.Confused = false
		w.Emit(enums.MessageGame, "%s is no longer confused.", title(npc.Name))
		aiLogger(npc).WithField("effect_id", ai.EffectID).Debug("Confusion ended")
	}
}

// randomFreeDirection перебирает соседние клетки в случайном порядке
// и возвращает первую пустую и проходимую.
func randomFreeDirection(w *World, lvl *domain.Level, from domain.Position) (domain.Position, bool) {
	for _, i := range w.Rng.Perm(len(domain.Directions8)) {
		d := domain.Directions8[i]
		t := lvl.Map.Tile(from.X+d.X, from.Y+d.Y)
		if t != nil && t.Empty() && !t.Blocked() {
			return d, true
		}
	}
	return domain.Position{}, false
}

func nearestPlayer(w *World, lvl *domain.Level, from domain.Position) *domain.Actor {
	var best *domain.Actor
	bestDist := 0
	for _, c := range w.Reg.Resolve(lvl.Characters) {
		if c.Kind != enums.ActorKindPlayer || !c.IsAlive() {
			continue
		}
		d := from.DistanceSquaredTo(c.Pos)
		if best == nil || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func aiLogger(npc *domain.Actor) *logrus.Entry {
	return logger.Log.WithFields(logrus.Fields{
		"component": "ai_system",
		"npc":       npc.Name,
		"npc_id":    npc.ID,
	})
}
