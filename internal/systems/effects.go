package systems

import (
	"fmt"

	"github.com/Frostlock/Warrens-II/internal/core/types"
	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
	"github.com/Frostlock/Warrens-II/internal/domain"
	"github.com/Frostlock/Warrens-II/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// Target - цель эффекта: актор или тайл.
type Target struct {
	Actor *domain.Actor
	Tile  *domain.Tile
}

func ActorTarget(a *domain.Actor) Target { return Target{Actor: a} }
func TileTarget(t *domain.Tile) Target   { return Target{Tile: t} }

func (t Target) String() string {
	switch {
	case t.Actor != nil:
		return t.Actor.String()
	case t.Tile != nil:
		return fmt.Sprintf("tile (%d,%d)", t.Tile.X, t.Tile.Y)
	default:
		return "nothing"
	}
}

// EffectBehavior - реализация одного вида эффекта.
type EffectBehavior interface {
	Apply(w *World, lvl *domain.Level, e *domain.Effect, target Target) error
	Tick(w *World, lvl *domain.Level, e *domain.Effect)
}

var effectBehaviors = map[enums.EffectKind]EffectBehavior{
	enums.EffectKindHeal:    healEffect{},
	enums.EffectKindConfuse: confuseEffect{},
	enums.EffectKindDamage:  damageEffect{},
}

var effectDescriptions = map[enums.EffectKind]string{
	enums.EffectKindHeal:    "Wounds close, bones knit.",
	enums.EffectKindConfuse: "An eerie melody plays in the distance.",
	enums.EffectKindDamage:  "The area is bombarded by magical energy.",
}

// NewItemEffect создаёт эффект расходника. Параметры предмета
// (с учётом модификаторов) фиксируются в момент создания.
func NewItemEffect(w *World, item, wielder *domain.Actor) (*domain.Effect, error) {
	if item.Item == nil || item.Item.Effect.Kind == enums.EffectKindNone {
		return nil, &domain.StateError{Op: "use " + item.Name, Reason: "item has no effect"}
	}
	source := domain.EffectSource{
		Name: item.Name,
		Item: item.ID,
		Spec: item.Item.ResolvedEffect(),
	}
	if wielder != nil {
		source.Wielder = wielder.ID
	}
	e := domain.NewEffect(w.newEffectID(), source, types.NoLevel)
	e.Description = effectDescriptions[e.Kind]
	return e, nil
}

// ApplyEffect применяет эффект к цели и регистрирует его на уровне цели.
// lvl - уровень по умолчанию, если цель не стоит на карте.
// Неподходящая цель - TargetError, эффект при этом сразу истекает.
func ApplyEffect(w *World, lvl *domain.Level, e *domain.Effect, target Target) error {
	b := effectBehaviors[e.Kind]
	if b == nil {
		return &domain.LookupError{Kind: "effect", Key: e.Kind.String()}
	}
	if l := levelOfTarget(w, target); l != nil {
		lvl = l
	}
	if lvl == nil {
		return &domain.TargetError{Effect: e.Kind, Target: target.String(), Reason: "target is not on a level"}
	}

	if err := b.Apply(w, lvl, e, target); err != nil {
		_ = e.Transition(enums.EffectExpired)
		return err
	}
	if err := e.Transition(enums.EffectApplied); err != nil {
		return err
	}
	e.Level = lvl.ID
	lvl.AddEffect(e)

	effectLogger(e).WithFields(logrus.Fields{
		"level":  lvl.Name,
		"target": target.String(),
	}).Info("Effect applied")
	return nil
}

// TickEffects продвигает все активные эффекты уровня на один ход
// и убирает истёкшие. Эффект уходит из списка в тот же ход, когда его
// длительность дошла до нуля. Возвращает число убранных эффектов.
func TickEffects(w *World, lvl *domain.Level) int {
	// Стихийные флаги держатся один ход, живые эффекты ставят их заново
	for _, a := range w.Reg.Resolve(lvl.Characters) {
		clearElementStatus(a)
	}

	active := append([]*domain.Effect(nil), lvl.ActiveEffects...)
	for _, e := range active {
		if e.Expired() {
			continue
		}
		if e.State == enums.EffectApplied {
			_ = e.Transition(enums.EffectTicking)
		}
		if b := effectBehaviors[e.Kind]; b != nil {
			b.Tick(w, lvl, e)
		}
	}

	removed := 0
	for _, e := range active {
		if e.Expired() && lvl.RemoveEffect(e) {
			removed++
			effectLogger(e).Debug("Effect expired")
		}
	}
	return removed
}

// --- HEAL ---

type healEffect struct{}

func (healEffect) Apply(w *World, lvl *domain.Level, e *domain.Effect, target Target) error {
	a := target.Actor
	if a == nil || !a.IsCharacter() {
		return &domain.TargetError{Effect: e.Kind, Target: target.String(), Reason: "only characters can be healed"}
	}
	if !a.IsAlive() {
		return &domain.StateError{Op: "heal " + a.Name, Reason: "character is dead"}
	}
	e.Actors = append(e.Actors, a.ID)
	return nil
}

func (healEffect) Tick(w *World, lvl *domain.Level, e *domain.Effect) {
	countDown(e)
	for _, a := range w.Reg.Resolve(e.Actors) {
		amount := e.Source.Spec.HitDie.Roll(w.Rng)
		if a.Stats.Heal(amount) > 0 {
			w.Emit(enums.MessageGame, "%s gains %d hitpoints from a %s.", title(a.Name), amount, e.Source.Name)
		}
	}
}

// --- CONFUSE ---

type confuseEffect struct{}

func (confuseEffect) Apply(w *World, lvl *domain.Level, e *domain.Effect, target Target) error {
	a := target.Actor
	if a == nil || a.Monster == nil || a.AI == nil {
		return &domain.TargetError{Effect: e.Kind, Target: target.String(), Reason: "only monsters can be confused"}
	}

	original := a.AI
	if original.Kind == enums.AIKindConfused {
		original = original.Original
	}
	a.AI = domain.NewConfusedAI(original, e.Remaining, e.ID)
	a.Status.Confused = true
	e.Actors = append(e.Actors, a.ID)

	w.Emit(enums.MessageGame, "%s is confused for %d turns.", title(a.Name), e.Remaining)
	return nil
}

// Tick только отсчитывает длительность: у спутанного ИИ свой счётчик.
func (confuseEffect) Tick(w *World, lvl *domain.Level, e *domain.Effect) {
	countDown(e)
}

// --- DAMAGE ---

// damageEffect бьёт живых персонажей в зоне. Предметы, порталы и сундуки
// на тех же тайлах не задеваются и стихийных флагов не получают.
type damageEffect struct{}

func (damageEffect) Apply(w *World, lvl *domain.Level, e *domain.Effect, target Target) error {
	var center *domain.Tile
	switch {
	case target.Tile != nil:
		center = target.Tile
	case target.Actor != nil:
		// Актор на тайле или в чьём-то инвентаре
		center = w.Reg.TileOf(target.Actor)
		if center == nil {
			return &domain.TargetError{Effect: e.Kind, Target: target.String(), Reason: "actor is neither on a tile nor in an inventory"}
		}
	default:
		return &domain.TargetError{Effect: e.Kind, Target: target.String(), Reason: "no target"}
	}

	spec := e.Source.Spec
	tiles := lvl.Map.CircleTiles(center.X, center.Y, spec.Radius, true, true)

	centerPos := center.Pos()
	e.Center = &centerPos
	e.Tiles = e.Tiles[:0]
	for _, t := range tiles {
		// Нова не задевает клетку, из которой исходит
		if !spec.Targeted && t.Pos() == centerPos {
			continue
		}
		e.Tiles = append(e.Tiles, t.Pos())
	}
	return nil
}

func (damageEffect) Tick(w *World, lvl *domain.Level, e *domain.Effect) {
	element := e.Source.Spec.Element
	e.Actors = e.Actors[:0]

	if e.Remaining <= 0 {
		expire(e)
		return
	}
	e.Remaining--

	// Состав целей пересобирается каждый ход
	seen := mapset.New[types.ActorID]()
	var victims []*domain.Actor
	for _, p := range e.Tiles {
		t := lvl.Map.Tile(p.X, p.Y)
		if t == nil {
			continue
		}
		for _, a := range w.Reg.ActorsAt(t) {
			if !a.IsCharacter() || !a.IsAlive() || seen.Has(a.ID) {
				continue
			}
			seen.Put(a.ID)
			victims = append(victims, a)
		}
	}

	attacker := w.Reg.Get(e.Source.Wielder)
	for _, a := range victims {
		amount := e.Source.Spec.HitDie.Roll(w.Rng)
		w.Emit(enums.MessageGame, "%s hits %s for %d Damage.", title(e.Source.Name), a.Name, amount)
		e.Actors = append(e.Actors, a.ID)
		setElementStatus(a, element)
		TakeDamage(w, a, amount, attacker)
	}
	if e.Remaining == 0 {
		expire(e)
	}
}

func setElementStatus(a *domain.Actor, element enums.Element) {
	switch element {
	case enums.ElementFire:
		a.Status.OnFire = true
	case enums.ElementElectric:
		a.Status.Electrified = true
	case enums.ElementEarth:
		a.Status.EarthDamage = true
	default:
		logger.For("effects").WithField("element", element.String()).Trace("No status for element")
	}
}

func clearElementStatus(a *domain.Actor) {
	a.Status.OnFire = false
	a.Status.Electrified = false
	a.Status.EarthDamage = false
}

// countDown - общий отсчёт: минус ход, на нуле эффект истекает.
func countDown(e *domain.Effect) {
	e.Remaining--
	if e.Remaining <= 0 {
		e.Remaining = 0
		expire(e)
	}
}

func expire(e *domain.Effect) {
	if e.Expired() {
		return
	}
	_ = e.Transition(enums.EffectExpired)
}

// levelOfTarget - уровень, на котором находится цель, или nil.
func levelOfTarget(w *World, target Target) *domain.Level {
	a := target.Actor
	if a == nil {
		return nil
	}
	if l := w.Reg.LevelOf(a); l != nil {
		return l
	}
	return w.Reg.LevelOf(w.Reg.Get(a.Owner))
}

func effectLogger(e *domain.Effect) *logrus.Entry {
	return logger.Log.WithFields(logrus.Fields{
		"component": "effect_system",
		"effect_id": e.ID,
		"kind":      e.Kind.String(),
		"state":     e.State.String(),
		"remaining": e.Remaining,
	})
}
