package engine

import (
	"context"
	"time"

	"github.com/Frostlock/Warrens-II/internal/domain"
	"github.com/Frostlock/Warrens-II/internal/systems"
	"github.com/Frostlock/Warrens-II/internal/telemetry"
	"github.com/Frostlock/Warrens-II/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// Realm - игра в реальном времени. Каждый корневой уровень делает шаг
// раз в interval, независимо от действий игрока. Вложенные уровни
// шагают вместе со своим корнем.
type Realm struct {
	Game *Game

	scheduler  *TurnManager
	clockMs    int64
	intervalMs int64
	steps      int64
	log        *logrus.Entry
}

func NewRealm(g *Game, interval time.Duration) *Realm {
	r := &Realm{
		Game:       g,
		scheduler:  NewTurnManager(),
		intervalMs: max(interval.Milliseconds(), 1),
		log:        logger.For("realm"),
	}
	for _, lvl := range g.Levels {
		r.scheduler.AddLevel(lvl, r.intervalMs)
	}
	return r
}

// ClockMs - время симуляции.
func (r *Realm) ClockMs() int64 { return r.clockMs }

// Steps - сколько шагов уровней сделано с начала.
func (r *Realm) Steps() int64 { return r.steps }

// Tick продвигает часы на elapsedMs и проигрывает все наступившие шаги
// в порядке времени. Возвращает число сделанных шагов.
func (r *Realm) Tick(ctx context.Context, elapsedMs int64) int {
	if elapsedMs <= 0 {
		return 0
	}
	r.clockMs += elapsedMs

	done := 0
	for {
		lvl, due, ok := r.scheduler.Next()
		if !ok || due > r.clockMs {
			break
		}
		r.step(ctx, lvl)
		r.scheduler.Reschedule(lvl.ID, due+r.intervalMs)
		done++
	}
	return done
}

// step проигрывает шаг корневого уровня вместе с вложенными.
func (r *Realm) step(ctx context.Context, root *domain.Level) {
	_, span := telemetry.Tracer("engine").Start(ctx, "realm.step")
	defer span.End()

	r.steps++
	acted := r.stepLevel(root)

	// Игрок сходил в этом дереве - флаг снимается, как в пошаговом режиме
	g := r.Game
	if lvl := g.CurrentLevel(); lvl != nil && rootOf(lvl) == root && g.Player.Player != nil {
		g.Player.Player.ActionTaken = false
	}

	span.SetAttributes(
		attribute.String("realm.level", root.Name),
		attribute.Int64("realm.clock_ms", r.clockMs),
		attribute.Int("realm.acted", acted),
	)
	r.log.WithFields(logrus.Fields{
		"level": root.Name,
		"clock": r.clockMs,
		"acted": acted,
	}).Trace("Level stepped")
}

// stepLevel: вложенные уровни, потом на каждом уровне персонажи,
// поле зрения игрока (если он здесь) и эффекты. Порядок тот же, что в AdvanceTurn.
func (r *Realm) stepLevel(lvl *domain.Level) int {
	acted := 0
	for _, sub := range lvl.SubLevels {
		acted += r.stepLevel(sub)
	}

	g := r.Game
	acted += actCharacters(g.World, lvl)
	if g.CurrentLevel() == lvl {
		systems.UpdateFieldOfView(g.World.Reg, lvl, g.Player.Pos)
	}
	systems.TickEffects(g.World, lvl)
	return acted
}

func rootOf(lvl *domain.Level) *domain.Level {
	for lvl.Parent != nil {
		lvl = lvl.Parent
	}
	return lvl
}

// Schedule - состояние планировщика для отладки.
func (r *Realm) Schedule() []ScheduleEntry {
	return r.scheduler.Entries()
}
