package agent

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/Frostlock/Warrens-II/internal/domain"
	"github.com/Frostlock/Warrens-II/pkg/api"
	"github.com/Frostlock/Warrens-II/pkg/logger"
	"github.com/Frostlock/Warrens-II/pkg/utils"
	"github.com/sirupsen/logrus"
)

const (
	botSightRange = 8
	healThreshold = 2 // лечимся, когда HP < MaxHP / healThreshold
)

// CommandSink - куда бот отправляет команды (engine.Service).
type CommandSink interface {
	Submit(cmd api.ClientCommand) bool
}

// Subscriber - откуда бот получает снимки (network.Broadcaster).
type Subscriber interface {
	Register(clientID string) chan *api.Snapshot
	Unregister(clientID string)
}

// Bot - автопилот игрока (Headless Agent).
// Это ВНЕШНИЙ клиент: он видит только снимки, как и любой подписчик,
// и управляет игроком через ту же очередь команд.
//
// Жизненный цикл:
//  1. NewBot -> Регистрация в хабе, получение личного канала (Inbox).
//  2. Run -> Запуск в отдельной горутине, слушает свой Inbox.
//  3. На каждый новый снимок decide выбирает одну команду.
type Bot struct {
	ID    string
	Sink  CommandSink
	Hub   Subscriber
	Inbox chan *api.Snapshot

	// Delay - пауза между командами, чтобы за игрой можно было следить.
	Delay time.Duration

	rng *rand.Rand
	log *logrus.Entry
}

func NewBot(id string, sink CommandSink, hub Subscriber, seed int64, delay time.Duration) *Bot {
	return &Bot{
		ID:    id,
		Sink:  sink,
		Hub:   hub,
		Inbox: hub.Register(id),
		Delay: delay,
		rng:   utils.NewRand(seed),
		log:   logger.Log.WithFields(logrus.Fields{"component": "bot", "bot": id}),
	}
}

// Run запускает цикл жизни бота. Должен быть запущен в горутине.
func (b *Bot) Run(ctx context.Context) {
	defer b.Hub.Unregister(b.ID)
	b.log.Info("Autopilot started")

	for {
		select {
		case <-ctx.Done():
			b.log.Info("Autopilot stopped")
			return
		case snap, ok := <-b.Inbox:
			if !ok {
				return
			}
			if snap.Player == nil || !snap.Player.Stats.Alive {
				b.log.Info("Player is dead, autopilot shut down")
				return
			}
			// Одна команда на один снимок: после каждой команды сервис публикует новый
			cmd := b.decide(snap)

			if b.Delay > 0 {
				select {
				case <-ctx.Done():
					return
				case <-time.After(b.Delay):
				}
			}
			b.Sink.Submit(cmd)
		}
	}
}

// decide - мозг бота. Приоритеты: лечение, бой, подбор, спуск, разведка.
func (b *Bot) decide(snap *api.Snapshot) api.ClientCommand {
	me := findSelf(snap)
	if me == nil {
		return command(domain.ActionWait, nil)
	}
	p := snap.Player

	// 1. Лечение
	if p.Stats.HP*healThreshold < p.Stats.MaxHP {
		for _, item := range p.Items {
			if item.Effect == "HEAL" {
				return command(domain.ActionUseItem, api.UsePayload{ItemID: item.ID})
			}
		}
	}

	// 2. Бой: ближайший живой монстр в поле зрения
	if target := nearest(snap, me, func(a api.ActorView) bool { return a.Kind == "MONSTER" && a.Alive }); target != nil {
		if dist(me, target) <= botSightRange {
			return b.stepTowards(snap, me, target.X, target.Y)
		}
	}

	// 3. Подбор предмета под ногами
	for _, a := range snap.Actors {
		if a.X == me.X && a.Y == me.Y && a.Kind == "ITEM" {
			return command(domain.ActionInteract, nil)
		}
	}

	// 4. Спуск: стоим на лестнице вниз - идём, видим её - шагаем к ней
	isDown := func(a api.ActorView) bool { return a.Kind == "PORTAL" && a.Char == ">" }
	if stairs := nearest(snap, me, isDown); stairs != nil {
		if stairs.X == me.X && stairs.Y == me.Y {
			return command(domain.ActionPortal, api.PortalPayload{Direction: "down"})
		}
		return b.stepTowards(snap, me, stairs.X, stairs.Y)
	}

	// 5. Разведка
	return b.wander(snap, me)
}

func (b *Bot) stepTowards(snap *api.Snapshot, me *api.ActorView, x, y int) api.ClientCommand {
	dx, dy := sign(x-me.X), sign(y-me.Y)
	if walkable(snap, me.X+dx, me.Y+dy) || occupiedByMonster(snap, me.X+dx, me.Y+dy) {
		return command(domain.ActionMove, api.DirectionPayload{Dx: dx, Dy: dy})
	}
	return b.wander(snap, me)
}

// wander - случайный шаг на проходимую клетку.
func (b *Bot) wander(snap *api.Snapshot, me *api.ActorView) api.ClientCommand {
	dirs := b.rng.Perm(8)
	for _, i := range dirs {
		d := neighbours[i]
		if walkable(snap, me.X+d[0], me.Y+d[1]) {
			return command(domain.ActionMove, api.DirectionPayload{Dx: d[0], Dy: d[1]})
		}
	}
	return command(domain.ActionWait, nil)
}

var neighbours = [8][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}

func findSelf(snap *api.Snapshot) *api.ActorView {
	for i := range snap.Actors {
		if snap.Actors[i].ID == snap.Player.ID {
			return &snap.Actors[i]
		}
	}
	return nil
}

func nearest(snap *api.Snapshot, me *api.ActorView, match func(api.ActorView) bool) *api.ActorView {
	var best *api.ActorView
	for i := range snap.Actors {
		a := &snap.Actors[i]
		if a.ID == me.ID || !match(*a) {
			continue
		}
		if best == nil || dist(me, a) < dist(me, best) {
			best = a
		}
	}
	return best
}

// walkable: известный, непроходимости нет. Неизвестное бот считает стеной.
func walkable(snap *api.Snapshot, x, y int) bool {
	for _, t := range snap.Map {
		if t.X == x && t.Y == y {
			return !t.Blocked
		}
	}
	return false
}

func occupiedByMonster(snap *api.Snapshot, x, y int) bool {
	for _, a := range snap.Actors {
		if a.X == x && a.Y == y && a.Kind == "MONSTER" && a.Alive {
			return true
		}
	}
	return false
}

func command(action domain.ActionType, payload interface{}) api.ClientCommand {
	cmd := api.ClientCommand{Action: action.String()}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			logger.Log.WithError(err).Error("bot: marshal payload")
			return api.ClientCommand{Action: domain.ActionWait.String()}
		}
		cmd.Payload = raw
	}
	return cmd
}

// dist - расстояние Чебышёва (ходы по диагонали стоят как прямые).
func dist(a, b *api.ActorView) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y))
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
