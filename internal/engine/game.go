package engine

import (
	"context"
	"fmt"

	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
	"github.com/Frostlock/Warrens-II/internal/domain"
	"github.com/Frostlock/Warrens-II/internal/engine/handlers"
	"github.com/Frostlock/Warrens-II/internal/systems"
	"github.com/Frostlock/Warrens-II/internal/telemetry"
	"github.com/Frostlock/Warrens-II/pkg/api"
	"github.com/Frostlock/Warrens-II/pkg/dungeon"
	"github.com/Frostlock/Warrens-II/pkg/logger"
	"github.com/Frostlock/Warrens-II/pkg/utils"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// InteractionKind - чем закончилось взаимодействие с тайлом.
type InteractionKind uint8

const (
	InteractionNone      InteractionKind = iota
	InteractionPickUp                    // предмет подобран
	InteractionContainer                 // открыт сундук, дальше TakeFromChest
)

// Interaction - результат Interact. Для сундука клиент сам выбирает, что забрать.
type Interaction struct {
	Kind    InteractionKind
	Actor   *domain.Actor
	Subject *domain.Actor
}

// Game - пошаговая игра. Мир стоит, пока игрок не сделает ход.
// Все методы вызываются из одной горутины.
type Game struct {
	World   *systems.World
	Buffer  *domain.MessageBuffer
	Library *dungeon.Library

	Player *domain.Actor
	Town   *domain.Level
	Levels []*domain.Level // корневые уровни

	Turn int64

	handlers handlers.Registry[*Game, domain.ActionType]
	log      *logrus.Entry
}

// NewGame строит мир по конфигу и возвращает игру, готовую к первому ходу.
func NewGame(ctx context.Context, cfg Config) (*Game, error) {
	buf := domain.NewMessageBuffer(cfg.MessageHistory)
	w := systems.NewWorld(domain.NewRegistry(), utils.NewRand(cfg.Seed), buf)

	layout, err := BuildWorld(ctx, cfg, w)
	if err != nil {
		return nil, fmt.Errorf("build world: %w", err)
	}
	return newGame(w, buf, layout), nil
}

func newGame(w *systems.World, buf *domain.MessageBuffer, layout *WorldLayout) *Game {
	g := &Game{
		World:   w,
		Buffer:  buf,
		Library: layout.Library,
		Player:  layout.Player,
		Town:    layout.Town,
		Levels:  layout.Levels,
		log:     logger.For("game"),
	}
	g.handlers = commandHandlers()
	return g
}

// CurrentLevel - уровень, на котором стоит игрок.
func (g *Game) CurrentLevel() *domain.Level {
	return g.World.Reg.LevelOf(g.Player)
}

// --- ДЕЙСТВИЯ ---

// MoveOrAttack: если на клетке (dx, dy) живой монстр - атака, иначе шаг.
// Ход считается сделанным в любом случае, даже если шаг упёрся в стену.
func (g *Game) MoveOrAttack(actor *domain.Actor, dx, dy int) error {
	if err := g.ensureAlive(actor, "move"); err != nil {
		return err
	}
	if actor.Player != nil {
		actor.Player.ActionTaken = true
		actor.Player.Direction = domain.Position{X: dx, Y: dy}
	}

	res := systems.CalculateMove(g.World, actor, dx, dy)
	if target := res.BlockedBy; target != nil && target.Monster != nil && target.IsAlive() {
		systems.Attack(g.World, actor, target)
		return nil
	}
	systems.MoveAlongVector(g.World, actor, dx, dy)
	return nil
}

// Wait пропускает ход.
func (g *Game) Wait(actor *domain.Actor) error {
	if err := g.ensureAlive(actor, "wait"); err != nil {
		return err
	}
	if actor.Player != nil {
		actor.Player.ActionTaken = true
	}
	return nil
}

// ApplyEffectItem применяет расходник владельца к цели.
// Пустая цель - сам владелец. Чужая цель проверяется по списку допустимых.
func (g *Game) ApplyEffectItem(item *domain.Actor, target systems.Target) error {
	wielder := g.World.Reg.Get(item.Owner)
	if wielder == nil {
		return &domain.StateError{Op: "use " + item.Name, Reason: "item is not in an inventory"}
	}
	if err := g.ensureAlive(wielder, "use "+item.Name); err != nil {
		return err
	}
	if target.Actor != nil || target.Tile != nil {
		if target.Actor != wielder {
			if err := systems.ValidateTarget(g.World, wielder, item, target); err != nil {
				return err
			}
		}
	}
	if err := systems.UseItem(g.World, wielder, item, target); err != nil {
		return err
	}
	g.tookAction(wielder)
	return nil
}

// UseItem: расходник применяется, экипировка надевается или снимается.
func (g *Game) UseItem(actor, item *domain.Actor, target systems.Target) error {
	if item.Item == nil {
		return &domain.StateError{Op: "use " + item.Name, Reason: "not an item"}
	}
	if item.Item.Category != enums.ItemCategoryEquipment {
		return g.ApplyEffectItem(item, target)
	}
	if err := g.ensureAlive(actor, "use "+item.Name); err != nil {
		return err
	}
	if item.Item.Equipped {
		systems.Unequip(g.World, actor, item)
		return nil
	}
	return systems.Equip(g.World, actor, item)
}

// Interact подбирает первый предмет на тайле или открывает сундук.
// Подбор занимает ход, открытие сундука - нет.
func (g *Game) Interact(actor *domain.Actor) (Interaction, error) {
	if err := g.ensureAlive(actor, "interact"); err != nil {
		return Interaction{}, err
	}
	tile := g.World.Reg.TileOf(actor)
	if tile == nil {
		return Interaction{}, &domain.StateError{Op: "interact", Reason: actor.Name + " is not on a level"}
	}

	for _, a := range g.World.Reg.ActorsAt(tile) {
		switch {
		case a.Kind == enums.ActorKindItem && a.Item != nil:
			if err := systems.PickUp(g.World, actor, a); err != nil {
				return Interaction{}, err
			}
			g.tookAction(actor)
			return Interaction{Kind: InteractionPickUp, Actor: actor, Subject: a}, nil

		case a.Container != nil:
			return Interaction{Kind: InteractionContainer, Actor: actor, Subject: a}, nil
		}
	}
	return Interaction{Kind: InteractionNone, Actor: actor}, nil
}

// TakeFromChest забирает предмет из сундука, на котором стоит актор.
func (g *Game) TakeFromChest(actor, chest, item *domain.Actor) error {
	if err := g.ensureAlive(actor, "take "+item.Name); err != nil {
		return err
	}
	if g.World.Reg.TileOf(chest) != g.World.Reg.TileOf(actor) {
		return &domain.StateError{Op: "take " + item.Name, Reason: chest.Name + " is out of reach"}
	}
	return systems.TakeFromChest(g.World, actor, chest, item)
}

// Drop выкладывает предмет. Надетое выбросить нельзя.
func (g *Game) Drop(actor, item *domain.Actor, count int) error {
	if err := g.ensureAlive(actor, "drop "+item.Name); err != nil {
		return err
	}
	if item.Item != nil && item.Item.Equipped {
		g.World.Emit(enums.MessageGame, "You can't drop an equipped item.")
		return &domain.StateError{Op: "drop " + item.Name, Reason: "item is equipped"}
	}
	return systems.Drop(g.World, actor, item, count)
}

// FollowPortal переводит актора через портал нужного направления на его тайле.
// Переход хода не занимает. Поле зрения пересчитывается на новом уровне.
func (g *Game) FollowPortal(actor *domain.Actor, direction enums.Direction) error {
	if err := g.ensureAlive(actor, "follow portal"); err != nil {
		return err
	}
	tile := g.World.Reg.TileOf(actor)
	if tile == nil {
		return &domain.StateError{Op: "follow portal", Reason: actor.Name + " is not on a level"}
	}

	var portal *domain.Actor
	for _, a := range g.World.Reg.ActorsAt(tile) {
		if a.Portal != nil && a.Portal.Direction == direction {
			portal = a
			break
		}
	}
	if portal == nil {
		return &domain.StateError{Op: "follow portal", Reason: "no portal " + direction.String() + " here"}
	}

	dest, err := g.World.Reg.Actor(portal.Portal.Destination)
	if err != nil {
		return fmt.Errorf("portal %s: %w", portal.Name, err)
	}
	lvl := g.World.Reg.LevelOf(dest)
	if lvl == nil {
		return &domain.StateError{Op: "follow portal", Reason: "destination is not on a level"}
	}

	g.World.Emit(enums.MessageGame, "%s", portal.Portal.Message)
	if err := g.World.Reg.Place(actor.ID, lvl, dest.Pos.X, dest.Pos.Y); err != nil {
		return err
	}
	if actor == g.Player {
		systems.UpdateFieldOfView(g.World.Reg, lvl, actor.Pos)
	}

	g.log.WithFields(logrus.Fields{
		"actor": actor.Name,
		"level": lvl.Name,
	}).Info("Portal followed")
	return nil
}

// --- ХОД ---

// AdvanceTurn проигрывает ход мира, если игрок сделал действие:
// персонажи текущего уровня действуют, поле зрения пересчитывается,
// эффекты тикают и истёкшие убираются. Возвращает false, если хода не было.
func (g *Game) AdvanceTurn(ctx context.Context) bool {
	if g.Player.Player == nil || !g.Player.Player.ActionTaken {
		return false
	}
	lvl := g.CurrentLevel()
	if lvl == nil {
		return false
	}

	_, span := telemetry.Tracer("engine").Start(ctx, "game.turn")
	defer span.End()

	g.Turn++
	acted := actCharacters(g.World, lvl)
	g.Player.Player.ActionTaken = false

	visible := systems.UpdateFieldOfView(g.World.Reg, lvl, g.Player.Pos)
	expired := systems.TickEffects(g.World, lvl)

	span.SetAttributes(
		attribute.Int64("game.turn", g.Turn),
		attribute.String("game.level", lvl.Name),
		attribute.Int("game.acted", acted),
		attribute.Int("game.expired_effects", expired),
	)
	g.log.WithFields(logrus.Fields{
		"turn":    g.Turn,
		"level":   lvl.Name,
		"acted":   acted,
		"visible": visible,
		"expired": expired,
	}).Debug("Turn played")
	return true
}

// actCharacters даёт сделать ход всем персонажам уровня, кроме игроков.
// Список копируется: ход может убрать персонажа с уровня.
func actCharacters(w *systems.World, lvl *domain.Level) int {
	acted := 0
	for _, c := range w.Reg.Resolve(append(lvl.Characters[:0:0], lvl.Characters...)) {
		if c.Player != nil {
			continue
		}
		if c.AI != nil && c.IsAlive() {
			acted++
		}
		systems.TakeTurn(w, c)
	}
	return acted
}

// --- КОМАНДЫ ---

// Perform выполняет команду клиента от имени игрока.
func (g *Game) Perform(cmd api.ClientCommand) error {
	action := domain.ParseAction(cmd.Action)
	handler, ok := g.handlers[action]
	if !ok {
		return &domain.LookupError{Kind: "action", Key: cmd.Action}
	}
	if err := handler(g, cmd.Payload); err != nil {
		g.log.WithError(err).WithField("action", action.String()).Warn("Command failed")
		return err
	}
	return nil
}

func (g *Game) tookAction(actor *domain.Actor) {
	if actor.Player != nil {
		actor.Player.ActionTaken = true
	}
}

func (g *Game) ensureAlive(actor *domain.Actor, op string) error {
	if actor == nil || !actor.IsAlive() {
		return &domain.StateError{Op: op, Reason: "actor is dead"}
	}
	return nil
}
