package engine

import (
	"github.com/Frostlock/Warrens-II/internal/core/types"
	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
	"github.com/Frostlock/Warrens-II/internal/domain"
	"github.com/Frostlock/Warrens-II/internal/engine/handlers"
	"github.com/Frostlock/Warrens-II/internal/systems"
	"github.com/Frostlock/Warrens-II/pkg/api"
)

// commandHandlers - реестр команд игрока.
func commandHandlers() handlers.Registry[*Game, domain.ActionType] {
	return handlers.Registry[*Game, domain.ActionType]{
		domain.ActionMove:     handlers.WithPayload(handleMove),
		domain.ActionWait:     handlers.WithEmptyPayload(handleWait),
		domain.ActionUseItem:  handlers.WithPayload(handleUse),
		domain.ActionInteract: handlers.WithEmptyPayload(handleInteract),
		domain.ActionPortal:   handlers.WithPayload(handlePortal),
		domain.ActionDrop:     handlers.WithPayload(handleDrop),
		domain.ActionTake:     handlers.WithPayload(handleTake),
	}
}

func handleMove(g *Game, p api.DirectionPayload) error {
	return g.MoveOrAttack(g.Player, p.Dx, p.Dy)
}

func handleWait(g *Game) error {
	return g.Wait(g.Player)
}

func handleUse(g *Game, p api.UsePayload) error {
	item, err := g.inventoryItem(g.Player, p.ItemID)
	if err != nil {
		return err
	}

	var target systems.Target
	switch {
	case !p.TargetID.IsNil():
		a, err := g.World.Reg.Actor(p.TargetID)
		if err != nil {
			return err
		}
		target = systems.ActorTarget(a)
	case p.Tile != nil:
		lvl := g.CurrentLevel()
		if lvl == nil {
			return &domain.StateError{Op: "use " + item.Name, Reason: "player is not on a level"}
		}
		t := lvl.Map.Tile(p.Tile.X, p.Tile.Y)
		if t == nil {
			return &domain.TargetError{Effect: item.Item.Effect.Kind, Target: "outside the map", Reason: "no such tile"}
		}
		target = systems.TileTarget(t)
	}
	return g.UseItem(g.Player, item, target)
}

func handleInteract(g *Game) error {
	_, err := g.Interact(g.Player)
	return err
}

func handlePortal(g *Game, p api.PortalPayload) error {
	return g.FollowPortal(g.Player, enums.ParseDirection(p.Direction))
}

func handleDrop(g *Game, p api.ItemPayload) error {
	item, err := g.inventoryItem(g.Player, p.ItemID)
	if err != nil {
		return err
	}
	return g.Drop(g.Player, item, p.Count)
}

func handleTake(g *Game, p api.TakePayload) error {
	chest, err := g.World.Reg.Actor(p.ChestID)
	if err != nil {
		return err
	}
	item, err := g.World.Reg.Actor(p.ItemID)
	if err != nil {
		return err
	}
	return g.TakeFromChest(g.Player, chest, item)
}

// inventoryItem резолвит хэндл и проверяет, что предмет у актора.
func (g *Game) inventoryItem(actor *domain.Actor, id types.ActorID) (*domain.Actor, error) {
	item, err := g.World.Reg.Actor(id)
	if err != nil {
		return nil, err
	}
	if actor.Inventory == nil || !actor.Inventory.Contains(id) || item.Item == nil {
		return nil, &domain.LookupError{Kind: "inventory item", Key: id.String()}
	}
	return item, nil
}
