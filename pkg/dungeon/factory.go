package dungeon

import (
	"github.com/Frostlock/Warrens-II/internal/core/types"
	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
	"github.com/Frostlock/Warrens-II/internal/domain"
)

// CreatePlayer создаёт героя первого уровня с пустым инвентарём.
func CreatePlayer(name string) *domain.Actor {
	return &domain.Actor{
		Kind:      enums.ActorKindPlayer,
		Key:       "player",
		Name:      name,
		Flavor:    "A young and fearless adventurer.",
		Char:      '@',
		Color:     types.RGB{R: 255, G: 255, B: 255},
		SpriteID:  domain.SpriteNone,
		Stats:     domain.NewBaseStats(),
		Inventory: &domain.InventoryComponent{},
		Player: &domain.PlayerComponent{
			Level:       1,
			NextLevelXP: domain.NextLevelXP(1),
		},
	}
}

// CreateNPC создаёт мирного жителя. NPC не ходят и не дерутся.
func CreateNPC(name, flavor string) *domain.Actor {
	return &domain.Actor{
		Kind:      enums.ActorKindNPC,
		Key:       "npc",
		Name:      name,
		Flavor:    flavor,
		Char:      '@',
		Color:     types.RGB{R: 252, G: 211, B: 77},
		SpriteID:  domain.SpriteNone,
		Stats:     domain.NewBaseStats(),
		Inventory: &domain.InventoryComponent{},
	}
}

// PortalSpec описывает одну сторону перехода между уровнями.
type PortalSpec struct {
	Name      string
	Message   string
	Direction enums.Direction
}

// Стандартные переходы
var (
	StairsDown = PortalSpec{Name: "stairs down", Message: "You follow the stairs down, looking for more adventure.", Direction: enums.DirectionDown}
	StairsUp   = PortalSpec{Name: "stairs up", Message: "You follow the stairs up, hoping to find the exit.", Direction: enums.DirectionUp}
	PitDown    = PortalSpec{Name: "Pit", Message: "You jump into the pit. As you fall deeper and deeper, you realize you didn't think about how to get back out afterward...", Direction: enums.DirectionDown}
	PitUp      = PortalSpec{Name: "Opening above", Message: "After great difficulties you manage to get out of the pit.", Direction: enums.DirectionUp}
	DoorIn     = PortalSpec{Name: "door", Message: "You step inside the house.", Direction: enums.DirectionDown}
	DoorOut    = PortalSpec{Name: "door", Message: "You step back out into the town.", Direction: enums.DirectionUp}
)

// CreatePortal создаёт портал без пункта назначения, см. ConnectPortals.
func CreatePortal(spec PortalSpec) *domain.Actor {
	char, sprite := byte('>'), domain.SpriteStairsDown
	if spec.Direction == enums.DirectionUp {
		char, sprite = '<', domain.SpriteStairsUp
	}
	if spec.Name == DoorIn.Name {
		char, sprite = '+', domain.SpritePortal
	}
	return &domain.Actor{
		Kind:     enums.ActorKindPortal,
		Key:      "portal",
		Name:     spec.Name,
		Char:     char,
		Color:    types.RGB{R: 255, G: 255, B: 255},
		SpriteID: sprite,
		Portal: &domain.PortalComponent{
			Message:   spec.Message,
			Direction: spec.Direction,
		},
	}
}

// ConnectPortals связывает два уже заспавненных портала в обе стороны.
func ConnectPortals(a, b *domain.Actor) {
	a.Portal.Destination = b.ID
	b.Portal.Destination = a.ID
}

// CreateChest создаёт пустой сундук.
func CreateChest(name, flavor string, locked bool) *domain.Actor {
	return &domain.Actor{
		Kind:      enums.ActorKindChest,
		Key:       "chest",
		Name:      name,
		Flavor:    flavor,
		Char:      'H',
		Color:     types.RGB{R: 145, G: 145, B: 145},
		SpriteID:  domain.SpriteNone,
		Inventory: &domain.InventoryComponent{},
		Container: &domain.ContainerComponent{Locked: locked},
	}
}

// kitEntry - предмет стартового набора с модификаторами.
type kitEntry struct {
	key       string
	modifiers []string
}

var startingGear = []kitEntry{
	{key: "healingpotion"},
	{key: "healingpotion"},
}

var quickStartGear = []kitEntry{
	{key: "firenova", modifiers: []string{"double"}},
	{key: "tremor"},
	{key: "healingvial", modifiers: []string{"exquisite"}},
	{key: "cloak"},
	{key: "fireball"},
	{key: "confuse"},
	{key: "lightning"},
}

// StartingGear - два зелья лечения.
func (l *Library) StartingGear() ([]*domain.Actor, error) {
	return l.createKit(startingGear)
}

// QuickStartGear - свитки и экипировка для быстрого старта.
func (l *Library) QuickStartGear() ([]*domain.Actor, error) {
	return l.createKit(quickStartGear)
}

// ChestLoot - по одному случайному предмету каждого уровня 1..13.
func (l *Library) ChestLoot() []*domain.Actor {
	var loot []*domain.Actor
	for lvl := 1; lvl < 14; lvl++ {
		item, err := l.RandomItem(lvl)
		if err != nil {
			l.log.WithError(err).Warn("Skipping chest item")
			continue
		}
		loot = append(loot, item)
	}
	return loot
}

func (l *Library) createKit(kit []kitEntry) ([]*domain.Actor, error) {
	out := make([]*domain.Actor, 0, len(kit))
	for _, e := range kit {
		item, err := l.CreateItem(e.key, e.modifiers...)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
