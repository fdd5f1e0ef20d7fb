package systems

import (
	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
	"github.com/Frostlock/Warrens-II/internal/domain"
	"github.com/Frostlock/Warrens-II/pkg/logger"
	"github.com/sirupsen/logrus"
)

// --- STORE ---

// AddToInventory кладёт предмет в инвентарь owner.
// Стекуемый предмет сливается с таким же (ключ и набор модификаторов),
// лишний хэндл при этом освобождается. Возвращает предмет в инвентаре.
func AddToInventory(w *World, owner, item *domain.Actor) (*domain.Actor, error) {
	if owner.Inventory == nil {
		return nil, &domain.StateError{Op: "store " + item.Name, Reason: owner.Name + " has no inventory"}
	}
	if item.Item == nil {
		return nil, &domain.StateError{Op: "store " + item.Name, Reason: "not an item"}
	}
	w.Reg.Remove(item.ID)

	if item.Item.Stackable {
		if existing := findStack(w, owner, item); existing != nil {
			existing.Item.StackSize += max(item.Item.StackSize, 1)
			w.Reg.Despawn(item.ID)
			return existing, nil
		}
	}

	owner.Inventory.Add(item.ID)
	item.Owner = owner.ID
	return item, nil
}

func findStack(w *World, owner, item *domain.Actor) *domain.Actor {
	key := item.Item.StackKey(item.Key)
	for _, other := range w.Reg.Resolve(owner.Inventory.Items) {
		if other.ID != item.ID && other.Item != nil && other.Item.Stackable && other.Item.StackKey(other.Key) == key {
			return other
		}
	}
	return nil
}

// --- PICKUP ---

func PickUp(w *World, actor, item *domain.Actor) error {
	name := item.DisplayName()
	if _, err := AddToInventory(w, actor, item); err != nil {
		return err
	}
	w.Emit(enums.MessageGame, "%s picks up a %s.", title(actor.Name), name)
	inventoryLogger(actor).WithField("item", name).Debug("Item picked up")
	return nil
}

// --- DROP ---

// Drop выкладывает предмет на тайл персонажа. count > 0 отделяет часть стека.
func Drop(w *World, actor, item *domain.Actor, count int) error {
	if actor.Inventory == nil || !actor.Inventory.Contains(item.ID) {
		return &domain.LookupError{Kind: "inventory item", Key: item.Name}
	}
	lvl := w.Reg.LevelOf(actor)
	if lvl == nil {
		return &domain.StateError{Op: "drop " + item.Name, Reason: actor.Name + " is not on a level"}
	}

	// Обработка стаков (если просят выбросить часть)
	if count > 0 && item.Item.Stackable && item.Item.StackSize > count {
		item.Item.StackSize -= count

		dropped := *item
		component := *item.Item
		component.StackSize = count
		dropped.Item = &component
		w.Reg.Spawn(&dropped)
		if err := w.Reg.Place(dropped.ID, lvl, actor.Pos.X, actor.Pos.Y); err != nil {
			return err
		}
		w.Emit(enums.MessageGame, "%s drops %dx %s.", title(actor.Name), count, item.Name)
		return nil
	}

	if item.Item.Equipped {
		Unequip(w, actor, item)
	}
	actor.Inventory.Remove(item.ID)
	if err := w.Reg.Place(item.ID, lvl, actor.Pos.X, actor.Pos.Y); err != nil {
		return err
	}
	w.Emit(enums.MessageGame, "%s drops a %s.", title(actor.Name), item.DisplayName())
	return nil
}

// --- EQUIP ---

// Equip надевает экипировку из инвентаря. Слотов нет.
func Equip(w *World, actor, item *domain.Actor) error {
	if actor.Inventory == nil || !actor.Inventory.Contains(item.ID) {
		return &domain.LookupError{Kind: "inventory item", Key: item.Name}
	}
	if item.Item == nil || item.Item.Category != enums.ItemCategoryEquipment {
		return &domain.StateError{Op: "equip " + item.Name, Reason: "not equipment"}
	}
	if item.Item.Equipped {
		return nil
	}
	item.Item.Equipped = true
	w.Emit(enums.MessageGame, "%s equips a %s.", title(actor.Name), item.Name)
	return nil
}

// Unequip снимает предмет. Возвращает false, если он не был надет.
func Unequip(w *World, actor, item *domain.Actor) bool {
	if item.Item == nil || !item.Item.Equipped {
		return false
	}
	item.Item.Equipped = false
	w.Emit(enums.MessageGame, "%s unequips a %s.", title(actor.Name), item.Name)
	return true
}

// --- USE (Consumables) ---

// UseItem применяет эффект расходника к цели и тратит один предмет из стека.
// Пустая цель означает самого персонажа (лечение, нова).
// При ошибке цели предмет не тратится.
func UseItem(w *World, actor, item *domain.Actor, target Target) error {
	if actor.Inventory == nil || !actor.Inventory.Contains(item.ID) {
		return &domain.LookupError{Kind: "inventory item", Key: item.Name}
	}
	if item.Item == nil || item.Item.Category != enums.ItemCategoryConsumable {
		return &domain.StateError{Op: "use " + item.Name, Reason: "not a consumable"}
	}
	if item.Item.StackSize <= 0 {
		return &domain.StateError{Op: "use " + item.Name, Reason: "nothing left"}
	}

	e, err := NewItemEffect(w, item, actor)
	if err != nil {
		return err
	}
	if target.Actor == nil && target.Tile == nil {
		target = ActorTarget(actor)
	}
	if err := ApplyEffect(w, w.Reg.LevelOf(actor), e, target); err != nil {
		return err
	}

	inventoryLogger(actor).WithFields(logrus.Fields{
		"item":   item.Name,
		"effect": e.Kind.String(),
		"target": target.String(),
	}).Info("Item used")

	item.Item.StackSize--
	if item.Item.StackSize == 0 {
		actor.Inventory.Remove(item.ID)
		w.Reg.Despawn(item.ID)
	}
	return nil
}

// --- CHEST ---

// TakeFromChest перекладывает предмет из сундука в инвентарь персонажа.
// Из запертого сундука брать нельзя.
func TakeFromChest(w *World, actor, chest, item *domain.Actor) error {
	if chest.Container == nil || chest.Inventory == nil {
		return &domain.StateError{Op: "take " + item.Name, Reason: chest.Name + " is not a container"}
	}
	if chest.Container.Locked {
		return &domain.StateError{Op: "take " + item.Name, Reason: chest.Name + " is locked, please unlock before removing items"}
	}
	if !chest.Inventory.Remove(item.ID) {
		return &domain.LookupError{Kind: "chest item", Key: item.Name}
	}
	name := item.DisplayName()
	if _, err := AddToInventory(w, actor, item); err != nil {
		chest.Inventory.Add(item.ID)
		return err
	}
	w.Emit(enums.MessageGame, "%s takes a %s from the %s.", title(actor.Name), name, chest.Name)
	return nil
}

// InventoryItems - предметы инвентаря актора.
func InventoryItems(w *World, a *domain.Actor) []*domain.Actor {
	if a.Inventory == nil {
		return nil
	}
	return w.Reg.Resolve(a.Inventory.Items)
}

func inventoryLogger(a *domain.Actor) *logrus.Entry {
	return logger.Log.WithFields(logrus.Fields{
		"component": "inventory_system",
		"actor":     a.Name,
		"actor_id":  a.ID,
	})
}
