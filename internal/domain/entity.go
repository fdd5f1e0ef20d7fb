package domain

import (
	"fmt"
	"strings"

	"github.com/Frostlock/Warrens-II/internal/core/types"
	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
)

// --- КОМПОНЕНТЫ ---

// PlayerComponent - прогресс игрока и флаг сделанного хода.
type PlayerComponent struct {
	XP          int  `json:"xp"`
	Level       int  `json:"level"`
	NextLevelXP int  `json:"nextLevelXp"`
	ActionTaken bool `json:"actionTaken"`

	// Direction - последнее направление движения.
	Direction Position `json:"direction"`
}

// NextLevelXP - опыт, нужный для перехода с уровня level на следующий.
func NextLevelXP(level int) int {
	return XPBase + int(XPBase*XPFactor*float64(level*level-1))
}

// MonsterComponent - награда за убийство и данные библиотеки.
type MonsterComponent struct {
	XPValue         int    `json:"xpValue"`
	KilledByText    string `json:"killedByText,omitempty"`
	ChallengeRating int    `json:"challengeRating"`
	Unique          bool   `json:"unique,omitempty"`
}

// Status - стихийные состояния, которые выставляют эффекты.
type Status struct {
	OnFire      bool `json:"onFire,omitempty"`
	Electrified bool `json:"electrified,omitempty"`
	EarthDamage bool `json:"earthDamage,omitempty"`
	Confused    bool `json:"confused,omitempty"`
}

// --- СУЩНОСТЬ ---

// Actor - всё, что стоит на тайле или лежит в инвентаре.
// Набор компонентов определяет, чем актор является.
type Actor struct {
	ID     types.ActorID   `json:"id"`
	Kind   enums.ActorKind `json:"kind"`
	Key    string          `json:"key,omitempty"` // ключ шаблона библиотеки
	Name   string          `json:"name"`
	Flavor string          `json:"flavor,omitempty"`

	Char     byte      `json:"char"`
	Color    types.RGB `json:"color"`
	SpriteID int       `json:"spriteId"`

	// Положение. Level == types.NoLevel, если актор не на карте.
	Level types.LevelID `json:"level"`
	Pos   Position      `json:"pos"`
	Owner types.ActorID `json:"owner,omitempty"`

	InView bool   `json:"inView"`
	Status Status `json:"status"`

	// Компоненты (Если nil - значит свойство отсутствует)
	Stats     *Stats              `json:"stats,omitempty"`
	AI        *AI                 `json:"ai,omitempty"`
	Inventory *InventoryComponent `json:"inventory,omitempty"`
	Item      *ItemComponent      `json:"item,omitempty"`
	Portal    *PortalComponent    `json:"portal,omitempty"`
	Container *ContainerComponent `json:"container,omitempty"`
	Player    *PlayerComponent    `json:"player,omitempty"`
	Monster   *MonsterComponent   `json:"monster,omitempty"`
}

func (a *Actor) Glyph() types.Glyph {
	return types.MakeGlyph(a.Color, a.Char)
}

func (a *Actor) IsCharacter() bool {
	return a.Kind.IsCharacter() && a.Stats != nil
}

func (a *Actor) IsAlive() bool {
	return a.Stats != nil && a.Stats.Alive
}

// OnMap - актор стоит на тайле какого-то уровня.
func (a *Actor) OnMap() bool {
	return a.Level != types.NoLevel
}

// DisplayName - имя с модификаторами, размером стека и пометкой экипировки.
func (a *Actor) DisplayName() string {
	if a.Item == nil {
		return a.Name
	}
	name := a.Name
	for _, m := range a.Item.Modifiers {
		if m.Position == enums.ModifierSuffix {
			name = name + " " + m.Name
		} else {
			name = m.Name + " " + name
		}
	}
	if a.Item.Stackable && a.Item.StackSize > 1 {
		name += fmt.Sprintf(" (stack: %d)", a.Item.StackSize)
	}
	name = capitalize(name)
	if a.Item.Category == enums.ItemCategoryEquipment && a.Item.Equipped {
		name += " (equipped)"
	}
	return name
}

func capitalize(s string) string {
	s = strings.ToLower(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (a *Actor) String() string {
	return fmt.Sprintf("%s(%s %s)", a.Kind, a.Name, a.ID)
}
