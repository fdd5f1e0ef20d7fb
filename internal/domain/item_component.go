package domain

import (
	"math"
	"sort"
	"strings"

	"github.com/Frostlock/Warrens-II/internal/core/types"
	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
	"github.com/Frostlock/Warrens-II/pkg/utils"
)

// EffectSpec - параметры эффекта, который предмет создаёт при использовании.
type EffectSpec struct {
	Kind     enums.EffectKind `json:"kind"`
	HitDie   utils.HitDie     `json:"hitDie"`
	Radius   int              `json:"radius"`
	Duration int              `json:"duration"`
	Element  enums.Element    `json:"element"`
	Targeted bool             `json:"targeted"`
}

// Bonuses - прибавки к характеристикам от экипировки.
type Bonuses struct {
	Accuracy int `json:"accuracy,omitempty"`
	Dodge    int `json:"dodge,omitempty"`
	Damage   int `json:"damage,omitempty"`
	Armor    int `json:"armor,omitempty"`
	Body     int `json:"body,omitempty"`
	Mind     int `json:"mind,omitempty"`
}

func (b Bonuses) Add(o Bonuses) Bonuses {
	return Bonuses{
		Accuracy: b.Accuracy + o.Accuracy,
		Dodge:    b.Dodge + o.Dodge,
		Damage:   b.Damage + o.Damage,
		Armor:    b.Armor + o.Armor,
		Body:     b.Body + o.Body,
		Mind:     b.Mind + o.Mind,
	}
}

// Modifier - префикс или суффикс ("double", "of the bear").
type Modifier struct {
	Key      string                 `json:"key"`
	Name     string                 `json:"name"`
	Position enums.ModifierPosition `json:"position"`
	Level    int                    `json:"level"`

	// Влияние на эффект
	Radius         int            `json:"radius,omitempty"`
	HitDieCount    int            `json:"hitDieCount,omitempty"`
	DurationFactor float64        `json:"durationFactor,omitempty"`
	Element        *enums.Element `json:"element,omitempty"`

	Bonuses Bonuses `json:"bonuses"`
}

// ItemComponent описывает предмет. Любой актор с этим компонентом становится предметом.
type ItemComponent struct {
	Category  enums.ItemCategory `json:"category"`
	BaseLevel int                `json:"baseLevel"`
	Stackable bool               `json:"stackable"`
	StackSize int                `json:"stackSize"`
	Modifiers []Modifier         `json:"modifiers,omitempty"`

	// Расходуемые
	Effect EffectSpec `json:"effect"`

	// Экипировка
	Bonuses  Bonuses `json:"bonuses"`
	Equipped bool    `json:"equipped"`
}

// Level - уровень предмета с учётом модификаторов.
func (i *ItemComponent) Level() int {
	lvl := i.BaseLevel
	for _, m := range i.Modifiers {
		lvl += m.Level
	}
	return lvl
}

// ResolvedEffect накладывает модификаторы на базовый эффект.
func (i *ItemComponent) ResolvedEffect() EffectSpec {
	spec := i.Effect
	for _, m := range i.Modifiers {
		spec.Radius += m.Radius
		spec.HitDie = spec.HitDie.WithExtra(m.HitDieCount)
		if m.DurationFactor > 0 {
			spec.Duration = int(math.Round(float64(spec.Duration) * m.DurationFactor))
		}
		if m.Element != nil {
			spec.Element = *m.Element
		}
	}
	return spec
}

// TotalBonuses - бонусы самого предмета и его модификаторов.
func (i *ItemComponent) TotalBonuses() Bonuses {
	total := i.Bonuses
	for _, m := range i.Modifiers {
		total = total.Add(m.Bonuses)
	}
	return total
}

// StackKey - ключ шаблона плюс отсортированные ключи модификаторов.
// Предметы с одинаковым StackKey складываются в один стек.
func (i *ItemComponent) StackKey(templateKey string) string {
	keys := make([]string, 0, len(i.Modifiers))
	for _, m := range i.Modifiers {
		keys = append(keys, m.Key)
	}
	sort.Strings(keys)
	return templateKey + "|" + strings.Join(keys, ",")
}

// InventoryComponent хранит хэндлы предметов у сущности.
type InventoryComponent struct {
	Items []types.ActorID `json:"items"`
}

func (inv *InventoryComponent) Add(id types.ActorID) {
	if inv.Contains(id) {
		return
	}
	inv.Items = append(inv.Items, id)
}

// Remove удаляет хэндл. Возвращает false, если предмета не было.
func (inv *InventoryComponent) Remove(id types.ActorID) bool {
	for i, item := range inv.Items {
		if item == id {
			inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
			return true
		}
	}
	return false
}

func (inv *InventoryComponent) Contains(id types.ActorID) bool {
	for _, item := range inv.Items {
		if item == id {
			return true
		}
	}
	return false
}

// ContainerComponent - сундук. Предметы лежат в InventoryComponent актора.
type ContainerComponent struct {
	Locked bool `json:"locked"`
}

// PortalComponent связывает два портала разных уровней.
type PortalComponent struct {
	Destination types.ActorID   `json:"destination"`
	Message     string          `json:"message"`
	Direction   enums.Direction `json:"direction"`
}
