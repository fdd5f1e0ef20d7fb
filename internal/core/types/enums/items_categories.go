package enums

import "strings"

type ItemCategory uint8

const (
	ItemCategoryUnknown    ItemCategory = iota // 0
	ItemCategoryConsumable                     // 1
	ItemCategoryEquipment                      // 2
)

var itemCategoryToString = map[ItemCategory]string{
	ItemCategoryConsumable: "CONSUMABLE",
	ItemCategoryEquipment:  "EQUIPMENT",
}

var itemCategoryStringToType = map[string]ItemCategory{
	"CONSUMABLE": ItemCategoryConsumable,
	"EQUIPMENT":  ItemCategoryEquipment,
}

func (c ItemCategory) String() string {
	if val, ok := itemCategoryToString[c]; ok {
		return val
	}
	return "UNKNOWN"
}

func ParseItemCategory(s string) ItemCategory {
	upper := strings.ToUpper(s)
	if val, ok := itemCategoryStringToType[upper]; ok {
		return val
	}
	return ItemCategoryUnknown
}

// ModifierPosition - где имя модификатора встаёт относительно имени предмета.
type ModifierPosition uint8

const (
	ModifierPrefix ModifierPosition = iota
	ModifierSuffix
)

func ParseModifierPosition(s string) ModifierPosition {
	if strings.EqualFold(s, "suffix") {
		return ModifierSuffix
	}
	return ModifierPrefix
}
