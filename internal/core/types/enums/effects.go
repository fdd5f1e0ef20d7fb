package enums

import "strings"

// EffectKind - закрытый список эффектов предметов.
type EffectKind uint8

const (
	EffectKindNone EffectKind = iota
	EffectKindHeal
	EffectKindConfuse
	EffectKindDamage
)

var effectKindToString = map[EffectKind]string{
	EffectKindNone:    "NONE",
	EffectKindHeal:    "HEAL",
	EffectKindConfuse: "CONFUSE",
	EffectKindDamage:  "DAMAGE",
}

var effectKindStringToType = map[string]EffectKind{
	"":               EffectKindNone,
	"NONE":           EffectKindNone,
	"HEAL":           EffectKindHeal,
	"EFFECT_HEAL":    EffectKindHeal,
	"CONFUSE":        EffectKindConfuse,
	"EFFECT_CONFUSE": EffectKindConfuse,
	"DAMAGE":         EffectKindDamage,
	"EFFECT_DAMAGE":  EffectKindDamage,
}

func (k EffectKind) String() string {
	if val, ok := effectKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseEffectKind возвращает ok=false для незнакомого имени.
func ParseEffectKind(s string) (EffectKind, bool) {
	val, ok := effectKindStringToType[strings.ToUpper(strings.TrimSpace(s))]
	return val, ok
}

// Target задаёт, на что эффект может быть наложен.
func (k EffectKind) Target() TargetKind {
	switch k {
	case EffectKindConfuse:
		return TargetActor
	case EffectKindDamage:
		return TargetTile
	default:
		return TargetSelf
	}
}

// TargetKind - вид цели эффекта.
type TargetKind uint8

const (
	TargetSelf TargetKind = iota
	TargetActor
	TargetTile
)

func (k TargetKind) String() string {
	switch k {
	case TargetSelf:
		return "SELF"
	case TargetActor:
		return "ACTOR"
	case TargetTile:
		return "TILE"
	}
	return "UNKNOWN"
}

// EffectState - жизненный цикл эффекта: CREATED -> APPLIED -> TICKING -> EXPIRED.
type EffectState uint8

const (
	EffectCreated EffectState = iota
	EffectApplied
	EffectTicking
	EffectExpired
)

func (s EffectState) String() string {
	switch s {
	case EffectCreated:
		return "CREATED"
	case EffectApplied:
		return "APPLIED"
	case EffectTicking:
		return "TICKING"
	case EffectExpired:
		return "EXPIRED"
	}
	return "UNKNOWN"
}

// Element - стихия эффекта. Значения совпадают с номерами из данных шаблонов.
type Element uint8

const (
	ElementHeal Element = iota
	ElementWater
	ElementAir
	ElementFire
	ElementEarth
	ElementElectric
	ElementMind
)

var elementToString = map[Element]string{
	ElementHeal:     "HEAL",
	ElementWater:    "WATER",
	ElementAir:      "AIR",
	ElementFire:     "FIRE",
	ElementEarth:    "EARTH",
	ElementElectric: "ELEC",
	ElementMind:     "MIND",
}

var elementStringToType = map[string]Element{
	"HEAL":     ElementHeal,
	"WATER":    ElementWater,
	"AIR":      ElementAir,
	"FIRE":     ElementFire,
	"EARTH":    ElementEarth,
	"ELEC":     ElementElectric,
	"ELECTRIC": ElementElectric,
	"MIND":     ElementMind,
}

func (e Element) String() string {
	if val, ok := elementToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}

func ParseElement(s string) (Element, bool) {
	val, ok := elementStringToType[strings.ToUpper(strings.TrimSpace(s))]
	return val, ok
}
