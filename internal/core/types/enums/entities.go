package enums

import "strings"

// ActorKind - вид актора. Хранится и в самом акторе, и в битах ActorID.
type ActorKind uint8

const (
	ActorKindUnknown ActorKind = iota
	ActorKindPlayer
	ActorKindMonster
	ActorKindNPC
	ActorKindItem
	ActorKindPortal
	ActorKindChest
)

var actorKindToString = map[ActorKind]string{
	ActorKindPlayer:  "PLAYER",
	ActorKindMonster: "MONSTER",
	ActorKindNPC:     "NPC",
	ActorKindItem:    "ITEM",
	ActorKindPortal:  "PORTAL",
	ActorKindChest:   "CHEST",
}

var actorKindStringToType = map[string]ActorKind{
	"PLAYER":  ActorKindPlayer,
	"MONSTER": ActorKindMonster,
	"NPC":     ActorKindNPC,
	"ITEM":    ActorKindItem,
	"PORTAL":  ActorKindPortal,
	"CHEST":   ActorKindChest,
}

// String возвращает строковое представление (для логов и дебага)
func (k ActorKind) String() string {
	if val, ok := actorKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// IsCharacter - игрок, монстр и NPC имеют статы и участвуют в ходах.
func (k ActorKind) IsCharacter() bool {
	return k == ActorKindPlayer || k == ActorKindMonster || k == ActorKindNPC
}

// ParseActorKind конвертирует строку в Enum
func ParseActorKind(s string) ActorKind {
	if val, ok := actorKindStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return ActorKindUnknown
}
