package enums

import "strings"

// Archetype - тип генератора карты.
type Archetype uint8

const (
	ArchetypeDungeon Archetype = iota
	ArchetypeTown
	ArchetypeCave
	ArchetypeSingleRoom
)

var archetypeToString = map[Archetype]string{
	ArchetypeDungeon:    "DUNGEON",
	ArchetypeTown:       "TOWN",
	ArchetypeCave:       "CAVE",
	ArchetypeSingleRoom: "SINGLE_ROOM",
}

var archetypeStringToType = map[string]Archetype{
	"DUNGEON":     ArchetypeDungeon,
	"TOWN":        ArchetypeTown,
	"CAVE":        ArchetypeCave,
	"SINGLE_ROOM": ArchetypeSingleRoom,
	"SINGLEROOM":  ArchetypeSingleRoom,
}

func (a Archetype) String() string {
	if val, ok := archetypeToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

func ParseArchetype(s string) (Archetype, bool) {
	val, ok := archetypeStringToType[strings.ToUpper(s)]
	return val, ok
}

// Material - материал тайла.
type Material uint8

const (
	MaterialNone Material = iota
	MaterialDirt
	MaterialStone
	MaterialDoor
	MaterialWater
)

func (m Material) String() string {
	switch m {
	case MaterialNone:
		return "NONE"
	case MaterialDirt:
		return "DIRT"
	case MaterialStone:
		return "STONE"
	case MaterialDoor:
		return "DOOR"
	case MaterialWater:
		return "WATER"
	}
	return "UNKNOWN"
}

// MessageCategory - канал игрового сообщения.
type MessageCategory uint8

const (
	MessageGame MessageCategory = iota
	MessageCombat
	MessageDebug
)

func (c MessageCategory) String() string {
	switch c {
	case MessageGame:
		return "GAME"
	case MessageCombat:
		return "COMBAT"
	case MessageDebug:
		return "DEBUG"
	}
	return "UNKNOWN"
}

// Direction - направление портала.
type Direction uint8

const (
	DirectionNone Direction = iota
	DirectionDown
	DirectionUp
)

func (d Direction) String() string {
	switch d {
	case DirectionDown:
		return "DOWN"
	case DirectionUp:
		return "UP"
	}
	return "NONE"
}

// ParseDirection понимает "up" и "down" в любом регистре.
func ParseDirection(s string) Direction {
	switch strings.ToUpper(s) {
	case "DOWN":
		return DirectionDown
	case "UP":
		return DirectionUp
	}
	return DirectionNone
}
