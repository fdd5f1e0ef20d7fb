package domain

import "strings"

// ActionType - команда игрока во внутреннем представлении.
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionMove
	ActionWait
	ActionUseItem
	ActionInteract
	ActionPortal
	ActionDrop
	ActionTake
)

// Имена команд на проводе, индекс = ActionType
var actionNames = [...]string{
	ActionUnknown:  "UNKNOWN",
	ActionMove:     "MOVE",
	ActionWait:     "WAIT",
	ActionUseItem:  "USE",
	ActionInteract: "INTERACT",
	ActionPortal:   "PORTAL",
	ActionDrop:     "DROP",
	ActionTake:     "TAKE",
}

var actionsByName = func() map[string]ActionType {
	m := make(map[string]ActionType, len(actionNames))
	for i, name := range actionNames {
		if ActionType(i) != ActionUnknown {
			m[name] = ActionType(i)
		}
	}
	return m
}()

// ParseAction переводит имя команды в ActionType без учёта регистра.
func ParseAction(s string) ActionType {
	return actionsByName[strings.ToUpper(strings.TrimSpace(s))]
}

func (a ActionType) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return actionNames[ActionUnknown]
}
