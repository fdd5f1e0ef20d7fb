package enums

import "strings"

// AIKind - закрытый список поведений. Имя из шаблона монстра
// превращается в AIKind при загрузке библиотеки.
type AIKind uint8

const (
	AIKindNone AIKind = iota
	AIKindBasic
	AIKindConfused
)

var aiKindToString = map[AIKind]string{
	AIKindNone:     "NONE",
	AIKindBasic:    "BASIC",
	AIKindConfused: "CONFUSED",
}

var aiKindStringToType = map[string]AIKind{
	"":                AIKindNone,
	"NONE":            AIKindNone,
	"BASIC":           AIKindBasic,
	"BASICMONSTER":    AIKindBasic,
	"CONFUSED":        AIKindConfused,
	"CONFUSEDMONSTER": AIKindConfused,
}

func (k AIKind) String() string {
	if val, ok := aiKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseAIKind возвращает ok=false для незнакомого имени.
func ParseAIKind(s string) (AIKind, bool) {
	val, ok := aiKindStringToType[strings.ToUpper(strings.TrimSpace(s))]
	return val, ok
}
