package domain

import "strings"

// ActionType - числовой идентификатор удаленной команды
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInput
	ActionFire
	ActionWeapon
	ActionPause
	ActionReset
)

// Маппинг JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INPUT":  ActionInput,
	"FIRE":   ActionFire,
	"WEAPON": ActionWeapon,
	"PAUSE":  ActionPause,
	"RESET":  ActionReset,
}

// Маппинг Domain -> String для логов
var actionCmdToString = map[ActionType]string{
	ActionInput:  "INPUT",
	ActionFire:   "FIRE",
	ActionWeapon: "WEAPON",
	ActionPause:  "PAUSE",
	ActionReset:  "RESET",
}

// ParseAction конвертирует строку из JSON в ActionType (без учета регистра)
func ParseAction(s string) ActionType {
	if val, ok := actionStringToCmd[strings.ToUpper(s)]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует Stringer
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
