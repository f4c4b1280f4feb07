package api

import (
	"encoding/json"

	"github.com/wjkennedy/jira-quake3/internal/domain"
)

// Типы сообщений сервера
const (
	MessageWelcome  = "WELCOME"
	MessageSnapshot = "SNAPSHOT"
	MessageError    = "ERROR"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerMessage это корневой объект, который сервер отправляет клиенту.
// Кодируется в JSON или msgpack (выбирается при подключении: /ws?format=msgpack).
type ServerMessage struct {
	// Type тип сообщения: WELCOME, SNAPSHOT, ERROR.
	Type string `json:"type" msgpack:"type"`

	// SessionID идентификатор соединения, приходит в WELCOME.
	SessionID string `json:"sessionId,omitempty" msgpack:"sessionId,omitempty"`

	// Snapshot полный снимок мира после тика.
	Snapshot *domain.Snapshot `json:"snapshot,omitempty" msgpack:"snapshot,omitempty"`

	// Error текст ошибки для ERROR.
	Error string `json:"error,omitempty" msgpack:"error,omitempty"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Action название действия: INPUT, FIRE, WEAPON, PAUSE, RESET.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// InputPayload - удерживаемые клавиши (INPUT). Заменяет прежнее состояние удержания.
type InputPayload struct {
	Forward   bool `json:"forward"`
	Backward  bool `json:"backward"`
	TurnLeft  bool `json:"turnLeft"`
	TurnRight bool `json:"turnRight"`
}

// Input переводит payload в снимок ввода
func (p InputPayload) Input() domain.Input {
	return domain.Input{
		Forward:   p.Forward,
		Backward:  p.Backward,
		TurnLeft:  p.TurnLeft,
		TurnRight: p.TurnRight,
	}
}

// FirePayload - выстрелы (FIRE). Без payload - один выстрел.
type FirePayload struct {
	Count int `json:"count"`
}

// WeaponPayload - выбор оружия (WEAPON).
type WeaponPayload struct {
	Weapon int `json:"weapon"`
}
