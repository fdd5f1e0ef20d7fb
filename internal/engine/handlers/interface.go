package handlers

import (
	"encoding/json"
)

// HandlerFunc - это контракт для любой команды (MOVE, USE, etc).
// G - состояние, которое хендлер меняет (обычно *engine.Game).
// Хендлер НЕ пишет в логи сервиса напрямую, он возвращает ошибку.
type HandlerFunc[G any] func(g G, payload json.RawMessage) error

// Registry связывает действия с хендлерами.
type Registry[G any, K comparable] map[K]HandlerFunc[G]
