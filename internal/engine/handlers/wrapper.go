package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/Frostlock/Warrens-II/pkg/api"
)

// TypedHandlerFunc получает уже разобранный и проверенный payload.
type TypedHandlerFunc[G, T any] func(g G, payload T) error

// EmptyHandlerFunc - команда без данных (WAIT, INTERACT).
type EmptyHandlerFunc[G any] func(g G) error

// WithPayload разбирает JSON в T, зовёт Validate, если T его умеет,
// и только потом передаёт payload в handler.
func WithPayload[G, T any](handler TypedHandlerFunc[G, T]) HandlerFunc[G] {
	return func(g G, raw json.RawMessage) error {
		var payload T
		if err := json.Unmarshal(raw, &payload); err != nil {
			return fmt.Errorf("invalid payload format: %w", err)
		}
		if v, ok := any(payload).(api.Validator); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
		}
		return handler(g, payload)
	}
}

// WithEmptyPayload отбрасывает payload целиком.
func WithEmptyPayload[G any](handler EmptyHandlerFunc[G]) HandlerFunc[G] {
	return func(g G, _ json.RawMessage) error {
		return handler(g)
	}
}
