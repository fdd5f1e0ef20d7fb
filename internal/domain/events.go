package domain

import (
	"fmt"

	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
)

// EventSink принимает игровые сообщения. Внедряется в системы вместо глобального буфера.
type EventSink interface {
	Emit(category enums.MessageCategory, text string)
}

// Emitf - форматирующий вариант Emit.
func Emitf(sink EventSink, category enums.MessageCategory, format string, args ...any) {
	if sink == nil {
		return
	}
	sink.Emit(category, fmt.Sprintf(format, args...))
}

// NopSink выбрасывает сообщения.
type NopSink struct{}

func (NopSink) Emit(enums.MessageCategory, string) {}

// RecordingSink запоминает все сообщения. Нужен тестам.
type RecordingSink struct {
	Messages []Message
}

func (s *RecordingSink) Emit(category enums.MessageCategory, text string) {
	s.Messages = append(s.Messages, Message{Text: text, Category: category})
}

// Texts возвращает только тексты сообщений.
func (s *RecordingSink) Texts() []string {
	out := make([]string, len(s.Messages))
	for i, m := range s.Messages {
		out[i] = m.Text
	}
	return out
}
