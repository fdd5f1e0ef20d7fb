package domain

import (
	"sync"
	"time"

	"github.com/Frostlock/Warrens-II/internal/core/types/enums"
	"github.com/Frostlock/Warrens-II/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Message - запись игрового лога.
type Message struct {
	Text      string                `json:"text"`
	Category  enums.MessageCategory `json:"category"`
	Timestamp int64                 `json:"timestamp"`
}

// MessageBuffer - кольцевой буфер последних игровых сообщений.
// При переполнении вытесняется самое старое. Все сообщения дублируются в лог.
type MessageBuffer struct {
	mu    sync.Mutex
	ring  []Message
	start int
	size  int
	log   *logrus.Entry
}

func NewMessageBuffer(capacity int) *MessageBuffer {
	if capacity < 1 {
		capacity = MessageBufferLength
	}
	return &MessageBuffer{
		ring: make([]Message, capacity),
		log:  logger.For("messages"),
	}
}

// Emit реализует EventSink. В буфер попадают только GAME и COMBAT сообщения.
func (b *MessageBuffer) Emit(category enums.MessageCategory, text string) {
	b.log.WithField("category", category.String()).Info(text)
	if category == enums.MessageDebug {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	msg := Message{Text: text, Category: category, Timestamp: time.Now().UnixMilli()}
	capacity := len(b.ring)
	if b.size < capacity {
		b.ring[(b.start+b.size)%capacity] = msg
		b.size++
		return
	}
	b.ring[b.start] = msg
	b.start = (b.start + 1) % capacity
}

// Messages возвращает копию содержимого от старых к новым.
func (b *MessageBuffer) Messages() []Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Message, b.size)
	for i := 0; i < b.size; i++ {
		out[i] = b.ring[(b.start+i)%len(b.ring)]
	}
	return out
}

func (b *MessageBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

func (b *MessageBuffer) Cap() int {
	return len(b.ring)
}

func (b *MessageBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.start, b.size = 0, 0
}
