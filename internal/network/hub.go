package network

import (
	"sync"

	"github.com/Frostlock/Warrens-II/pkg/api"
	"github.com/Frostlock/Warrens-II/pkg/logger"
)

// Broadcaster занимается только рассылкой снимков подписчикам.
// Последний снимок хранится для новых подписчиков и HTTP запросов.
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: ClientID -> Личный канал
	subscribers map[string]chan *api.Snapshot
	latest      *api.Snapshot
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan *api.Snapshot),
	}
}

// Register создает личный канал для клиента (наблюдателя или агента).
// Если снимок уже есть, он сразу кладется в канал.
func (b *Broadcaster) Register(clientID string) chan *api.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[clientID]; ok {
		close(old)
	}

	ch := make(chan *api.Snapshot, 16)
	if b.latest != nil {
		ch <- b.latest
	}
	b.subscribers[clientID] = ch
	return ch
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(clientID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[clientID]; ok {
		close(ch)
		delete(b.subscribers, clientID)
	}
}

// Publish запоминает снимок и отправляет всем. Медленный подписчик пропускает снимок.
func (b *Broadcaster) Publish(snap *api.Snapshot) {
	b.mu.Lock()
	b.latest = snap
	b.mu.Unlock()

	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subscribers {
		select {
		case ch <- snap:
		default:
			logger.Log.WithField("client", id).Debug("Hub: channel full, snapshot dropped")
		}
	}
}

// Latest - последний опубликованный снимок или nil.
func (b *Broadcaster) Latest() *api.Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.latest
}

// HasSubscriber проверяет, подписан ли клиент
func (b *Broadcaster) HasSubscriber(clientID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[clientID]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
