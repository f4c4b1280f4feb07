// Package network рассылает снимки состояния подписчикам (зрителям и удаленным игрокам).
package network

import (
	"sync"

	"github.com/google/uuid"

	"github.com/wjkennedy/jira-quake3/internal/domain"
)

// Broadcaster занимается только рассылкой снимков подписчикам.
// Снимки неизменяемы, поэтому одно значение уходит всем без копирования.
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: SessionID -> Личный канал
	subscribers map[uuid.UUID]chan domain.Snapshot
	dropped     uint64
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[uuid.UUID]chan domain.Snapshot),
	}
}

// Register создает личный канал для сессии
func (b *Broadcaster) Register(id uuid.UUID) <-chan domain.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[id]; ok {
		close(old)
	}

	ch := make(chan domain.Snapshot, 16)
	b.subscribers[id] = ch
	return ch
}

// Unregister удаляет подписчика и закрывает его канал
func (b *Broadcaster) Unregister(id uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
}

// Broadcast отправляет всем. Медленный подписчик пропускает кадр, цикл не ждет.
func (b *Broadcaster) Broadcast(snap domain.Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- snap:
		default:
			b.dropped++
		}
	}
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Dropped - сколько кадров не поместилось в каналы подписчиков
func (b *Broadcaster) Dropped() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dropped
}
