package network

import (
	"sync"

	"tapdash-server/pkg/api"
	"tapdash-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// DefaultBuffer - размер личного канала подписчика по умолчанию
const DefaultBuffer = 64

// Broadcaster занимается только рассылкой сообщений подписчикам.
// Подписчик - одно WebSocket-соединение, ключ - его ID.
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: ConnID -> Личный канал
	subscribers map[string]chan api.Message
	buffer      int
	log         *logrus.Entry
}

func NewBroadcaster(buffer int) *Broadcaster {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Broadcaster{
		subscribers: make(map[string]chan api.Message),
		buffer:      buffer,
		log:         logger.Component("hub"),
	}
}

// Register создает личный канал для соединения
func (b *Broadcaster) Register(connID string) chan api.Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[connID]; ok {
		close(old)
	}

	ch := make(chan api.Message, b.buffer)
	b.subscribers[connID] = ch
	return ch
}

// Unregister удаляет подписчика и закрывает его канал.
// Сообщения, уже лежащие в канале, писатель успеет дочитать.
func (b *Broadcaster) Unregister(connID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[connID]; ok {
		close(ch)
		delete(b.subscribers, connID)
	}
}

// SendTo отправляет сообщение конкретному соединению (Unicast)
func (b *Broadcaster) SendTo(connID string, msg api.Message) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ch, ok := b.subscribers[connID]
	if !ok {
		return false
	}
	select {
	case ch <- msg:
		return true
	default:
		b.log.WithFields(logrus.Fields{"conn": connID, "type": msg.Kind}).Warn("subscriber channel full, message dropped")
		return false
	}
}

// Broadcast отправляет всем. Медленный подписчик теряет сообщение, остальные нет.
func (b *Broadcaster) Broadcast(msg api.Message) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
			b.log.WithFields(logrus.Fields{"conn": id, "type": msg.Kind}).Warn("subscriber channel full, message dropped")
		}
	}
}

// HasSubscriber проверяет, подключено ли соединение
func (b *Broadcaster) HasSubscriber(connID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[connID]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
