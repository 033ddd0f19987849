package service

import (
	"encoding/json"
	"log"
	"sync"
)

var (
	eventOnce     sync.Once
	eventInstance *EventHub
)

// Event 推送给实时通道的消息
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// EventHub 管理事件订阅和广播
type EventHub struct {
	pool map[chan []byte]struct{}
	sync.RWMutex
}

// NewEventHub 创建事件中心
func NewEventHub() *EventHub {
	return &EventHub{pool: make(map[chan []byte]struct{})}
}

// GetEventHub 返回全局事件中心
func GetEventHub() *EventHub {
	eventOnce.Do(func() {
		eventInstance = NewEventHub()
	})
	return eventInstance
}

// Publish 编码事件并广播
func (h *EventHub) Publish(name string, data any) {
	msg, err := json.Marshal(Event{Event: name, Data: data})
	if err != nil {
		log.Printf("[event] marshal %s failed: %v", name, err)
		return
	}
	h.Broadcast(msg)
}

// Broadcast 非阻塞地向所有订阅者发送消息，通道已满则跳过
func (h *EventHub) Broadcast(msg []byte) {
	h.RLock()
	defer h.RUnlock()

	for ch := range h.pool {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Subscribe 创建订阅通道，返回通道和取消函数
func (h *EventHub) Subscribe(buffer int) (<-chan []byte, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan []byte, buffer)

	h.Lock()
	h.pool[ch] = struct{}{}
	h.Unlock()

	return ch, func() {
		h.Lock()
		defer h.Unlock()
		if _, ok := h.pool[ch]; ok {
			delete(h.pool, ch)
			close(ch)
		}
	}
}

// Subscribers 当前订阅数
func (h *EventHub) Subscribers() int {
	h.RLock()
	defer h.RUnlock()
	return len(h.pool)
}
