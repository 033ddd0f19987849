package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rehiy/web-radio/service"
)

const pingInterval = 30 * time.Second

// WebSocketHandler WebSocket处理器
type WebSocketHandler struct {
	events   *service.EventHub
	upgrader websocket.Upgrader
	ping     time.Duration
}

// NewWebSocketHandler 创建新的WebSocket处理器
func NewWebSocketHandler(events *service.EventHub) *WebSocketHandler {
	if events == nil {
		events = service.GetEventHub()
	}
	return &WebSocketHandler{
		events: events,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		ping: pingInterval,
	}
}

// HandleWebSocket 推送设备状态更新
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	events, cancel := h.events.Subscribe(16)
	defer cancel()

	// 读取客户端消息以感知断开
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	log.Printf("WebSocket client connected: %s", r.RemoteAddr)

	ticker := time.NewTicker(h.ping)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, event); err != nil {
				log.Printf("WebSocket client disconnected: %v(%s)", r.RemoteAddr, err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("WebSocket client disconnected: %v(%s)", r.RemoteAddr, err)
				return
			}
		case <-done:
			log.Printf("WebSocket client disconnected: %s", r.RemoteAddr)
			return
		}
	}
}
