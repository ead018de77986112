package rest

import (
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// healthCheckInterval интервал отправки периодических health-check сообщений
const healthCheckInterval = 15 * time.Second

// eventMessage сообщение, отправляемое подписчикам событий.
// Type: "health_check" или "note_created"
type eventMessage struct {
	Type      string        `json:"type"`
	Message   string        `json:"message,omitempty"`
	Note      *noteResponse `json:"note,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// SubscribeToEvents открывает WebSocket соединение и стримит события:
// - приветственное сообщение при подключении
// - периодические health-check сообщения
// - событие note_created при каждом создании заметки
func (h *Handler) SubscribeToEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// CORS для WebSocket обрабатываем здесь, а не в общем middleware
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Printf("[WS] Failed to accept connection: %v", err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	log.Printf("[WS] Client subscribed to events from %s", r.RemoteAddr)

	// Подписываемся на события создания заметок
	eventsCh := h.events.Subscribe()
	defer h.events.Unsubscribe(eventsCh)

	// Приветственное сообщение при подключении
	welcome := eventMessage{
		Type:      "health_check",
		Message:   "subscribed to note events",
		Timestamp: time.Now().UTC(),
	}
	if err := wsjson.Write(ctx, conn, welcome); err != nil {
		log.Printf("[WS] Failed to send welcome message: %v", err)
		return
	}

	// Тикер для периодических health-check сообщений
	ticker := time.NewTicker(healthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Клиент отключился или сервер завершает работу
			log.Printf("[WS] Events subscription closed for %s", r.RemoteAddr)
			conn.Close(websocket.StatusNormalClosure, "server shutting down")
			return

		case <-ticker.C:
			msg := eventMessage{
				Type:      "health_check",
				Message:   "service is healthy",
				Timestamp: time.Now().UTC(),
			}
			if err := wsjson.Write(ctx, conn, msg); err != nil {
				log.Printf("[WS] Failed to send health check: %v", err)
				return
			}

		case note, ok := <-eventsCh:
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "event stream closed")
				return
			}
			resp := modelToResponse(note)
			msg := eventMessage{
				Type:      "note_created",
				Note:      &resp,
				Timestamp: time.Now().UTC(),
			}
			if err := wsjson.Write(ctx, conn, msg); err != nil {
				log.Printf("[WS] Failed to send note_created event: %v", err)
				return
			}
		}
	}
}
