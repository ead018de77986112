package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// eventMessage сообщение из стрима событий сервера
type eventMessage struct {
	Type      string    `json:"type"`
	Message   string    `json:"message,omitempty"`
	Note      *note     `json:"note,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// testSubscribeToEvents тестирует подписку на события через WebSocket
func testSubscribeToEvents(ctx context.Context, baseURL string) {
	log.Println("\n=== Testing WebSocket Event Subscription ===")

	// Преобразуем http:// в ws:// для WebSocket соединения
	wsURL := strings.Replace(baseURL, "http", "ws", 1) + "/notes/events"
	log.Printf("Subscribing to events at %s...", wsURL)

	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		log.Fatalf("Failed to subscribe: %v", err)
	}
	defer conn.CloseNow()

	log.Println("✅ Successfully subscribed to events stream")
	log.Println("Waiting for events... (create notes via POST /notes to see them here)")

	eventCount := 0
	healthCheckCount := 0
	noteCreatedCount := 0

	// Читаем сообщения из стрима
	for {
		var msg eventMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || ctx.Err() != nil {
				log.Println("\n📡 Stream closed by server")
				break
			}
			log.Fatalf("Error receiving event: %v", err)
		}

		eventCount++

		// Обрабатываем разные типы событий
		switch msg.Type {
		case "health_check":
			healthCheckCount++
			if healthCheckCount == 1 {
				// Первое сообщение - приветственное
				log.Printf("\n✅ Received welcome message: %s", msg.Message)
				log.Printf("   Timestamp: %v", msg.Timestamp)
			} else {
				// Последующие - периодические health-check
				log.Printf("💓 Health check #%d: %s", healthCheckCount-1, msg.Message)
			}

		case "note_created":
			noteCreatedCount++
			log.Printf("\n🎉 New note created event #%d:", noteCreatedCount)
			if msg.Note != nil {
				log.Printf("   Note ID: %s", msg.Note.ID)
				log.Printf("   Title: %s", msg.Note.Title)
				if msg.Note.Content != nil {
					log.Printf("   Content: %s", *msg.Note.Content)
				}
				log.Printf("   Created at: %v", msg.Note.CreatedAt)
			}

		default:
			log.Printf("⚠️  Unknown event type: %q", msg.Type)
		}
	}

	log.Printf("\n=== Stream Statistics ===")
	log.Printf("Total events received: %d", eventCount)
	log.Printf("Health checks: %d", healthCheckCount)
	log.Printf("Note created events: %d", noteCreatedCount)
}
