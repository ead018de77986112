package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-service/internal/config"
	"notes-service/internal/repository/memory"
	notesService "notes-service/internal/service/notes"
)

// newEventsTestServer поднимает реальный HTTP сервер с полным стеком
// (router → middleware → handler → service → repository)
func newEventsTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	repo := memory.NewRepository()
	events := notesService.NewEventService()
	service := notesService.NewNoteService(repo, events)
	handler := NewHandler(service, events)
	router := NewRouter(handler, &config.ConfigHTTP{CORSAllowedOrigins: "*"})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

// TestSubscribeToEvents_Handshake проверяет, что WebSocket upgrade проходит
// через всю цепочку middleware (logging оборачивает ResponseWriter и должен
// оставлять доступ к Hijacker через Unwrap)
func TestSubscribeToEvents_Handshake(t *testing.T) {
	srv := newEventsTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := strings.Replace(srv.URL, "http", "ws", 1) + "/notes/events"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err, "Expected WebSocket handshake to succeed through the middleware chain")
	defer conn.CloseNow()

	// Первым сообщением приходит приветственное
	var welcome eventMessage
	require.NoError(t, wsjson.Read(ctx, conn, &welcome))
	assert.Equal(t, "health_check", welcome.Type)
	assert.Contains(t, welcome.Message, "subscribed")
	assert.False(t, welcome.Timestamp.IsZero())
}

// TestSubscribeToEvents_NoteCreated проверяет, что подписчик получает событие
// note_created после создания заметки через POST /notes
func TestSubscribeToEvents_NoteCreated(t *testing.T) {
	srv := newEventsTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := strings.Replace(srv.URL, "http", "ws", 1) + "/notes/events"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	// Пропускаем приветственное сообщение
	var welcome eventMessage
	require.NoError(t, wsjson.Read(ctx, conn, &welcome))
	require.Equal(t, "health_check", welcome.Type)

	// Создаем заметку через REST API
	resp, err := http.Post(srv.URL+"/notes", "application/json",
		strings.NewReader(`{"title":"Groceries","content":"milk, eggs"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Подписчик получает событие note_created с созданной заметкой
	var event eventMessage
	require.NoError(t, wsjson.Read(ctx, conn, &event))
	assert.Equal(t, "note_created", event.Type)
	require.NotNil(t, event.Note)
	assert.Equal(t, "Groceries", event.Note.Title)
	require.NotNil(t, event.Note.Content)
	assert.Equal(t, "milk, eggs", *event.Note.Content)
	assert.NotEmpty(t, event.Note.ID)
}
