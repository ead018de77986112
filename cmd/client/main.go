package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

const defaultBaseURL = "http://localhost:8080"

// note представление заметки, возвращаемое сервером
type note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   *string   `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// apiError тело ответа с ошибкой
type apiError struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func main() {
	// Получаем адрес сервера из переменной окружения или используем значение по умолчанию
	baseURL := os.Getenv("SERVER_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	log.Printf("Using Notes Service at %s", baseURL)

	client := &http.Client{Timeout: 10 * time.Second}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Выбираем, какой тест запустить через переменную окружения или аргумент
	testType := os.Getenv("TEST_TYPE")
	if testType == "" && len(os.Args) > 1 {
		testType = os.Args[1]
	}

	switch testType {
	case "events", "subscribe", "stream":
		// Тестируем подписку на события через WebSocket
		testSubscribeToEvents(ctx, baseURL)
	case "error":
		// Тестируем обработку ошибок (404, 400, 422)
		testErrorHandling(ctx, client, baseURL)
	case "crud", "success":
		// Тестируем полный CRUD сценарий
		testCRUDScenario(ctx, client, baseURL)
	default:
		log.Println("No TEST_TYPE specified, running CRUD scenario by default")
		log.Println("Available test types: crud/success, error, events/subscribe/stream")
		log.Println("Usage: TEST_TYPE=crud go run ./cmd/client OR go run ./cmd/client crud")
		testCRUDScenario(ctx, client, baseURL)
	}
}

// testCRUDScenario тестирует полный жизненный цикл заметки:
// create → get → update → delete → get (404)
func testCRUDScenario(ctx context.Context, client *http.Client, baseURL string) {
	log.Println("\n=== Testing CRUD Scenario ===")

	// Создаем заметку
	created, status, err := doJSON[note](ctx, client, http.MethodPost, baseURL+"/notes",
		map[string]any{"title": "Groceries"})
	if err != nil {
		log.Fatalf("Create failed: %v", err)
	}
	if status != http.StatusCreated {
		log.Fatalf("Expected 201 on create, got %d", status)
	}
	log.Printf("✅ Created note %s (title=%q)", created.ID, created.Title)

	// Получаем созданную заметку
	fetched, status, err := doJSON[note](ctx, client, http.MethodGet, baseURL+"/notes/"+created.ID, nil)
	if err != nil || status != http.StatusOK {
		log.Fatalf("Get failed: status=%d err=%v", status, err)
	}
	log.Printf("✅ Fetched note %s (title=%q)", fetched.ID, fetched.Title)

	// Частично обновляем: только content, title остается прежним
	updated, status, err := doJSON[note](ctx, client, http.MethodPut, baseURL+"/notes/"+created.ID,
		map[string]any{"content": "milk, eggs"})
	if err != nil || status != http.StatusOK {
		log.Fatalf("Update failed: status=%d err=%v", status, err)
	}
	log.Printf("✅ Updated note %s (title=%q, content=%q)", updated.ID, updated.Title, *updated.Content)

	// Список заметок
	notes, status, err := doJSON[[]note](ctx, client, http.MethodGet, baseURL+"/notes", nil)
	if err != nil || status != http.StatusOK {
		log.Fatalf("List failed: status=%d err=%v", status, err)
	}
	log.Printf("✅ Listed %d note(s)", len(notes))

	// Удаляем заметку
	status, err = do(ctx, client, http.MethodDelete, baseURL+"/notes/"+created.ID, nil)
	if err != nil || status != http.StatusNoContent {
		log.Fatalf("Delete failed: status=%d err=%v", status, err)
	}
	log.Printf("✅ Deleted note %s", created.ID)

	// Повторный GET должен вернуть 404
	status, err = do(ctx, client, http.MethodGet, baseURL+"/notes/"+created.ID, nil)
	if err != nil {
		log.Fatalf("Get after delete failed: %v", err)
	}
	if status != http.StatusNotFound {
		log.Fatalf("Expected 404 after delete, got %d", status)
	}
	log.Printf("✅ Note is gone (404 after delete)")

	log.Println("\n=== CRUD scenario completed successfully ===")
}

// testErrorHandling тестирует обработку ошибок API
func testErrorHandling(ctx context.Context, client *http.Client, baseURL string) {
	log.Println("\n=== Testing Error Handling ===")

	// Невалидный UUID → 400
	status, _ := do(ctx, client, http.MethodGet, baseURL+"/notes/not-a-uuid", nil)
	log.Printf("GET /notes/not-a-uuid → %d (expected 400)", status)

	// Несуществующая заметка → 404
	status, _ = do(ctx, client, http.MethodGet, baseURL+"/notes/00000000-0000-0000-0000-000000000000", nil)
	log.Printf("GET /notes/<missing uuid> → %d (expected 404)", status)

	// Пустой title → 422 с указанием поля
	apiErr, status, err := doJSON[apiError](ctx, client, http.MethodPost, baseURL+"/notes",
		map[string]any{"title": "   "})
	if err != nil {
		log.Fatalf("Create with empty title failed: %v", err)
	}
	log.Printf("POST /notes with blank title → %d (expected 422), error=%q field=%q",
		status, apiErr.Error, apiErr.Field)

	log.Println("\n=== Error handling test completed ===")
}

// doJSON выполняет запрос и декодирует JSON ответ в указанный тип
func doJSON[T any](ctx context.Context, client *http.Client, method, url string, body any) (T, int, error) {
	var result T

	resp, err := send(ctx, client, method, url, body)
	if err != nil {
		return result, 0, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil && err != io.EOF {
		return result, resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}

	return result, resp.StatusCode, nil
}

// do выполняет запрос и возвращает только статус ответа
func do(ctx context.Context, client *http.Client, method, url string, body any) (int, error) {
	resp, err := send(ctx, client, method, url, body)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

func send(ctx context.Context, client *http.Client, method, url string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return client.Do(req)
}
