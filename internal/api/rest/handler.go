package rest

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"notes-service/internal/model"
	"notes-service/internal/repository/memory"
	svc "notes-service/internal/service"
	notesService "notes-service/internal/service/notes"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Handler реализует HTTP/JSON API для работы с заметками
type Handler struct {
	noteService svc.NoteService
	events      *notesService.EventService
}

// NewHandler создает новый экземпляр REST хэндлера
func NewHandler(noteService svc.NoteService, events *notesService.EventService) *Handler {
	return &Handler{
		noteService: noteService,
		events:      events,
	}
}

// noteResponse представление заметки на проводе.
// Content сериализуется в null, если содержание не задано.
type noteResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   *string   `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// createNoteRequest тело запроса на создание заметки
type createNoteRequest struct {
	Title   string  `json:"title"`
	Content *string `json:"content"`
}

// updateNoteRequest тело запроса на обновление заметки.
// nil-поля не перезаписываются; content: null неотличим от отсутствия
// поля и трактуется как no-op (не очищает содержание).
type updateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// errorResponse тело ответа с ошибкой
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// modelToResponse конвертирует domain модель Note в транспортное представление
func modelToResponse(note model.Note) noteResponse {
	return noteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

// modelsToResponses конвертирует слайс domain моделей в транспортные представления
func modelsToResponses(notes []model.Note) []noteResponse {
	responses := make([]noteResponse, len(notes))
	for i, note := range notes {
		responses[i] = modelToResponse(note)
	}
	return responses
}

// Health возвращает статус работоспособности сервиса
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreateNote создает новую заметку
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	// Вызываем бизнес-логику
	note, err := h.noteService.Create(r.Context(), req.Title, req.Content)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, modelToResponse(note))
}

// ListNotes возвращает список всех заметок
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.noteService.List(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, modelsToResponses(notes))
}

// GetNote возвращает заметку по её UUID
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(w, r)
	if !ok {
		return
	}

	note, err := h.noteService.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, modelToResponse(note))
}

// UpdateNote обновляет существующую заметку (частичное обновление)
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(w, r)
	if !ok {
		return
	}

	var req updateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	note, err := h.noteService.Update(r.Context(), id, req.Title, req.Content)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, modelToResponse(note))
}

// DeleteNote удаляет заметку по UUID
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(w, r)
	if !ok {
		return
	}

	if err := h.noteService.Delete(r.Context(), id); err != nil {
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// noteID извлекает и валидирует UUID заметки из пути запроса.
// Невалидный идентификатор отклоняется со статусом 400 до обращения к хранилищу
func noteID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "id must be a valid UUID", "id")
		return "", false
	}
	return id, true
}

// handleError конвертирует внутренние ошибки в HTTP статусы
func (h *Handler) handleError(w http.ResponseWriter, err error) {
	// Заметка не найдена
	if errors.Is(err, memory.ErrNoteNotFound) {
		writeError(w, http.StatusNotFound, "note not found", "")
		return
	}

	// Ошибки валидации (пустой title и т.п.)
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusUnprocessableEntity, validationErr.Message, validationErr.Field)
		return
	}

	// Все остальные ошибки - Internal
	log.Printf("[HTTP] Internal error: %v", err)
	writeError(w, http.StatusInternalServerError, "internal error", "")
}

// writeJSON сериализует ответ в JSON с указанным статусом
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[HTTP] Failed to encode response: %v", err)
	}
}

// writeError отправляет JSON ответ с описанием ошибки
func writeError(w http.ResponseWriter, status int, message, field string) {
	writeJSON(w, status, errorResponse{Error: message, Field: field})
}
