package service

import (
	"context"

	"notes-service/internal/model"
)

// NoteService интерфейс для бизнес-логики работы с заметками.
// Опциональные поля передаются указателями: nil означает "поле не передано".
type NoteService interface {
	// Create создает новую заметку с указанным title и опциональным content
	Create(ctx context.Context, title string, content *string) (model.Note, error)

	// Get возвращает заметку по её ID
	Get(ctx context.Context, id string) (model.Note, error)

	// List возвращает список всех заметок
	List(ctx context.Context) ([]model.Note, error)

	// Update обновляет заметку с указанным ID (title и content опциональны,
	// перезаписываются только переданные поля)
	Update(ctx context.Context, id string, title, content *string) (model.Note, error)

	// Delete удаляет заметку по ID
	Delete(ctx context.Context, id string) error
}
