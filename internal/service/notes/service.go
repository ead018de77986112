package notes

import (
	"context"
	"strings"
	"time"

	"notes-service/internal/model"
	"notes-service/internal/repository"
	svc "notes-service/internal/service"
)

var _ svc.NoteService = (*service)(nil)

type service struct {
	noteRepository repository.NoteRepository
	events         *EventService
}

// NewNoteService создает новый экземпляр сервиса для работы с заметками.
// events может быть nil, если публикация событий не нужна (например, в тестах).
func NewNoteService(noteRepository repository.NoteRepository, events *EventService) svc.NoteService {
	return &service{
		noteRepository: noteRepository,
		events:         events,
	}
}

// Create создает новую заметку с указанным title и опциональным content
func (s *service) Create(ctx context.Context, title string, content *string) (model.Note, error) {
	// Валидация: title не должен быть пустым после обрезки пробелов
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Note{}, model.ErrTitleEmpty
	}

	// Создаем новую заметку (content сохраняем как передан, nil = не задано).
	// Значение копируем, чтобы хранилище не разделяло указатель с вызывающим кодом
	now := time.Now().UTC()
	note := model.Note{
		Title:     title,
		Content:   copyContent(content),
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Сохраняем через репозиторий (UUID будет сгенерирован в репозитории)
	createdNote, err := s.noteRepository.Create(ctx, note)
	if err != nil {
		return model.Note{}, err
	}

	// Публикуем событие о создании заметки для подписчиков
	if s.events != nil {
		s.events.Publish(createdNote)
	}

	return createdNote, nil
}

// Get возвращает заметку по её ID
func (s *service) Get(ctx context.Context, id string) (model.Note, error) {
	if id == "" {
		return model.Note{}, model.ErrIDEmpty
	}

	note, err := s.noteRepository.GetByID(ctx, id)
	if err != nil {
		return model.Note{}, err
	}

	return note, nil
}

// List возвращает список всех заметок
func (s *service) List(ctx context.Context) ([]model.Note, error) {
	notes, err := s.noteRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	return notes, nil
}

// Update обновляет заметку с указанным ID.
// Перезаписываются только переданные (не nil) поля; переданный title должен быть
// непустым после обрезки пробелов. UpdatedAt обновляется при любом успешном
// вызове, даже если ни одно поле не передано.
func (s *service) Update(ctx context.Context, id string, title, content *string) (model.Note, error) {
	if id == "" {
		return model.Note{}, model.ErrIDEmpty
	}

	// Получаем существующую заметку
	existingNote, err := s.noteRepository.GetByID(ctx, id)
	if err != nil {
		return model.Note{}, err
	}

	// Обновляем title только если он передан
	if title != nil {
		titleTrimmed := strings.TrimSpace(*title)
		if titleTrimmed == "" {
			return model.Note{}, model.ErrTitleEmpty
		}
		existingNote.Title = titleTrimmed
	}

	// Обновляем content только если он передан.
	// content: null в запросе неотличим от отсутствия поля и трактуется как no-op
	if content != nil {
		existingNote.Content = copyContent(content)
	}

	// Сохраняем через репозиторий (UpdatedAt обновляется в репозитории)
	updatedNote, err := s.noteRepository.Update(ctx, existingNote)
	if err != nil {
		return model.Note{}, err
	}

	return updatedNote, nil
}

// copyContent копирует значение content, чтобы заметка в хранилище
// не разделяла указатель с DTO запроса
func copyContent(content *string) *string {
	if content == nil {
		return nil
	}
	c := *content
	return &c
}

// Delete удаляет заметку по ID
func (s *service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return model.ErrIDEmpty
	}

	err := s.noteRepository.Delete(ctx, id)
	if err != nil {
		return err
	}

	return nil
}
