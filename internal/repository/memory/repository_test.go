package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"notes-service/internal/model"

	"github.com/google/uuid"
)

func TestRepository_Create_GeneratesUUID(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	note, err := repo.Create(ctx, model.Note{Title: "Test"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := uuid.Parse(note.ID); err != nil {
		t.Errorf("Expected valid UUID, got %q: %v", note.ID, err)
	}
	if note.CreatedAt.IsZero() || note.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set")
	}
	if note.CreatedAt.Location() != time.UTC {
		t.Errorf("Expected UTC timestamps, got %v", note.CreatedAt.Location())
	}
}

func TestRepository_Create_UniqueIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		note, err := repo.Create(ctx, model.Note{Title: "Test"})
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if seen[note.ID] {
			t.Fatalf("Duplicate ID generated: %s", note.ID)
		}
		seen[note.ID] = true
	}
}

func TestRepository_Create_KeepsProvidedCreatedAt(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	createdAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	note, err := repo.Create(ctx, model.Note{Title: "Test", CreatedAt: createdAt})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if !note.CreatedAt.Equal(createdAt) {
		t.Errorf("Expected CreatedAt %v preserved, got %v", createdAt, note.CreatedAt)
	}
	if note.UpdatedAt.Before(note.CreatedAt) {
		t.Error("Expected UpdatedAt >= CreatedAt")
	}
}

func TestRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	created, err := repo.Create(ctx, model.Note{Title: "Test"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	fetched, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if fetched.ID != created.ID || fetched.Title != created.Title {
		t.Errorf("Fetched note differs from created: %+v vs %+v", fetched, created)
	}

	_, err = repo.GetByID(ctx, uuid.New().String())
	if !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("Expected ErrNoteNotFound, got %v", err)
	}
}

func TestRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	created, err := repo.Create(ctx, model.Note{Title: "Original"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	created.Title = "Updated"
	updated, err := repo.Update(ctx, created)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if updated.Title != "Updated" {
		t.Errorf("Expected title %q, got %q", "Updated", updated.Title)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("Expected UpdatedAt refreshed: %v vs %v", updated.UpdatedAt, created.UpdatedAt)
	}

	// Обновление несуществующей заметки
	_, err = repo.Update(ctx, model.Note{ID: uuid.New().String(), Title: "Ghost"})
	if !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("Expected ErrNoteNotFound, got %v", err)
	}
}

func TestRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	created, err := repo.Create(ctx, model.Note{Title: "To Delete"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("Expected ErrNoteNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, created.ID); !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("Expected ErrNoteNotFound on second delete, got %v", err)
	}
}

func TestRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	notes, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("Expected empty list, got %d notes", len(notes))
	}

	for i := 0; i < 3; i++ {
		if _, err := repo.Create(ctx, model.Note{Title: "Note"}); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	notes, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(notes) != 3 {
		t.Errorf("Expected 3 notes, got %d", len(notes))
	}
}
