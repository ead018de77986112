package model

import (
	"strings"
	"time"
)

// Note представляет заметку (доменная модель)
type Note struct {
	ID        string    // UUID заметки
	Title     string    // Заголовок заметки
	Content   *string   // Содержание заметки (nil = содержание не задано)
	CreatedAt time.Time // Дата создания (UTC)
	UpdatedAt time.Time // Дата последнего обновления (UTC)
}

// Validate проверяет валидность заметки
func (n *Note) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return ErrTitleEmpty
	}
	return nil
}

// IsEmpty проверяет, пуста ли заметка
func (n *Note) IsEmpty() bool {
	return n.ID == "" && n.Title == "" && n.Content == nil
}
