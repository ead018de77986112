package model

// ValidationError описывает нарушение бизнес-правила для конкретного поля заметки
type ValidationError struct {
	Field   string // Имя поля, не прошедшего проверку
	Message string // Описание нарушения
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ErrTitleEmpty возвращается, когда заголовок пуст или состоит из пробелов
var ErrTitleEmpty = &ValidationError{
	Field:   "title",
	Message: "title cannot be empty",
}

// ErrIDEmpty возвращается, когда идентификатор заметки не передан
var ErrIDEmpty = &ValidationError{
	Field:   "id",
	Message: "id cannot be empty",
}
