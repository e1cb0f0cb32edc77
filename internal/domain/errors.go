package domain

import "errors"

// Ошибки валидации доменных объектов.
var (
	// ErrRequiredField — обязательное поле не заполнено.
	ErrRequiredField = errors.New("required field is empty")

	// ErrFieldTooLong — значение поля превышает допустимую длину.
	ErrFieldTooLong = errors.New("field is too long")

	// ErrTurnLimitOutOfRange — лимит песен за ход вне допустимого диапазона.
	ErrTurnLimitOutOfRange = errors.New("turn limit out of range")
)

// ValidationError — ошибка валидации с указанием поля.
type ValidationError struct {
	Field   string // поле, вызвавшее ошибку
	Message string // описание ошибки
	Err     error  // базовая ошибка
}

// Error реализует интерфейс error.
func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap возвращает базовую ошибку.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError создаёт новую ошибку валидации.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
