package shop

import (
	"errors"
	"fmt"
)

// Виды ошибок. Проверять через errors.Is или Is*.
var (
	ErrValidation = errors.New("validation error")
	ErrAuth       = errors.New("auth error")
	ErrCapacity   = errors.New("capacity error")
	ErrNotFound   = errors.New("not found")
)

// Error — ошибка, которую показывают пользователю как уведомление
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

func IsAuth(err error) bool { return errors.Is(err, ErrAuth) }

func IsCapacity(err error) bool { return errors.Is(err, ErrCapacity) }

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
