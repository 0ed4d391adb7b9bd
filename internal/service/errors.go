package service

import "errors"

// классы ошибок, по ним роуты выбирают 404 / 422 / 500
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidFormat = errors.New("invalid format")
)

// Error несет текст для клиента и класс ошибки
type Error struct {
	Kind   error
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func (e *Error) Unwrap() error { return e.Kind }

func notFound(detail string) error {
	return &Error{Kind: ErrNotFound, Detail: detail}
}

func invalidFormat(detail string) error {
	return &Error{Kind: ErrInvalidFormat, Detail: detail}
}
