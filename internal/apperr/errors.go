// Package apperr содержит типизированные ошибки доменного слоя.
// Резолверы и хранилища возвращают их через fmt.Errorf("...: %w", ...),
// вызывающий код различает их через errors.Is.
package apperr

import "errors"

var (
	// Ошибки аутентификации
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrInvalidToken     = errors.New("invalid token")

	// Ошибки входа
	ErrNoSuchUser         = errors.New("no such user")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Ошибки записи
	ErrDuplicateEmail = errors.New("email already taken")
	ErrDuplicateVote  = errors.New("already voted for this link")
	ErrNotFound       = errors.New("not found")
)
