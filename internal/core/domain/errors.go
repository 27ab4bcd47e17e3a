package domain

import "errors"

var (
	// Ошибки конфигурации движка - ошибка программиста, не подставляем значения по умолчанию.
	ErrInvalidPageSize = errors.New("page size must be positive")
	ErrInvalidSortKey  = errors.New("invalid sort key")

	ErrInvalidFilter   = errors.New("invalid filter value")
	ErrInvalidProperty = errors.New("invalid property record")

	ErrPropertyNotFound      = errors.New("property not found")
	ErrSessionNotFound       = errors.New("browsing session not found")
	ErrInvalidViewingRequest = errors.New("invalid viewing request")
	ErrInvalidSessionCommand = errors.New("invalid session command")
)
