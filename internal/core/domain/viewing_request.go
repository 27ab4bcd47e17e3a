package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ViewingRequestSource - откуда пришла заявка на просмотр.
type ViewingRequestSource string

const (
	ViewingSourceDetailPage ViewingRequestSource = "detail_page"
	ViewingSourceMap        ViewingRequestSource = "map"
	ViewingSourceCTA        ViewingRequestSource = "cta"
)

// ViewingRequest - заявка "Send a request" со страницы объекта, карты или CTA-баннера.
type ViewingRequest struct {
	ID         uuid.UUID
	PropertyID int
	Name       string
	Email      string
	Phone      string
	Message    string
	Source     ViewingRequestSource
	CreatedAt  time.Time
}

// Validate проверяет поля, введённые пользователем.
func (r ViewingRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required: %w", ErrInvalidViewingRequest)
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("email %q: %w", r.Email, ErrInvalidViewingRequest)
	}
	switch r.Source {
	case ViewingSourceDetailPage, ViewingSourceMap, ViewingSourceCTA:
	default:
		return fmt.Errorf("source %q: %w", r.Source, ErrInvalidViewingRequest)
	}
	if r.Source == ViewingSourceDetailPage && r.PropertyID == 0 {
		return fmt.Errorf("property id is required for detail page requests: %w", ErrInvalidViewingRequest)
	}
	return nil
}
