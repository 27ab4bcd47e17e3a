package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionCommandOp - действие пользователя над контролами фильтра.
type SessionCommandOp string

const (
	OpSetTab              SessionCommandOp = "set_tab"
	OpSetType             SessionCommandOp = "set_type"
	OpSetMaxPrice         SessionCommandOp = "set_max_price"
	OpSetBeds             SessionCommandOp = "set_beds"
	OpSetLongTerm         SessionCommandOp = "set_long_term"
	OpSetShortTerm        SessionCommandOp = "set_short_term"
	OpToggleAmenity       SessionCommandOp = "toggle_amenity"
	OpSetFreeTextType     SessionCommandOp = "set_free_text_type"
	OpSetFreeTextLocation SessionCommandOp = "set_free_text_location"
	OpSetSort             SessionCommandOp = "set_sort"
	OpSetPage             SessionCommandOp = "set_page"
	OpReset               SessionCommandOp = "reset"
)

// SessionCommand - одна команда; Value разбирается в зависимости от Op.
type SessionCommand struct {
	Op    SessionCommandOp
	Value string
}

// SessionSnapshot - состояние сессии просмотра на момент ответа.
type SessionSnapshot struct {
	ID       uuid.UUID
	State    FilterState
	View     ViewModel
	LastSeen time.Time
}
