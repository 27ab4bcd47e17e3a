package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ayleenrq/urbane/internal/core/domain"
	"github.com/ayleenrq/urbane/internal/core/port"
)

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// statusForError сопоставляет доменные ошибки HTTP-статусам
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrPropertyNotFound),
		errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidPageSize),
		errors.Is(err, domain.ErrInvalidSortKey),
		errors.Is(err, domain.ErrInvalidFilter),
		errors.Is(err, domain.ErrInvalidViewingRequest),
		errors.Is(err, domain.ErrInvalidSessionCommand):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeUseCaseError пишет ответ по ошибке use case'а. Внутренние ошибки наружу не отдаются.
func writeUseCaseError(w http.ResponseWriter, logger port.LoggerPort, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error("Use case failed", err, nil)
		WriteJSONError(w, status, "Internal server error")
		return
	}
	logger.Warn("Request rejected", port.Fields{"status_code": status, "error": err.Error()})
	WriteJSONError(w, status, err.Error())
}
