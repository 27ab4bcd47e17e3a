package rest

import (
	"encoding/json"
	"net/http"

	"github.com/ayleenrq/urbane/internal/contextkeys"
	"github.com/ayleenrq/urbane/internal/core/domain"
	"github.com/ayleenrq/urbane/internal/core/port"
	"github.com/ayleenrq/urbane/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxSessionCommandsBody = 64 << 10

type SessionHandler struct {
	sessionUC usecases_port.ManageSessionUseCase
	defaults  domain.FilterState
}

func NewSessionHandler(sessionUC usecases_port.ManageSessionUseCase, defaults domain.FilterState) *SessionHandler {
	return &SessionHandler{sessionUC: sessionUC, defaults: defaults}
}

func sessionIDFromRequest(w http.ResponseWriter, r *http.Request, logger port.LoggerPort) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "sessionID")
	id, err := uuid.Parse(raw)
	if err != nil {
		logger.Warn("Invalid session ID format", port.Fields{"session_id": raw})
		WriteJSONError(w, http.StatusBadRequest, "Invalid session ID format")
		return uuid.Nil, false
	}
	return id, true
}

// CreateSession обрабатывает POST /api/v1/sessions. Параметры URL засевают начальное состояние,
// как и у GET /properties.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler": "CreateSession",
	})

	var seed *domain.FilterState
	if len(r.URL.Query()) > 0 {
		state, err := SeedFilterState(r.URL.Query(), h.defaults)
		if err != nil {
			writeUseCaseError(w, logger, err)
			return
		}
		seed = &state
	}

	snap, err := h.sessionUC.Create(r.Context(), seed)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	w.Header().Set("Location", "/api/v1/sessions/"+snap.ID.String())
	RespondWithJSON(w, http.StatusCreated, toSessionResponse(*snap))
}

// GetSession обрабатывает GET /api/v1/sessions/{sessionID}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler": "GetSession",
	})
	id, ok := sessionIDFromRequest(w, r, logger)
	if !ok {
		return
	}

	snap, err := h.sessionUC.Get(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toSessionResponse(*snap))
}

// ApplyCommands обрабатывает POST /api/v1/sessions/{sessionID}/commands
func (h *SessionHandler) ApplyCommands(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler": "ApplySessionCommands",
	})
	id, ok := sessionIDFromRequest(w, r, logger)
	if !ok {
		return
	}

	var body SessionCommandsBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSessionCommandsBody)).Decode(&body); err != nil {
		logger.Warn("Invalid request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(body.Commands) == 0 {
		WriteJSONError(w, http.StatusBadRequest, "At least one command is required")
		return
	}

	commands := make([]domain.SessionCommand, len(body.Commands))
	for i, c := range body.Commands {
		commands[i] = domain.SessionCommand{Op: domain.SessionCommandOp(c.Op), Value: c.Value}
	}

	snap, err := h.sessionUC.Apply(r.Context(), id, commands)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toSessionResponse(*snap))
}

// DeleteSession обрабатывает DELETE /api/v1/sessions/{sessionID}
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler": "DeleteSession",
	})
	id, ok := sessionIDFromRequest(w, r, logger)
	if !ok {
		return
	}

	if err := h.sessionUC.Delete(r.Context(), id); err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
