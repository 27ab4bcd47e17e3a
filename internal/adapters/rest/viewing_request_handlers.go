package rest

import (
	"encoding/json"
	"net/http"

	"github.com/ayleenrq/urbane/internal/contextkeys"
	"github.com/ayleenrq/urbane/internal/core/domain"
	"github.com/ayleenrq/urbane/internal/core/port"
	"github.com/ayleenrq/urbane/internal/core/port/usecases_port"
)

const maxViewingRequestBody = 16 << 10

type ViewingRequestHandler struct {
	sendUC usecases_port.SendViewingRequestUseCase
}

func NewViewingRequestHandler(sendUC usecases_port.SendViewingRequestUseCase) *ViewingRequestHandler {
	return &ViewingRequestHandler{sendUC: sendUC}
}

// SendViewingRequest обрабатывает POST /api/v1/viewing-requests
func (h *ViewingRequestHandler) SendViewingRequest(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler": "SendViewingRequest",
	})

	var body ViewingRequestBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxViewingRequestBody)).Decode(&body); err != nil {
		logger.Warn("Invalid request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	source := domain.ViewingRequestSource(body.Source)
	if source == "" {
		source = domain.ViewingSourceDetailPage
	}

	created, err := h.sendUC.Execute(r.Context(), domain.ViewingRequest{
		PropertyID: body.PropertyID,
		Name:       body.Name,
		Email:      body.Email,
		Phone:      body.Phone,
		Message:    body.Message,
		Source:     source,
	})
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusAccepted, ViewingRequestResponse{
		ID:         created.ID.String(),
		PropertyID: created.PropertyID,
		Source:     string(created.Source),
		CreatedAt:  created.CreatedAt,
	})
}
