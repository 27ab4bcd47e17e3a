package rest

import (
	"net/http"

	"github.com/ayleenrq/urbane/internal/contextkeys"
	"github.com/ayleenrq/urbane/internal/core/port"
	"github.com/ayleenrq/urbane/internal/core/port/usecases_port"
)

type HomeHandler struct {
	homePageUC   usecases_port.GetHomePageUseCase
	mapMarkersUC usecases_port.GetMapMarkersUseCase
}

func NewHomeHandler(homePageUC usecases_port.GetHomePageUseCase, mapMarkersUC usecases_port.GetMapMarkersUseCase) *HomeHandler {
	return &HomeHandler{homePageUC: homePageUC, mapMarkersUC: mapMarkersUC}
}

// GetHomePage обрабатывает GET /api/v1/home
func (h *HomeHandler) GetHomePage(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler": "GetHomePage",
	})

	page, err := h.homePageUC.Execute(r.Context())
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toHomePageResponse(*page))
}

// GetMapMarkers обрабатывает GET /api/v1/map/markers
func (h *HomeHandler) GetMapMarkers(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler": "GetMapMarkers",
	})

	view, err := h.mapMarkersUC.Execute(r.Context())
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toMapViewResponse(*view))
}
