package rest

import (
	"net/http"
	"strconv"

	"github.com/ayleenrq/urbane/internal/contextkeys"
	"github.com/ayleenrq/urbane/internal/core/domain"
	"github.com/ayleenrq/urbane/internal/core/port"
	"github.com/ayleenrq/urbane/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

type PropertiesHandler struct {
	browseUC        usecases_port.BrowsePropertiesUseCase
	detailsUC       usecases_port.GetPropertyDetailsUseCase
	featuredUC      usecases_port.GetFeaturedPropertiesUseCase
	filterOptionsUC usecases_port.GetFilterOptionsUseCase
	defaults        domain.FilterState
}

// NewPropertiesHandler - defaults задает состояние фильтров, на которое накладываются параметры URL.
func NewPropertiesHandler(
	browseUC usecases_port.BrowsePropertiesUseCase,
	detailsUC usecases_port.GetPropertyDetailsUseCase,
	featuredUC usecases_port.GetFeaturedPropertiesUseCase,
	filterOptionsUC usecases_port.GetFilterOptionsUseCase,
	defaults domain.FilterState,
) *PropertiesHandler {
	return &PropertiesHandler{
		browseUC:        browseUC,
		detailsUC:       detailsUC,
		featuredUC:      featuredUC,
		filterOptionsUC: filterOptionsUC,
		defaults:        defaults,
	}
}

// BrowseProperties обрабатывает GET /api/v1/properties
func (h *PropertiesHandler) BrowseProperties(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler": "BrowseProperties",
	})

	state, err := SeedFilterState(r.URL.Query(), h.defaults)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	vm, err := h.browseUC.Execute(r.Context(), state)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	// страница могла быть зажата движком
	state.CurrentPage = vm.CurrentPage

	RespondWithJSON(w, http.StatusOK, BrowseResponse{
		Filters: toFilterStateResponse(state),
		Results: toViewModelResponse(*vm),
	})
}

// GetPropertyDetails обрабатывает GET /api/v1/properties/{propertyID}
func (h *PropertiesHandler) GetPropertyDetails(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	idStr := chi.URLParam(r, "propertyID")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		logger.Warn("Invalid property ID format", port.Fields{"property_id": idStr})
		WriteJSONError(w, http.StatusBadRequest, "Invalid property ID format")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"handler":     "GetPropertyDetails",
		"property_id": id,
	})

	details, err := h.detailsUC.Execute(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, handlerLogger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, PropertyDetailsResponse{
		Property: toPropertyResponse(details.Property),
		Related:  toPropertyResponses(details.Related),
	})
}

// GetFeaturedProperties обрабатывает GET /api/v1/properties/featured
func (h *PropertiesHandler) GetFeaturedProperties(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler": "GetFeaturedProperties",
	})

	featured, err := h.featuredUC.Execute(r.Context())
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string][]PropertyResponse{
		"items": toPropertyResponses(featured),
	})
}

// GetFilterOptions обрабатывает GET /api/v1/filters/options?tab=Rent
func (h *PropertiesHandler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler": "GetFilterOptions",
	})

	var tab domain.ListingMode
	if raw := r.URL.Query().Get("tab"); raw != "" {
		mode, err := domain.ParseListingMode(raw)
		if err != nil {
			writeUseCaseError(w, logger, err)
			return
		}
		tab = mode
	}

	options, err := h.filterOptionsUC.Execute(r.Context(), tab)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toFilterOptionsResponse(*options))
}
