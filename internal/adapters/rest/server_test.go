package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ayleenrq/urbane/internal/adapters/catalog"
	rabbitmq_adapter "github.com/ayleenrq/urbane/internal/adapters/rabbitmq"
	"github.com/ayleenrq/urbane/internal/contextkeys"
	"github.com/ayleenrq/urbane/internal/core/domain"
	"github.com/ayleenrq/urbane/internal/core/session"
	"github.com/ayleenrq/urbane/internal/core/usecase"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	ctx := t.Context()
	props, err := catalog.NewEmbeddedSource().LoadCatalog(ctx)
	require.NoError(t, err)
	snapshot, err := catalog.NewSnapshot(props)
	require.NoError(t, err)
	marketing, err := catalog.NewEmbeddedMarketingSource()
	require.NoError(t, err)

	defaults := domain.DefaultFilterState(domain.DefaultPageSize, domain.DefaultMaxPrice)
	manager, err := session.NewManager(snapshot, defaults, time.Minute)
	require.NoError(t, err)

	featuredUC := usecase.NewGetFeaturedPropertiesUseCase(snapshot)
	propertiesHandler := NewPropertiesHandler(
		usecase.NewBrowsePropertiesUseCase(snapshot, nil),
		usecase.NewGetPropertyDetailsUseCase(snapshot),
		featuredUC,
		usecase.NewGetFilterOptionsUseCase(snapshot),
		defaults,
	)
	homeHandler := NewHomeHandler(
		usecase.NewGetHomePageUseCase(marketing, featuredUC),
		usecase.NewGetMapMarkersUseCase(marketing),
	)
	viewingHandler := NewViewingRequestHandler(
		usecase.NewSendViewingRequestUseCase(snapshot, rabbitmq_adapter.LoggingViewingRequestPublisher{}),
	)
	sessionHandler := NewSessionHandler(usecase.NewManageSessionUseCase(manager), defaults)

	cfg := ServerConfig{
		Port:           "0",
		AllowedOrigins: []string{"http://localhost:5173"},
		MetricsHandler: promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{}),
	}
	return NewRouter(cfg, propertiesHandler, homeHandler, viewingHandler, sessionHandler, contextkeys.LoggerFromContext(ctx))
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func itemIDs(items []PropertyResponse) []int {
	ids := make([]int, len(items))
	for i, p := range items {
		ids[i] = p.ID
	}
	return ids
}

func TestBrowseDefaults(t *testing.T) {
	h := newTestRouter(t)

	rec := doRequest(t, h, http.MethodGet, "/api/v1/properties", "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[BrowseResponse](t, rec)
	assert.Equal(t, 10, resp.Results.TotalMatches)
	assert.Equal(t, 2, resp.Results.TotalPages)
	assert.Len(t, resp.Results.Items, 8)
	assert.Equal(t, "Rent", resp.Filters.Tab)
	assert.Equal(t, 5000.0, resp.Filters.MaxPrice)
	assert.False(t, resp.Results.Empty)
}

func TestBrowseSeededFromQuery(t *testing.T) {
	h := newTestRouter(t)

	rec := doRequest(t, h, http.MethodGet, "/api/v1/properties?tab=Buy&type=Villa&price=1000", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{2}, itemIDs(decode[BrowseResponse](t, rec).Results.Items))

	// без фильтра по сроку аренды объекты только на продажу тоже проходят
	rec = doRequest(t, h, http.MethodGet, "/api/v1/properties?tab=Buy&type=Villa&price=1000&longTerm=false", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{2, 9}, itemIDs(decode[BrowseResponse](t, rec).Results.Items))

	rec = doRequest(t, h, http.MethodGet, "/api/v1/properties?tab=Buy&longTerm=false&sort=price-asc&rooms=5%2B", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{10, 4, 6, 8, 16}, itemIDs(decode[BrowseResponse](t, rec).Results.Items))
}

func TestBrowseClampsPageAndReportsEmpty(t *testing.T) {
	h := newTestRouter(t)

	rec := doRequest(t, h, http.MethodGet, "/api/v1/properties?page=9", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[BrowseResponse](t, rec)
	assert.Equal(t, 2, resp.Results.CurrentPage)
	assert.Equal(t, 2, resp.Filters.CurrentPage)
	assert.Len(t, resp.Results.Items, 2)

	rec = doRequest(t, h, http.MethodGet, "/api/v1/properties?location=Bandung", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decode[BrowseResponse](t, rec)
	assert.True(t, resp.Results.Empty)
	assert.Empty(t, resp.Results.Items)
	assert.Equal(t, 1, resp.Results.TotalPages)
}

func TestBrowseRejectsInvalidQuery(t *testing.T) {
	h := newTestRouter(t)

	for _, target := range []string{
		"/api/v1/properties?sort=newest",
		"/api/v1/properties?price=cheap",
		"/api/v1/properties?tab=Lease",
	} {
		rec := doRequest(t, h, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.NotEmpty(t, decode[map[string]string](t, rec)["error"])
	}
}

func TestPropertyDetails(t *testing.T) {
	h := newTestRouter(t)

	rec := doRequest(t, h, http.MethodGet, "/api/v1/properties/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[PropertyDetailsResponse](t, rec)
	assert.Equal(t, "Villa Pondok Indah", resp.Property.Title)
	require.NotNil(t, resp.Property.Coordinates)
	assert.Equal(t, []int{2, 8, 9}, itemIDs(resp.Related))

	assert.Equal(t, http.StatusNotFound, doRequest(t, h, http.MethodGet, "/api/v1/properties/999", "").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(t, h, http.MethodGet, "/api/v1/properties/abc", "").Code)
}

func TestFeaturedAndFilterOptions(t *testing.T) {
	h := newTestRouter(t)

	rec := doRequest(t, h, http.MethodGet, "/api/v1/properties/featured", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{2, 4, 6, 8}, itemIDs(decode[map[string][]PropertyResponse](t, rec)["items"]))

	rec = doRequest(t, h, http.MethodGet, "/api/v1/filters/options?tab=Buy", "")
	require.Equal(t, http.StatusOK, rec.Code)
	opts := decode[FilterOptionsResponse](t, rec)
	assert.Equal(t, 8, opts.Total)
	assert.Equal(t, 4, opts.CountsByType["Villa"])
	assert.Equal(t, []string{"Any", "1", "2", "3", "4", "5+"}, opts.Beds)

	assert.Equal(t, http.StatusBadRequest, doRequest(t, h, http.MethodGet, "/api/v1/filters/options?tab=Lease", "").Code)
}

func TestHomeAndMap(t *testing.T) {
	h := newTestRouter(t)

	rec := doRequest(t, h, http.MethodGet, "/api/v1/home", "")
	require.Equal(t, http.StatusOK, rec.Code)
	home := decode[HomePageResponse](t, rec)
	assert.Len(t, home.HeroSlides, 3)
	assert.Len(t, home.Featured, 4)
	assert.Len(t, home.FAQ, 3)

	rec = doRequest(t, h, http.MethodGet, "/api/v1/map/markers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[MapViewResponse](t, rec)
	assert.Equal(t, 13, view.Zoom)
	assert.InDelta(t, -6.26, view.Center.Lat, 1e-9)
	assert.Len(t, view.Markers, 5)
	for _, m := range view.Markers {
		assert.NotEmpty(t, m.Geohash)
	}
}

func TestViewingRequests(t *testing.T) {
	h := newTestRouter(t)

	rec := doRequest(t, h, http.MethodPost, "/api/v1/viewing-requests",
		`{"property_id": 4, "name": "Dewi", "email": "dewi@example.com", "message": "Saturday?"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)
	created := decode[ViewingRequestResponse](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "detail_page", created.Source)

	rec = doRequest(t, h, http.MethodPost, "/api/v1/viewing-requests", `{"name": "Dewi", "email": "nope", "source": "cta"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, h, http.MethodPost, "/api/v1/viewing-requests", `{"property_id": 77, "name": "Dewi", "email": "d@e.co", "source": "map"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, h, http.MethodPost, "/api/v1/viewing-requests", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionLifecycle(t *testing.T) {
	h := newTestRouter(t)

	rec := doRequest(t, h, http.MethodPost, "/api/v1/sessions?tab=Buy&longTerm=false", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[SessionResponse](t, rec)
	assert.Equal(t, "Buy", created.Filters.Tab)
	assert.Equal(t, 8, created.Results.TotalMatches)
	assert.Equal(t, "/api/v1/sessions/"+created.ID, rec.Header().Get("Location"))

	base := "/api/v1/sessions/" + created.ID
	rec = doRequest(t, h, http.MethodPost, base+"/commands",
		`{"commands": [{"op": "set_type", "value": "House"}, {"op": "set_sort", "value": "price-desc"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[SessionResponse](t, rec)
	assert.Equal(t, []int{6, 4, 10}, itemIDs(updated.Results.Items))

	rec = doRequest(t, h, http.MethodPost, base+"/commands", `{"commands": [{"op": "set_beds", "value": "lots"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = doRequest(t, h, http.MethodPost, base+"/commands", `{"commands": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, h, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "House", decode[SessionResponse](t, rec).Filters.TypeFilter)

	assert.Equal(t, http.StatusNoContent, doRequest(t, h, http.MethodDelete, base, "").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(t, h, http.MethodGet, base, "").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(t, h, http.MethodGet, "/api/v1/sessions/not-a-uuid", "").Code)
}

func TestServiceEndpoints(t *testing.T) {
	h := newTestRouter(t)

	rec := doRequest(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))

	assert.Equal(t, http.StatusOK, doRequest(t, h, http.MethodGet, "/metrics", "").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(t, h, http.MethodGet, "/api/v1/nothing", "").Code)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(traceIDHeader, "given-trace")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "given-trace", rec.Header().Get(traceIDHeader))
}
