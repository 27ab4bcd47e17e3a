package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ayleenrq/urbane/internal/core/domain"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "listing"

// BrowseMetrics - счетчики выдачи
type BrowseMetrics struct {
	searches      *prometheus.CounterVec
	emptyResults  *prometheus.CounterVec
	matches       prometheus.Histogram
	catalogSize   prometheus.Gauge
	activeFilters prometheus.Histogram
}

func NewBrowseMetrics(reg prometheus.Registerer) *BrowseMetrics {
	factory := promauto.With(reg)
	return &BrowseMetrics{
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "browse_total",
			Help:      "The total number of browse computations",
		}, []string{"tab", "sort"}),
		emptyResults: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "browse_empty_total",
			Help:      "The total number of browse computations with no matches",
		}, []string{"tab"}),
		matches: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "browse_matches",
			Help:      "Number of matching properties per browse",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64},
		}),
		catalogSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_properties",
			Help:      "Number of properties in the loaded catalog",
		}),
		activeFilters: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "browse_amenities_selected",
			Help:      "Number of amenities selected per browse",
			Buckets:   []float64{0, 1, 2, 3, 4},
		}),
	}
}

func (m *BrowseMetrics) ObserveBrowse(state domain.FilterState, vm domain.ViewModel) {
	m.searches.WithLabelValues(string(state.Tab), string(state.SortBy)).Inc()
	if vm.IsEmpty() {
		m.emptyResults.WithLabelValues(string(state.Tab)).Inc()
	}
	m.matches.Observe(float64(vm.TotalMatches))
	m.activeFilters.Observe(float64(len(state.SelectedAmenities)))
}

func (m *BrowseMetrics) SetCatalogSize(n int) {
	m.catalogSize.Set(float64(n))
}

// HTTPMetrics - счетчик и длительность HTTP-запросов по шаблону маршрута chi
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	factory := promauto.With(reg)
	return &HTTPMetrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *HTTPMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		// шаблон маршрута известен только после роутинга
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
