package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/ayleenrq/urbane/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// ServerConfig - параметры HTTP-сервера
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	// MetricsHandler отдает /metrics, nil - маршрут не регистрируется
	MetricsHandler http.Handler
	// Instrument оборачивает роутер сбором метрик запросов, может быть nil
	Instrument func(http.Handler) http.Handler
}

type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

func NewServer(
	cfg ServerConfig,
	propertiesHandler *PropertiesHandler,
	homeHandler *HomeHandler,
	viewingRequestHandler *ViewingRequestHandler,
	sessionHandler *SessionHandler,
	baseLogger port.LoggerPort,
) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           NewRouter(cfg, propertiesHandler, homeHandler, viewingRequestHandler, sessionHandler, baseLogger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger,
	}
}

// NewRouter собирает маршруты /api/v1. Вынесен отдельно, чтобы тесты ходили в роутер без сети.
func NewRouter(
	cfg ServerConfig,
	propertiesHandler *PropertiesHandler,
	homeHandler *HomeHandler,
	viewingRequestHandler *ViewingRequestHandler,
	sessionHandler *SessionHandler,
	baseLogger port.LoggerPort,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)
	if cfg.Instrument != nil {
		r.Use(cfg.Instrument)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", traceIDHeader},
		ExposedHeaders:   []string{traceIDHeader, "Location"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/properties", propertiesHandler.BrowseProperties)
		r.Get("/properties/featured", propertiesHandler.GetFeaturedProperties)
		r.Get("/properties/{propertyID}", propertiesHandler.GetPropertyDetails)
		r.Get("/filters/options", propertiesHandler.GetFilterOptions)

		r.Get("/home", homeHandler.GetHomePage)
		r.Get("/map/markers", homeHandler.GetMapMarkers)

		r.Post("/viewing-requests", viewingRequestHandler.SendViewingRequest)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.CreateSession)
			r.Get("/{sessionID}", sessionHandler.GetSession)
			r.Post("/{sessionID}/commands", sessionHandler.ApplyCommands)
			r.Delete("/{sessionID}", sessionHandler.DeleteSession)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteJSONError(w, http.StatusNotFound, "Not found")
	})

	return r
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
