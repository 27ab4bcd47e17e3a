package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/ayleenrq/urbane/internal/adapters/catalog"
	logger_adapter "github.com/ayleenrq/urbane/internal/adapters/logger"
	"github.com/ayleenrq/urbane/internal/adapters/metrics"
	postgres_adapter "github.com/ayleenrq/urbane/internal/adapters/postgres"
	rabbitmq_adapter "github.com/ayleenrq/urbane/internal/adapters/rabbitmq"
	"github.com/ayleenrq/urbane/internal/adapters/rest"
	"github.com/ayleenrq/urbane/internal/configs"
	"github.com/ayleenrq/urbane/internal/constants"
	"github.com/ayleenrq/urbane/internal/contextkeys"
	"github.com/ayleenrq/urbane/internal/core/domain"
	"github.com/ayleenrq/urbane/internal/core/port"
	"github.com/ayleenrq/urbane/internal/core/session"
	"github.com/ayleenrq/urbane/internal/core/usecase"
	fluentlogger "github.com/ayleenrq/urbane/pkg/fluent_logger"
	"github.com/ayleenrq/urbane/pkg/postgres"
	"github.com/ayleenrq/urbane/pkg/rabbitmq"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const catalogLoadTimeout = 30 * time.Second

type App struct {
	config    *configs.AppConfig
	apiServer *rest.Server
	sessions  *session.Manager

	dbPool        *pgxpool.Pool
	connManager   *rabbitmq.ConnectionManager
	eventProducer *rabbitmq.Publisher

	logger       port.LoggerPort
	fluentClient *fluent.Fluent
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. Логгеры ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:    appConfig.FluentBit.Host,
			Port:    appConfig.FluentBit.Port,
			Timeout: 3 * time.Second,
			Async:   true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, appConfig.AppName, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	app := &App{
		config:       appConfig,
		logger:       appLogger,
		fluentClient: fluentClient,
	}

	// дальше при ошибке закрываем то, что уже успели открыть
	ok := false
	defer func() {
		if !ok {
			app.closeResources()
		}
	}()

	// --- 2. Каталог ---
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), catalogLoadTimeout)
	defer cancelLoad()
	loadCtx = contextkeys.ContextWithLogger(loadCtx, baseLogger.WithFields(port.Fields{"component": "catalog"}))

	catalogSource, err := app.newCatalogSource(loadCtx)
	if err != nil {
		appLogger.Error("Failed to create catalog source", err, nil)
		return nil, err
	}
	props, err := catalogSource.LoadCatalog(loadCtx)
	if err != nil {
		appLogger.Error("Failed to load catalog", err, nil)
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	snapshot, err := catalog.NewSnapshot(props)
	if err != nil {
		appLogger.Error("Catalog failed validation", err, nil)
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	appLogger.Info("Catalog loaded", port.Fields{
		"source":     appConfig.Catalog.Source,
		"properties": snapshot.Len(),
	})

	marketingSource, err := catalog.NewEmbeddedMarketingSource()
	if err != nil {
		return nil, fmt.Errorf("failed to load marketing content: %w", err)
	}

	// --- 3. Метрики ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	browseMetrics := metrics.NewBrowseMetrics(registry)
	browseMetrics.SetCatalogSize(snapshot.Len())
	httpMetrics := metrics.NewHTTPMetrics(registry)

	// --- 4. Заявки на просмотр ---
	var viewingPublisher port.ViewingRequestPublisherPort = rabbitmq_adapter.LoggingViewingRequestPublisher{}
	if appConfig.RabbitMQ.Enabled {
		viewingPublisher, err = app.newViewingRequestPublisher(baseLogger)
		if err != nil {
			appLogger.Error("Failed to set up viewing request publisher", err, nil)
			return nil, err
		}
		appLogger.Info("RabbitMQ viewing request publisher initialized", nil)
	}

	// --- 5. Use cases ---
	defaults := domain.DefaultFilterState(appConfig.Browse.PageSize, appConfig.Browse.DefaultMaxPrice)

	sessions, err := session.NewManager(snapshot, defaults, appConfig.Session.IdleTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create session manager: %w", err)
	}
	sessions.OnChange(browseMetrics.ObserveBrowse)
	app.sessions = sessions

	browseUC := usecase.NewBrowsePropertiesUseCase(snapshot, browseMetrics)
	detailsUC := usecase.NewGetPropertyDetailsUseCase(snapshot)
	featuredUC := usecase.NewGetFeaturedPropertiesUseCase(snapshot)
	filterOptionsUC := usecase.NewGetFilterOptionsUseCase(snapshot)
	homePageUC := usecase.NewGetHomePageUseCase(marketingSource, featuredUC)
	mapMarkersUC := usecase.NewGetMapMarkersUseCase(marketingSource)
	sendViewingUC := usecase.NewSendViewingRequestUseCase(snapshot, viewingPublisher)
	manageSessionUC := usecase.NewManageSessionUseCase(sessions)

	appLogger.Info("All use cases initialized", nil)

	// --- 6. REST ---
	app.apiServer = rest.NewServer(
		rest.ServerConfig{
			Port:           appConfig.Rest.Port,
			AllowedOrigins: appConfig.Rest.CORSAllowedOrigins,
			MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			Instrument:     httpMetrics.Middleware,
		},
		rest.NewPropertiesHandler(browseUC, detailsUC, featuredUC, filterOptionsUC, defaults),
		rest.NewHomeHandler(homePageUC, mapMarkersUC),
		rest.NewViewingRequestHandler(sendViewingUC),
		rest.NewSessionHandler(manageSessionUC, defaults),
		baseLogger,
	)

	ok = true
	return app, nil
}

func (a *App) newCatalogSource(ctx context.Context) (port.CatalogSourcePort, error) {
	switch a.config.Catalog.Source {
	case configs.CatalogSourceFile:
		return catalog.NewFileSource(a.config.Catalog.File)
	case configs.CatalogSourcePostgres:
		pool, err := postgres.NewClient(ctx, postgres.Config{
			DatabaseURL:    a.config.Postgres.DatabaseURL,
			MaxConns:       a.config.Postgres.MaxConns,
			ConnectTimeout: 10 * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		a.dbPool = pool
		return postgres_adapter.NewCatalogSource(pool)
	default:
		return catalog.NewEmbeddedSource(), nil
	}
}

func (a *App) newViewingRequestPublisher(baseLogger port.LoggerPort) (port.ViewingRequestPublisherPort, error) {
	connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"}))
	connManager, err := rabbitmq.NewConnectionManager(a.config.RabbitMQ.URL, 0, connManagerBridge)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection manager: %w", err)
	}
	a.connManager = connManager

	producer, err := rabbitmq.NewPublisher(rabbitmq.PublisherConfig{
		ExchangeName:    constants.ListingExchange,
		ExchangeType:    constants.ListingExchangeType,
		DurableExchange: true,
		DeclareExchange: true,
		Logger:          rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})),
	}, connManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create event producer: %w", err)
	}
	a.eventProducer = producer

	return rabbitmq_adapter.NewViewingRequestPublisherAdapter(producer, constants.RoutingKeyViewingRequested)
}

// Run запускает сервер и фоновые задачи и ждет сигнала завершения.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.sessions.Run(appCtx, a.config.Session.SweepInterval, a.logger.WithFields(port.Fields{"component": "session_janitor"}))
	}()

	serverErrors := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)

	var runErr error
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-serverErrors:
		a.logger.Error("HTTP server failed, shutting down", err, nil)
		runErr = err
	}

	a.logger.Info("Shutdown sequence initiated...", nil)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), a.config.Rest.ShutdownTimeout)
	defer cancelShutdown()

	if err := a.apiServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("Error during API server shutdown", err, nil)
	}

	cancelApp()
	wg.Wait()

	a.closeResources()
	return runErr
}

func (a *App) closeResources() {
	if a.eventProducer != nil {
		if err := a.eventProducer.Close(); err != nil {
			a.logger.Error("Error closing event producer", err, nil)
		}
	}
	if a.connManager != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.connManager.Close(ctx); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
		cancel()
	}
	if a.dbPool != nil {
		a.dbPool.Close()
	}

	a.logger.Info("Application shut down gracefully.", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			// fluent может быть уже недоступен, пишем в stdout
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
	}
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
