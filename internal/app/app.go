package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/RubachokBoss/study-tracker/internal/config"
	"github.com/RubachokBoss/study-tracker/internal/delivery/httpd"
	"github.com/RubachokBoss/study-tracker/internal/metrics"
	"github.com/RubachokBoss/study-tracker/internal/repository"
	"github.com/RubachokBoss/study-tracker/internal/service"
	"github.com/RubachokBoss/study-tracker/internal/service/form"
	"github.com/RubachokBoss/study-tracker/internal/service/integration"
)

type App struct {
	server         *http.Server
	logger         zerolog.Logger
	config         *config.Config
	db             *sqlx.DB
	rabbitmqClient integration.RabbitMQClient
	consumer       *consumerRuntime
	workerCtx      context.Context
	cancelWorker   context.CancelFunc
}

func New(cfg *config.Config, log zerolog.Logger, db *sqlx.DB) (*App, error) {
	m := metrics.New()

	recordRepo := repository.NewStudyRecordRepository(db, log)
	bankRepo := repository.NewQuestionBankRepository(db, log)
	syllabusRepo := repository.NewSyllabusRepository(db, log)
	performanceRepo := repository.NewPerformanceRepository(db, log)

	store, users := newStoreAndUsers(cfg, log, recordRepo, bankRepo)

	rabbitmqClient, err := integration.NewRabbitMQClient(context.Background(), cfg.RabbitMQ, log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create RabbitMQ client")
		// performance events are not published without a broker
	}

	studyService := service.NewStudyService(
		store,
		users,
		recordRepo,
		bankRepo,
		syllabusRepo,
		rabbitmqClient,
		m,
		log,
	)
	syllabusService := service.NewSyllabusService(syllabusRepo, log)
	performanceService := service.NewPerformanceService(performanceRepo, log)

	var consumer *consumerRuntime
	if cfg.Worker.Enabled {
		consumer, err = newConsumerRuntime(context.Background(), cfg, performanceService, m, log)
		if err != nil {
			log.Error().Err(err).Msg("Failed to create performance worker, continuing without it")
			consumer = nil
		}
	}

	handler, err := httpd.NewHandler(
		studyService,
		syllabusService,
		performanceService,
		users,
		cfg.Auth.Provider,
		log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create handler: %w", err)
	}

	router := newRouter(cfg, log, m)
	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	workerCtx, cancelWorker := context.WithCancel(context.Background())

	return &App{
		server:         server,
		logger:         log,
		config:         cfg,
		db:             db,
		rabbitmqClient: rabbitmqClient,
		consumer:       consumer,
		workerCtx:      workerCtx,
		cancelWorker:   cancelWorker,
	}, nil
}

// newStoreAndUsers picks the record store and the user lookup from config.
func newStoreAndUsers(
	cfg *config.Config,
	log zerolog.Logger,
	recordRepo repository.StudyRecordRepository,
	bankRepo repository.QuestionBankRepository,
) (form.RecordStore, form.UserLookup) {
	var store form.RecordStore
	switch cfg.Store.Driver {
	case "hosted":
		store = integration.NewHostedStore(cfg.Store.URL, cfg.Store.APIKey, cfg.Store.Timeout, log)
	default:
		store = repository.NewRecordStore(recordRepo, bankRepo)
	}

	var users form.UserLookup
	switch cfg.Auth.Provider {
	case httpd.AuthProviderHosted:
		users = integration.NewAuthClient(cfg.Auth.URL, cfg.Auth.APIKey, cfg.Auth.Timeout, log)
	default:
		users = integration.NewHeaderUserLookup()
	}

	log.Info().
		Str("store", cfg.Store.Driver).
		Str("auth", cfg.Auth.Provider).
		Msg("Record store and user lookup configured")

	return store, users
}

func newRouter(cfg *config.Config, log zerolog.Logger, m *metrics.Metrics) chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(httpd.RequestLogger(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	if cfg.Metrics.Enabled {
		router.Use(m.Middleware)
		router.Method(http.MethodGet, cfg.Metrics.Path, m.Handler())
	}

	return router
}

func (a *App) Run() error {
	if a.consumer != nil {
		if err := a.consumer.worker.Start(a.workerCtx); err != nil {
			a.logger.Error().Err(err).Msg("Failed to start performance worker")
			return err
		}
	}

	a.logger.Info().Msgf("Starting study tracker on %s", a.config.Server.Address)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down study tracker...")

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error().Err(err).Msg("Failed to shutdown HTTP server")
	}

	a.cancelWorker()
	if a.consumer != nil {
		a.consumer.close(a.logger)
	}

	if a.rabbitmqClient != nil {
		if err := a.rabbitmqClient.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close RabbitMQ connection")
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close database connection")
		}
	}

	return nil
}
