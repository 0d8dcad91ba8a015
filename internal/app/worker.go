package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/RubachokBoss/study-tracker/internal/config"
	"github.com/RubachokBoss/study-tracker/internal/metrics"
	"github.com/RubachokBoss/study-tracker/internal/repository"
	"github.com/RubachokBoss/study-tracker/internal/service"
	"github.com/RubachokBoss/study-tracker/internal/service/integration"
	"github.com/RubachokBoss/study-tracker/internal/worker"
	"github.com/RubachokBoss/study-tracker/internal/worker/queue"
)

// consumerRuntime owns the broker connection used by the performance worker.
type consumerRuntime struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	worker  worker.PerformanceWorker
}

func newConsumerRuntime(
	ctx context.Context,
	cfg *config.Config,
	performanceService service.PerformanceService,
	m *metrics.Metrics,
	log zerolog.Logger,
) (*consumerRuntime, error) {
	conn, err := integration.Dial(ctx, cfg.RabbitMQ, log)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	queueName, err := integration.DeclareTopology(channel, cfg.RabbitMQ)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	consumer := queue.NewRabbitMQConsumer(channel, queueName, cfg.RabbitMQ.ConsumerTag, cfg.Worker.MaxWorkers, log)
	handler := queue.NewMessageHandler(performanceService, log)
	pool := worker.NewWorkerPool(cfg.Worker.MaxWorkers, log)

	return &consumerRuntime{
		conn:    conn,
		channel: channel,
		worker:  worker.NewPerformanceWorker(pool, consumer, handler, m, log),
	}, nil
}

func (r *consumerRuntime) close(log zerolog.Logger) {
	if err := r.worker.Stop(); err != nil {
		log.Error().Err(err).Msg("Failed to stop performance worker")
	}

	if err := r.channel.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		log.Error().Err(err).Msg("Failed to close RabbitMQ channel")
	}

	if err := r.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		log.Error().Err(err).Msg("Failed to close RabbitMQ connection")
	}
}

// RunWorker consumes study events until ctx is done. Health and metrics
// are served on the configured server address.
func RunWorker(ctx context.Context, cfg *config.Config, log zerolog.Logger, db *sqlx.DB) error {
	m := metrics.New()

	performanceService := service.NewPerformanceService(repository.NewPerformanceRepository(db, log), log)

	rt, err := newConsumerRuntime(ctx, cfg, performanceService, m, log)
	if err != nil {
		return err
	}

	workerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := rt.worker.Start(workerCtx); err != nil {
		rt.close(log)
		return err
	}

	router := chi.NewRouter()
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"healthy","service":"study-tracker-worker"}`))
	})
	if cfg.Metrics.Enabled {
		router.Method(http.MethodGet, cfg.Metrics.Path, m.Handler())
	}

	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Worker status server failed")
		}
	}()

	log.Info().Msgf("Performance worker running, status on %s", cfg.Server.Address)

	<-ctx.Done()
	log.Info().Msg("Shutting down performance worker...")

	cancel()
	rt.close(log)

	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer stop()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to shutdown worker status server")
	}

	db.Close()
	return nil
}

