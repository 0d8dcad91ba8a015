package worker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/study-tracker/internal/metrics"
	"github.com/RubachokBoss/study-tracker/internal/worker/queue"
)

type PerformanceWorker interface {
	Start(ctx context.Context) error
	Stop() error
	GetStats() WorkerStats
}

type WorkerStats struct {
	TotalProcessed int `json:"total_processed"`
	FailedJobs     int `json:"failed_jobs"`
	Requeued       int `json:"requeued"`
}

type performanceWorker struct {
	workerPool    *WorkerPool
	queueConsumer queue.RabbitMQConsumer
	handler       queue.MessageHandler
	metrics       *metrics.Metrics
	logger        zerolog.Logger

	stats      WorkerStats
	statsMutex sync.RWMutex
	started    atomic.Bool
	done       chan struct{}
	startTime  time.Time
}

func NewPerformanceWorker(
	workerPool *WorkerPool,
	queueConsumer queue.RabbitMQConsumer,
	handler queue.MessageHandler,
	m *metrics.Metrics,
	logger zerolog.Logger,
) PerformanceWorker {
	return &performanceWorker{
		workerPool:    workerPool,
		queueConsumer: queueConsumer,
		handler:       handler,
		metrics:       m,
		logger:        logger,
		done:          make(chan struct{}),
		startTime:     time.Now(),
	}
}

func (w *performanceWorker) Start(ctx context.Context) error {
	w.logger.Info().Msg("Starting performance worker...")

	if err := w.workerPool.Start(ctx); err != nil {
		return fmt.Errorf("failed to start worker pool: %w", err)
	}

	msgs, err := w.queueConsumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("failed to start consuming messages: %w", err)
	}

	w.started.Store(true)
	go w.processMessages(ctx, msgs)

	w.logger.Info().Msg("Performance worker started")
	return nil
}

// Stop waits for the consume loop to end, then drains the pool. The
// context given to Start must be cancelled first.
func (w *performanceWorker) Stop() error {
	w.logger.Info().Msg("Stopping performance worker...")

	if err := w.queueConsumer.Close(); err != nil {
		w.logger.Error().Err(err).Msg("Failed to close queue consumer")
	}

	if w.started.Load() {
		<-w.done
	}

	if err := w.workerPool.Stop(); err != nil {
		w.logger.Error().Err(err).Msg("Failed to stop worker pool")
	}

	stats := w.GetStats()
	w.logger.Info().
		Int("total_processed", stats.TotalProcessed).
		Int("failed_jobs", stats.FailedJobs).
		Dur("uptime", time.Since(w.startTime)).
		Msg("Performance worker stopped")

	return nil
}

func (w *performanceWorker) processMessages(ctx context.Context, msgs <-chan queue.RabbitMQMessage) {
	defer close(w.done)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("Stopping message processing")
			return
		case msg, ok := <-msgs:
			if !ok {
				w.logger.Warn().Msg("Message channel closed")
				return
			}

			if !w.workerPool.Submit(func() { w.handle(ctx, msg) }) {
				if err := msg.Nack(false, true); err != nil {
					w.logger.Error().Err(err).Msg("Failed to nack message")
				}
			}
		}
	}
}

func (w *performanceWorker) handle(ctx context.Context, msg queue.RabbitMQMessage) {
	err := w.handler.ProcessMessage(ctx, msg)
	if err == nil {
		if ackErr := msg.Ack(false); ackErr != nil {
			w.logger.Error().Err(ackErr).Msg("Failed to ack message")
		}
		w.metrics.ObservePerformanceUpdate(metrics.ResultSuccess)

		w.statsMutex.Lock()
		w.stats.TotalProcessed++
		w.statsMutex.Unlock()
		return
	}

	w.logger.Error().Err(err).Msg("Failed to process message")
	w.metrics.ObservePerformanceUpdate(metrics.ResultFailed)

	w.statsMutex.Lock()
	w.stats.FailedJobs++
	w.statsMutex.Unlock()

	if queue.IsPermanent(err) {
		if ackErr := msg.Ack(false); ackErr != nil {
			w.logger.Error().Err(ackErr).Msg("Failed to ack message")
		}
		return
	}

	if nackErr := msg.Nack(false, true); nackErr != nil {
		w.logger.Error().Err(nackErr).Msg("Failed to nack message")
	}
	w.statsMutex.Lock()
	w.stats.Requeued++
	w.statsMutex.Unlock()
}

func (w *performanceWorker) GetStats() WorkerStats {
	w.statsMutex.RLock()
	defer w.statsMutex.RUnlock()
	return w.stats
}
