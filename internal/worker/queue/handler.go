package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/study-tracker/internal/models"
	"github.com/RubachokBoss/study-tracker/internal/service"
)

type MessageHandler interface {
	ProcessMessage(ctx context.Context, msg RabbitMQMessage) error
}

type messageHandler struct {
	performanceService service.PerformanceService
	logger             zerolog.Logger
}

func NewMessageHandler(performanceService service.PerformanceService, logger zerolog.Logger) MessageHandler {
	return &messageHandler{
		performanceService: performanceService,
		logger:             logger,
	}
}

// ProcessMessage decodes a study.recorded event and applies it.
// Malformed events come back as permanent errors.
func (h *messageHandler) ProcessMessage(ctx context.Context, msg RabbitMQMessage) error {
	var event models.StudyRecordedEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return Permanent(fmt.Errorf("failed to unmarshal event: %w", err))
	}

	h.logger.Debug().
		Str("user_id", event.UserID).
		Str("mode", event.Mode).
		Int("subjects", len(event.Subjects)).
		Msg("Handling study recorded event")

	if err := h.performanceService.Apply(ctx, &event); err != nil {
		if errors.Is(err, service.ErrInvalidEvent) {
			return Permanent(err)
		}
		return err
	}
	return nil
}

type permanentError struct {
	err error
}

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

// Permanent marks an error that a redelivery would not fix.
func Permanent(err error) error {
	return permanentError{err: err}
}

func IsPermanent(err error) bool {
	var p permanentError
	return errors.As(err, &p)
}
