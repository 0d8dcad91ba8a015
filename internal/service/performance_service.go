package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/study-tracker/internal/models"
	"github.com/RubachokBoss/study-tracker/internal/repository"
	"github.com/RubachokBoss/study-tracker/internal/service/form"
)

var ErrInvalidEvent = errors.New("invalid study recorded event")

type PerformanceService interface {
	Apply(ctx context.Context, event *models.StudyRecordedEvent) error
	GetForUser(ctx context.Context, userID, concurso string) (*models.PerformanceResponse, error)
}

type performanceService struct {
	performanceRepo repository.PerformanceRepository
	logger          zerolog.Logger
}

func NewPerformanceService(performanceRepo repository.PerformanceRepository, logger zerolog.Logger) PerformanceService {
	return &performanceService{
		performanceRepo: performanceRepo,
		logger:          logger,
	}
}

// Apply folds one study.recorded event into the subject aggregates.
func (s *performanceService) Apply(ctx context.Context, event *models.StudyRecordedEvent) error {
	if event == nil || event.UserID == "" {
		return ErrInvalidEvent
	}

	subjects := make([]models.SubjectSessionAgg, 0, len(event.Subjects))
	for _, sub := range event.Subjects {
		if sub.Materia == "" || sub.Total <= 0 {
			continue
		}
		subjects = append(subjects, sub)
	}

	if err := s.performanceRepo.ApplySession(ctx, event.UserID, event.Concurso, subjects); err != nil {
		return fmt.Errorf("failed to apply study session: %w", err)
	}

	s.logger.Info().
		Str("user_id", event.UserID).
		Str("concurso", event.Concurso).
		Int("subjects", len(subjects)).
		Msg("Subject performance updated")

	return nil
}

func (s *performanceService) GetForUser(ctx context.Context, userID, concurso string) (*models.PerformanceResponse, error) {
	rows, err := s.performanceRepo.GetByUserID(ctx, userID, concurso)
	if err != nil {
		return nil, fmt.Errorf("failed to get performance: %w", err)
	}

	for i := range rows {
		rows[i].Taxa = form.Percentage(rows[i].Acertos, rows[i].Total)
	}

	return &models.PerformanceResponse{
		Concurso: concurso,
		Subjects: rows,
	}, nil
}
