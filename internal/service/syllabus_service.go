package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/RubachokBoss/study-tracker/internal/models"
	"github.com/RubachokBoss/study-tracker/internal/repository"
)

type SyllabusService interface {
	CreateEntry(ctx context.Context, req *models.CreateSyllabusEntryRequest) (*models.SyllabusEntry, error)
	GetByConcurso(ctx context.Context, concurso string) ([]models.SyllabusEntry, error)
}

type syllabusService struct {
	syllabusRepo repository.SyllabusRepository
	logger       zerolog.Logger
}

func NewSyllabusService(syllabusRepo repository.SyllabusRepository, logger zerolog.Logger) SyllabusService {
	return &syllabusService{
		syllabusRepo: syllabusRepo,
		logger:       logger,
	}
}

func (s *syllabusService) CreateEntry(ctx context.Context, req *models.CreateSyllabusEntryRequest) (*models.SyllabusEntry, error) {
	topics := make(pq.StringArray, 0, len(req.Topicos))
	for _, t := range req.Topicos {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
	}

	entry := &models.SyllabusEntry{
		ID:        uuid.New().String(),
		Concurso:  strings.TrimSpace(req.Concurso),
		Materia:   strings.TrimSpace(req.Materia),
		Topicos:   topics,
		Position:  req.Position,
		CreatedAt: time.Now(),
	}

	if err := s.syllabusRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create syllabus entry: %w", err)
	}

	s.logger.Info().
		Str("syllabus_id", entry.ID).
		Str("concurso", entry.Concurso).
		Str("materia", entry.Materia).
		Msg("Syllabus entry created")

	return entry, nil
}

func (s *syllabusService) GetByConcurso(ctx context.Context, concurso string) ([]models.SyllabusEntry, error) {
	entries, err := s.syllabusRepo.GetByConcurso(ctx, concurso)
	if err != nil {
		return nil, fmt.Errorf("failed to get syllabus: %w", err)
	}
	return entries, nil
}
