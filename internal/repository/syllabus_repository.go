package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/RubachokBoss/study-tracker/internal/models"
)

type SyllabusRepository interface {
	Create(ctx context.Context, entry *models.SyllabusEntry) error
	GetByConcurso(ctx context.Context, concurso string) ([]models.SyllabusEntry, error)
}

type syllabusRepository struct {
	*PostgresRepository
}

func NewSyllabusRepository(db *sqlx.DB, logger zerolog.Logger) SyllabusRepository {
	return &syllabusRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *syllabusRepository) Create(ctx context.Context, entry *models.SyllabusEntry) error {
	query := `
		INSERT INTO syllabus_entries (id, concurso, materia, topicos, position, created_at)
		VALUES (:id, :concurso, :materia, :topicos, :position, :created_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("failed to insert syllabus entry: %w", err)
	}
	return nil
}

// GetByConcurso lists the catalog of one exam track, or every track when
// concurso is empty.
func (r *syllabusRepository) GetByConcurso(ctx context.Context, concurso string) ([]models.SyllabusEntry, error) {
	query := `
		SELECT id, concurso, materia, topicos, position, created_at
		FROM syllabus_entries
		WHERE $1 = '' OR concurso = $1
		ORDER BY concurso, position, materia
	`

	entries := make([]models.SyllabusEntry, 0)
	if err := r.db.SelectContext(ctx, &entries, query, concurso); err != nil {
		return nil, fmt.Errorf("failed to list syllabus entries: %w", err)
	}
	return entries, nil
}
