package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/RubachokBoss/study-tracker/internal/models"
)

type PerformanceRepository interface {
	ApplySession(ctx context.Context, userID, concurso string, subjects []models.SubjectSessionAgg) error
	GetByUserID(ctx context.Context, userID, concurso string) ([]models.SubjectPerformance, error)
}

type performanceRepository struct {
	*PostgresRepository
}

func NewPerformanceRepository(db *sqlx.DB, logger zerolog.Logger) PerformanceRepository {
	return &performanceRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

// ApplySession adds one submission to the running per-subject totals.
func (r *performanceRepository) ApplySession(ctx context.Context, userID, concurso string, subjects []models.SubjectSessionAgg) error {
	if len(subjects) == 0 {
		return nil
	}

	query := `
		INSERT INTO subject_performance (user_id, concurso, materia, sessions, acertos, total, minutes, updated_at)
		VALUES ($1, $2, $3, 1, $4, $5, $6, NOW())
		ON CONFLICT (user_id, concurso, materia) DO UPDATE SET
			sessions = subject_performance.sessions + 1,
			acertos = subject_performance.acertos + EXCLUDED.acertos,
			total = subject_performance.total + EXCLUDED.total,
			minutes = subject_performance.minutes + EXCLUDED.minutes,
			updated_at = NOW()
	`

	return r.RunInTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		for _, s := range subjects {
			if _, err := tx.ExecContext(ctx, query, userID, concurso, s.Materia, s.Acertos, s.Total, s.Minutes); err != nil {
				return fmt.Errorf("failed to upsert performance for %s: %w", s.Materia, err)
			}
		}
		return nil
	})
}

func (r *performanceRepository) GetByUserID(ctx context.Context, userID, concurso string) ([]models.SubjectPerformance, error) {
	query := `
		SELECT user_id, concurso, materia, sessions, acertos, total, minutes, updated_at
		FROM subject_performance
		WHERE user_id = $1 AND ($2 = '' OR concurso = $2)
		ORDER BY concurso, materia
	`

	rows := make([]models.SubjectPerformance, 0)
	if err := r.db.SelectContext(ctx, &rows, query, userID, concurso); err != nil {
		return nil, fmt.Errorf("failed to list subject performance: %w", err)
	}
	return rows, nil
}
