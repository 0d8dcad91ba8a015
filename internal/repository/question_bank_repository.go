package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/RubachokBoss/study-tracker/internal/models"
)

type QuestionBankRepository interface {
	Create(ctx context.Context, entry *models.QuestionBankEntry) error
	GetByUserID(ctx context.Context, userID string, limit, offset int) ([]models.QuestionBankEntry, int, error)
}

type questionBankRepository struct {
	*PostgresRepository
}

func NewQuestionBankRepository(db *sqlx.DB, logger zerolog.Logger) QuestionBankRepository {
	return &questionBankRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *questionBankRepository) Create(ctx context.Context, entry *models.QuestionBankEntry) error {
	query := `
		INSERT INTO question_bank (id, user_id, materia, assunto, relevancia, comentarios, status, tags, meta, created_at)
		VALUES (:id, :user_id, :materia, :assunto, :relevancia, :comentarios, :status, :tags, :meta, :created_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("failed to insert question bank entry: %w", err)
	}
	return nil
}

func (r *questionBankRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]models.QuestionBankEntry, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM question_bank WHERE user_id = $1`, userID); err != nil {
		return nil, 0, fmt.Errorf("failed to count question bank entries: %w", err)
	}

	query := `
		SELECT id, user_id, materia, assunto, relevancia, comentarios, status, tags, meta, created_at
		FROM question_bank
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	entries := make([]models.QuestionBankEntry, 0)
	if err := r.db.SelectContext(ctx, &entries, query, userID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list question bank entries: %w", err)
	}

	return entries, total, nil
}
