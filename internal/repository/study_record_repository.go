package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/RubachokBoss/study-tracker/internal/models"
)

var studyRecordColumns = []string{
	"id", "user_id", "concurso", "materia", "assunto", "data_estudo",
	"acertos", "total", "taxa", "tempo", "dificuldade", "relevancia", "comentarios",
	"rev_24h", "rev_07d", "rev_15d", "rev_30d", "created_at",
}

type StudyRecordRepository interface {
	Create(ctx context.Context, record *models.StudyRecord) error
	CreateBatch(ctx context.Context, records []models.StudyRecord) error
	GetByUserID(ctx context.Context, userID string, limit, offset int) ([]models.StudyRecord, int, error)
}

type studyRecordRepository struct {
	*PostgresRepository
}

func NewStudyRecordRepository(db *sqlx.DB, logger zerolog.Logger) StudyRecordRepository {
	return &studyRecordRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func studyRecordArgs(r *models.StudyRecord) []interface{} {
	return []interface{}{
		r.ID, r.UserID, r.Concurso, r.Materia, r.Assunto, r.DataEstudo,
		r.Acertos, r.Total, r.Taxa, r.Tempo, r.Dificuldade, r.Relevancia, r.Comentarios,
		r.Rev24h, r.Rev07d, r.Rev15d, r.Rev30d, r.CreatedAt,
	}
}

func (r *studyRecordRepository) Create(ctx context.Context, record *models.StudyRecord) error {
	query := buildMultiRowInsert("study_records", studyRecordColumns, 1)

	if _, err := r.db.ExecContext(ctx, query, studyRecordArgs(record)...); err != nil {
		return fmt.Errorf("failed to insert study record: %w", err)
	}
	return nil
}

// CreateBatch inserts every record with a single multi-row INSERT.
func (r *studyRecordRepository) CreateBatch(ctx context.Context, records []models.StudyRecord) error {
	if len(records) == 0 {
		return nil
	}

	query := buildMultiRowInsert("study_records", studyRecordColumns, len(records))
	args := make([]interface{}, 0, len(records)*len(studyRecordColumns))
	for i := range records {
		args = append(args, studyRecordArgs(&records[i])...)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert study records: %w", err)
	}
	return nil
}

func (r *studyRecordRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]models.StudyRecord, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM study_records WHERE user_id = $1`, userID); err != nil {
		return nil, 0, fmt.Errorf("failed to count study records: %w", err)
	}

	query := `
		SELECT
			id, user_id, concurso, materia, assunto,
			to_char(data_estudo, 'YYYY-MM-DD') AS data_estudo,
			acertos, total, taxa, tempo, dificuldade, relevancia, comentarios,
			rev_24h, rev_07d, rev_15d, rev_30d, created_at
		FROM study_records
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	records := make([]models.StudyRecord, 0)
	if err := r.db.SelectContext(ctx, &records, query, userID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list study records: %w", err)
	}

	return records, total, nil
}
