package repository

import (
	"context"

	"github.com/RubachokBoss/study-tracker/internal/models"
	"github.com/RubachokBoss/study-tracker/internal/service/form"
)

type recordStore struct {
	records StudyRecordRepository
	bank    QuestionBankRepository
}

// NewRecordStore persists form submissions in the service's own database.
func NewRecordStore(records StudyRecordRepository, bank QuestionBankRepository) form.RecordStore {
	return &recordStore{
		records: records,
		bank:    bank,
	}
}

func (s *recordStore) InsertStudyRecord(ctx context.Context, record *models.StudyRecord) error {
	return s.records.Create(ctx, record)
}

func (s *recordStore) InsertStudyRecords(ctx context.Context, records []models.StudyRecord) error {
	return s.records.CreateBatch(ctx, records)
}

func (s *recordStore) InsertQuestionBankEntry(ctx context.Context, entry *models.QuestionBankEntry) error {
	return s.bank.Create(ctx, entry)
}
