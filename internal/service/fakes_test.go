package service

import (
	"context"
	"sync"

	"github.com/RubachokBoss/study-tracker/internal/models"
)

type fakeSyllabusRepo struct {
	entries []models.SyllabusEntry
	created []*models.SyllabusEntry
	err     error
}

func (f *fakeSyllabusRepo) Create(_ context.Context, entry *models.SyllabusEntry) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, entry)
	return nil
}

func (f *fakeSyllabusRepo) GetByConcurso(_ context.Context, concurso string) ([]models.SyllabusEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.SyllabusEntry, 0)
	for _, e := range f.entries {
		if concurso == "" || e.Concurso == concurso {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeRecordRepo struct {
	records   []models.StudyRecord
	gotUser   string
	gotLimit  int
	gotOffset int
	err       error
}

func (f *fakeRecordRepo) Create(context.Context, *models.StudyRecord) error       { return nil }
func (f *fakeRecordRepo) CreateBatch(context.Context, []models.StudyRecord) error { return nil }

func (f *fakeRecordRepo) GetByUserID(_ context.Context, userID string, limit, offset int) ([]models.StudyRecord, int, error) {
	f.gotUser, f.gotLimit, f.gotOffset = userID, limit, offset
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.records, len(f.records), nil
}

type fakeBankRepo struct {
	entries []models.QuestionBankEntry
}

func (f *fakeBankRepo) Create(context.Context, *models.QuestionBankEntry) error { return nil }

func (f *fakeBankRepo) GetByUserID(context.Context, string, int, int) ([]models.QuestionBankEntry, int, error) {
	return f.entries, len(f.entries), nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []*models.StudyRecordedEvent
	err    error
}

func (f *fakePublisher) PublishStudyRecorded(_ context.Context, event *models.StudyRecordedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return f.err
}

func (f *fakePublisher) Close() error { return nil }

type fakePerformanceRepo struct {
	applied map[string][]models.SubjectSessionAgg
	rows    []models.SubjectPerformance
	err     error
}

func (f *fakePerformanceRepo) ApplySession(_ context.Context, userID, concurso string, subjects []models.SubjectSessionAgg) error {
	if f.err != nil {
		return f.err
	}
	if f.applied == nil {
		f.applied = make(map[string][]models.SubjectSessionAgg)
	}
	f.applied[userID+"/"+concurso] = append(f.applied[userID+"/"+concurso], subjects...)
	return nil
}

func (f *fakePerformanceRepo) GetByUserID(context.Context, string, string) ([]models.SubjectPerformance, error) {
	return f.rows, f.err
}
