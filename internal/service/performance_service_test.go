package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RubachokBoss/study-tracker/internal/models"
)

func TestPerformanceService_Apply(t *testing.T) {
	repo := &fakePerformanceRepo{}
	svc := NewPerformanceService(repo, zerolog.Nop())

	err := svc.Apply(context.Background(), &models.StudyRecordedEvent{
		UserID:   "user-1",
		Concurso: "TRF",
		Subjects: []models.SubjectSessionAgg{
			{Materia: "Português", Acertos: 9, Total: 10, Minutes: 30},
			{Materia: "Inglês", Total: 0},
			{Materia: "", Total: 5},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []models.SubjectSessionAgg{{Materia: "Português", Acertos: 9, Total: 10, Minutes: 30}}, repo.applied["user-1/TRF"])

	assert.ErrorIs(t, svc.Apply(context.Background(), &models.StudyRecordedEvent{}), ErrInvalidEvent)
	assert.ErrorIs(t, svc.Apply(context.Background(), nil), ErrInvalidEvent)
}

func TestPerformanceService_GetForUser(t *testing.T) {
	repo := &fakePerformanceRepo{rows: []models.SubjectPerformance{
		{Materia: "Português", Acertos: 17, Total: 20},
		{Materia: "Matemática"},
	}}
	svc := NewPerformanceService(repo, zerolog.Nop())

	resp, err := svc.GetForUser(context.Background(), "user-1", "TRF")
	require.NoError(t, err)
	require.Len(t, resp.Subjects, 2)
	assert.InDelta(t, 85.0, resp.Subjects[0].Taxa, 1e-9)
	assert.Zero(t, resp.Subjects[1].Taxa)
}
