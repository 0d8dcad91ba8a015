package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RubachokBoss/study-tracker/internal/models"
)

func TestSyllabusService_CreateEntry(t *testing.T) {
	repo := &fakeSyllabusRepo{}
	svc := NewSyllabusService(repo, zerolog.Nop())

	entry, err := svc.CreateEntry(context.Background(), &models.CreateSyllabusEntryRequest{
		Concurso: " TRF ",
		Materia:  "Português",
		Topicos:  []string{"Crase", "  ", " Regência "},
		Position: 1,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "TRF", entry.Concurso)
	assert.Equal(t, []string{"Crase", "Regência"}, []string(entry.Topicos))
	assert.Len(t, repo.created, 1)
}

func TestSyllabusService_GetByConcursoError(t *testing.T) {
	svc := NewSyllabusService(&fakeSyllabusRepo{err: errors.New("boom")}, zerolog.Nop())

	_, err := svc.GetByConcurso(context.Background(), "TRF")
	assert.ErrorContains(t, err, "failed to get syllabus")
}
