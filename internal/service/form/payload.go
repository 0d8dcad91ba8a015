package form

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/RubachokBoss/study-tracker/internal/models"
)

const examRelevance = 10

func BuildStudyRecord(st State, userID, track string, minutes int, now time.Time) models.StudyRecord {
	return models.StudyRecord{
		ID:          uuid.NewString(),
		UserID:      userID,
		Concurso:    track,
		Materia:     st.Subject,
		Assunto:     strings.TrimSpace(st.Topic),
		DataEstudo:  st.Date,
		Acertos:     st.Acertos,
		Total:       st.Total,
		Taxa:        Percentage(st.Acertos, st.Total),
		Tempo:       minutes,
		Dificuldade: st.Difficulty,
		Relevancia:  st.Relevance,
		Comentarios: st.Notes,
		CreatedAt:   now,
	}
}

func BuildQuestionBankEntry(st State, userID string, now time.Time) models.QuestionBankEntry {
	return models.QuestionBankEntry{
		ID:          uuid.NewString(),
		UserID:      userID,
		Materia:     st.Subject,
		Assunto:     strings.TrimSpace(st.Topic),
		Relevancia:  st.Relevance,
		Comentarios: st.Notes,
		Status:      models.QuestionBankStatusPending,
		Tags:        pq.StringArray{},
		Meta:        models.QuestionBankDefaultMeta,
		CreatedAt:   now,
	}
}

// BuildExamRecords expands a simulado into one record per subject with a
// positive total, in the given subject order.
func BuildExamRecords(st State, userID, track string, minutes int, order []string, now time.Time) []models.StudyRecord {
	shares := DistributeMinutes(minutes, subjectTotals(st.ExamScores))

	records := make([]models.StudyRecord, 0, len(shares))
	for _, subject := range order {
		score, ok := st.ExamScores[subject]
		if !ok {
			continue
		}
		total := parseCount(score.Total)
		if total <= 0 {
			continue
		}
		acertos := parseCount(score.Acertos)

		records = append(records, models.StudyRecord{
			ID:          uuid.NewString(),
			UserID:      userID,
			Concurso:    track,
			Materia:     subject,
			Assunto:     st.ExamTitle,
			DataEstudo:  st.Date,
			Acertos:     acertos,
			Total:       total,
			Taxa:        Percentage(acertos, total),
			Tempo:       shares[subject],
			Dificuldade: models.DifficultyExam,
			Relevancia:  examRelevance,
			Comentarios: st.Notes,
			CreatedAt:   now,
		})
	}
	return records
}
