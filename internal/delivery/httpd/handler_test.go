package httpd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RubachokBoss/study-tracker/internal/models"
	"github.com/RubachokBoss/study-tracker/internal/service"
	"github.com/RubachokBoss/study-tracker/internal/service/form"
	"github.com/RubachokBoss/study-tracker/internal/service/integration"
)

type fakeStudyService struct {
	submitErr  error
	listPage   int
	listLimit  int
	lastReq    *models.SubmitStudyRecordRequest
	lastExam   *models.SubmitSimuladoRequest
	lastUserID string
}

func (f *fakeStudyService) SubmitIndividual(ctx context.Context, req *models.SubmitStudyRecordRequest) (*models.SubmitResponse, error) {
	f.lastReq = req
	f.lastUserID, _ = integration.UserIDFromContext(ctx)
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &models.SubmitResponse{Mode: models.ModeIndividual, Records: 1, Banked: req.SaveToBank}, nil
}

func (f *fakeStudyService) SubmitSimulado(_ context.Context, req *models.SubmitSimuladoRequest) (*models.SubmitResponse, error) {
	f.lastExam = req
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &models.SubmitResponse{Mode: models.ModeSimulado, Records: len(req.Scores)}, nil
}

func (f *fakeStudyService) Preview(_ context.Context, req *models.PreviewRequest) (*models.PreviewResponse, error) {
	minutes, ok := form.ParseMinutes(req.Tempo)
	return &models.PreviewResponse{MaskedTime: form.MaskTime(req.Tempo), Minutes: minutes, TimeValid: ok}, nil
}

func (f *fakeStudyService) ListRecords(_ context.Context, page, limit int) (*models.StudyRecordsResponse, error) {
	f.listPage, f.listLimit = page, limit
	return &models.StudyRecordsResponse{Records: []models.StudyRecord{}, Page: page, Limit: limit}, nil
}

func (f *fakeStudyService) ListQuestionBank(context.Context, int, int) (*models.QuestionBankResponse, error) {
	return nil, errors.New("connection refused")
}

type fakeSyllabusService struct {
	concurso string
}

func (f *fakeSyllabusService) CreateEntry(_ context.Context, req *models.CreateSyllabusEntryRequest) (*models.SyllabusEntry, error) {
	return &models.SyllabusEntry{ID: "1", Concurso: req.Concurso, Materia: req.Materia, Topicos: req.Topicos}, nil
}

func (f *fakeSyllabusService) GetByConcurso(_ context.Context, concurso string) ([]models.SyllabusEntry, error) {
	f.concurso = concurso
	return []models.SyllabusEntry{{ID: "1", Concurso: "TRF", Materia: "Português"}}, nil
}

type fakePerformanceService struct {
	userID   string
	concurso string
}

func (f *fakePerformanceService) Apply(context.Context, *models.StudyRecordedEvent) error {
	return nil
}

func (f *fakePerformanceService) GetForUser(_ context.Context, userID, concurso string) (*models.PerformanceResponse, error) {
	f.userID, f.concurso = userID, concurso
	return &models.PerformanceResponse{Concurso: concurso, Subjects: []models.SubjectPerformance{}}, nil
}

type testEnv struct {
	router      chi.Router
	study       *fakeStudyService
	syllabus    *fakeSyllabusService
	performance *fakePerformanceService
}

func newTestEnv(t *testing.T, provider string) *testEnv {
	t.Helper()

	env := &testEnv{
		study:       &fakeStudyService{},
		syllabus:    &fakeSyllabusService{},
		performance: &fakePerformanceService{},
	}

	h, err := NewHandler(env.study, env.syllabus, env.performance, integration.NewHeaderUserLookup(), provider, zerolog.Nop())
	require.NoError(t, err)

	env.router = chi.NewRouter()
	h.RegisterRoutes(env.router)
	return env
}

func (e *testEnv) do(method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

var asUser = map[string]string{"X-User-ID": "user-1"}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t, AuthProviderHeader)

	rec := env.do(http.MethodGet, "/health", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "study-tracker", body["service"])
}

func TestAuthenticate(t *testing.T) {
	t.Run("header provider without user id", func(t *testing.T) {
		env := newTestEnv(t, AuthProviderHeader)
		rec := env.do(http.MethodGet, "/api/v1/study-records", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("hosted provider without bearer token", func(t *testing.T) {
		env := newTestEnv(t, AuthProviderHosted)
		rec := env.do(http.MethodGet, "/api/v1/study-records", nil, asUser)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("hosted provider with bearer token", func(t *testing.T) {
		env := newTestEnv(t, AuthProviderHosted)
		rec := env.do(http.MethodGet, "/api/v1/study-records", nil, map[string]string{"Authorization": "Bearer abc"})
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestSubmitStudyRecord(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		env := newTestEnv(t, AuthProviderHeader)
		rec := env.do(http.MethodPost, "/api/v1/study-records", models.SubmitStudyRecordRequest{
			Materia: "Português", Assunto: "Crase", Tempo: "1:30", Total: 10, Acertos: 8, SaveToBank: true,
		}, asUser)

		assert.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "user-1", env.study.lastUserID)
		assert.Equal(t, "Crase", env.study.lastReq.Assunto)
	})

	t.Run("malformed body", func(t *testing.T) {
		env := newTestEnv(t, AuthProviderHeader)
		rec := env.do(http.MethodPost, "/api/v1/study-records", "{", asUser)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request body", decodeBody(t, rec)["message"])
		assert.Nil(t, env.study.lastReq)
	})

	t.Run("field constraint", func(t *testing.T) {
		env := newTestEnv(t, AuthProviderHeader)
		rec := env.do(http.MethodPost, "/api/v1/study-records", models.SubmitStudyRecordRequest{
			Dificuldade: "Impossível",
		}, asUser)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeBody(t, rec)["message"], "dificuldade")
	})

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"form validation", &form.ValidationError{Err: form.ErrTopicTooShort}, http.StatusUnprocessableEntity, form.ErrTopicTooShort.Error()},
		{"in flight", service.ErrSubmissionInProgress, http.StatusConflict, service.ErrSubmissionInProgress.Error()},
		{"busy form", form.ErrBusy, http.StatusConflict, form.ErrBusy.Error()},
		{"unauthenticated", integration.ErrUnauthenticated, http.StatusUnauthorized, "authentication required"},
		{"store failure", errors.New("duplicate key value"), http.StatusBadGateway, "duplicate key value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, AuthProviderHeader)
			env.study.submitErr = tt.err

			rec := env.do(http.MethodPost, "/api/v1/study-records", models.SubmitStudyRecordRequest{}, asUser)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.message, decodeBody(t, rec)["message"])
		})
	}
}

func TestSubmitSimulado(t *testing.T) {
	env := newTestEnv(t, AuthProviderHeader)
	env.study.submitErr = &form.ValidationError{Subject: "Português", Err: form.ErrAcertosExceedTotal}

	rec := env.do(http.MethodPost, "/api/v1/simulados", models.SubmitSimuladoRequest{
		Titulo: "Simulado 1",
		Scores: map[string]models.ExamScoreEntry{"Português": {Acertos: "12", Total: "10"}},
	}, asUser)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Português: "+form.ErrAcertosExceedTotal.Error(), decodeBody(t, rec)["message"])
	assert.Equal(t, "12", env.study.lastExam.Scores["Português"].Acertos)
}

func TestPreviewStudyForm(t *testing.T) {
	env := newTestEnv(t, AuthProviderHeader)

	rec := env.do(http.MethodPost, "/api/v1/study-form/preview", models.PreviewRequest{
		Mode: models.ModeIndividual, Tempo: "0130",
	}, asUser)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "01:30", data["masked_time"])
	assert.Equal(t, float64(90), data["minutes"])

	rec = env.do(http.MethodPost, "/api/v1/study-form/preview", models.PreviewRequest{}, asUser)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetStudyRecords(t *testing.T) {
	env := newTestEnv(t, AuthProviderHeader)

	rec := env.do(http.MethodGet, "/api/v1/study-records?page=3&limit=abc", nil, asUser)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, env.study.listPage)
	assert.Equal(t, 20, env.study.listLimit)
}

func TestGetQuestionBankHidesStoreError(t *testing.T) {
	env := newTestEnv(t, AuthProviderHeader)

	rec := env.do(http.MethodGet, "/api/v1/question-bank", nil, asUser)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decodeBody(t, rec)["message"])
}

func TestSyllabusRoutes(t *testing.T) {
	env := newTestEnv(t, AuthProviderHeader)

	rec := env.do(http.MethodGet, "/api/v1/syllabus?concurso=TRF", nil, asUser)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "TRF", env.syllabus.concurso)

	rec = env.do(http.MethodPost, "/api/v1/syllabus", models.CreateSyllabusEntryRequest{
		Concurso: "TRF", Materia: "Português", Topicos: []string{"Crase"},
	}, asUser)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/syllabus", models.CreateSyllabusEntryRequest{Concurso: "TRF"}, asUser)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["message"], "materia")
}

func TestGetPerformance(t *testing.T) {
	env := newTestEnv(t, AuthProviderHeader)

	rec := env.do(http.MethodGet, "/api/v1/performance?concurso=TRF", nil, asUser)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", env.performance.userID)
	assert.Equal(t, "TRF", env.performance.concurso)
}
