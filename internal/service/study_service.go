package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/study-tracker/internal/metrics"
	"github.com/RubachokBoss/study-tracker/internal/models"
	"github.com/RubachokBoss/study-tracker/internal/repository"
	"github.com/RubachokBoss/study-tracker/internal/service/form"
	"github.com/RubachokBoss/study-tracker/internal/service/integration"
)

var ErrSubmissionInProgress = errors.New("another submission for this user is still in progress")

type StudyService interface {
	SubmitIndividual(ctx context.Context, req *models.SubmitStudyRecordRequest) (*models.SubmitResponse, error)
	SubmitSimulado(ctx context.Context, req *models.SubmitSimuladoRequest) (*models.SubmitResponse, error)
	Preview(ctx context.Context, req *models.PreviewRequest) (*models.PreviewResponse, error)
	ListRecords(ctx context.Context, page, limit int) (*models.StudyRecordsResponse, error)
	ListQuestionBank(ctx context.Context, page, limit int) (*models.QuestionBankResponse, error)
}

type studyService struct {
	store          form.RecordStore
	users          form.UserLookup
	recordRepo     repository.StudyRecordRepository
	bankRepo       repository.QuestionBankRepository
	syllabusRepo   repository.SyllabusRepository
	rabbitmqClient integration.RabbitMQClient
	metrics        *metrics.Metrics
	logger         zerolog.Logger

	inFlight sync.Map
}

func NewStudyService(
	store form.RecordStore,
	users form.UserLookup,
	recordRepo repository.StudyRecordRepository,
	bankRepo repository.QuestionBankRepository,
	syllabusRepo repository.SyllabusRepository,
	rabbitmqClient integration.RabbitMQClient,
	m *metrics.Metrics,
	logger zerolog.Logger,
) StudyService {
	return &studyService{
		store:          store,
		users:          users,
		recordRepo:     recordRepo,
		bankRepo:       bankRepo,
		syllabusRepo:   syllabusRepo,
		rabbitmqClient: rabbitmqClient,
		metrics:        m,
		logger:         logger,
	}
}

// resolvedUser hands the form a user id that was already looked up.
type resolvedUser struct {
	id string
}

func (u *resolvedUser) CurrentUserID(context.Context) (string, error) {
	return u.id, nil
}

func (s *studyService) currentUser(ctx context.Context) (string, error) {
	userID, err := s.users.CurrentUserID(ctx)
	if err != nil {
		if errors.Is(err, integration.ErrUnauthenticated) {
			return "", err
		}
		return "", fmt.Errorf("failed to resolve current user: %w", err)
	}
	return userID, nil
}

func (s *studyService) acquire(userID string) bool {
	_, loaded := s.inFlight.LoadOrStore(userID, struct{}{})
	return !loaded
}

func (s *studyService) release(userID string) {
	s.inFlight.Delete(userID)
}

func (s *studyService) loadSyllabus(ctx context.Context, concurso string) []models.SyllabusEntry {
	if s.syllabusRepo == nil {
		return nil
	}
	entries, err := s.syllabusRepo.GetByConcurso(ctx, concurso)
	if err != nil {
		s.logger.Warn().Err(err).Str("concurso", concurso).Msg("Failed to load syllabus, continuing without catalog")
		return nil
	}
	return entries
}

func (s *studyService) SubmitIndividual(ctx context.Context, req *models.SubmitStudyRecordRequest) (*models.SubmitResponse, error) {
	return s.submit(ctx, models.ModeIndividual, req.Concurso, func(f *form.Form) {
		if req.DataEstudo != "" {
			f.SetDate(req.DataEstudo)
		}
		f.SetTime(req.Tempo)
		f.SetSubject(req.Materia)
		f.SetTopic(req.Assunto)
		f.SetCounts(req.Acertos, req.Total)
		if req.Dificuldade != "" {
			f.SetDifficulty(req.Dificuldade)
		}
		if req.Relevancia != 0 {
			f.SetRelevance(req.Relevancia)
		}
		f.SetNotes(req.Comentarios)
		f.SetSaveToBank(req.SaveToBank)
	})
}

func (s *studyService) SubmitSimulado(ctx context.Context, req *models.SubmitSimuladoRequest) (*models.SubmitResponse, error) {
	return s.submit(ctx, models.ModeSimulado, req.Concurso, func(f *form.Form) {
		if req.DataEstudo != "" {
			f.SetDate(req.DataEstudo)
		}
		f.SetTime(req.Tempo)
		f.SetExamTitle(req.Titulo)
		f.SetNotes(req.Comentarios)
		for subject, score := range req.Scores {
			f.SetExamScore(subject, score)
		}
	})
}

func (s *studyService) submit(ctx context.Context, mode, concurso string, fill func(f *form.Form)) (*models.SubmitResponse, error) {
	user := &resolvedUser{}

	var f *form.Form
	f = form.New(form.Props{
		Syllabus:  s.loadSyllabus(ctx, concurso),
		ExamTrack: concurso,
		ExamMode:  mode == models.ModeSimulado,
		OnComplete: func() {
			s.onComplete(ctx, mode, concurso, f.Last())
		},
	}, s.store, user)
	fill(f)

	// Invalid input never reaches the user lookup or the store.
	if err := f.Validate(); err != nil {
		s.metrics.ObserveSubmission(mode, metrics.ResultInvalid)
		s.logger.Debug().Err(err).Str("mode", mode).Msg("Study form rejected")
		return nil, err
	}

	userID, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	user.id = userID

	if !s.acquire(userID) {
		s.metrics.ObserveSubmission(mode, metrics.ResultBusy)
		return nil, ErrSubmissionInProgress
	}
	defer s.release(userID)

	if err := f.Submit(ctx); err != nil {
		s.metrics.ObserveSubmission(mode, submissionResult(err))
		s.logger.Error().Err(err).Str("user_id", userID).Str("mode", mode).Msg("Failed to save study form")
		return nil, err
	}

	last := f.Last()
	return &models.SubmitResponse{
		Mode:    mode,
		Records: len(last.Records),
		Banked:  last.BankEntry != nil,
	}, nil
}

func submissionResult(err error) string {
	var vErr *form.ValidationError
	switch {
	case errors.As(err, &vErr):
		return metrics.ResultInvalid
	case errors.Is(err, form.ErrBusy):
		return metrics.ResultBusy
	default:
		return metrics.ResultStoreError
	}
}

// onComplete refreshes derived views: counters now, subject performance
// through the study.recorded event.
func (s *studyService) onComplete(ctx context.Context, mode, concurso string, sub form.Submission) {
	s.metrics.ObserveSubmission(mode, metrics.ResultSuccess)
	s.metrics.AddPersisted(mode, len(sub.Records))

	s.logger.Info().
		Str("user_id", sub.UserID).
		Str("mode", mode).
		Int("records", len(sub.Records)).
		Bool("banked", sub.BankEntry != nil).
		Msg("Study form saved")

	if s.rabbitmqClient == nil {
		return
	}

	event := &models.StudyRecordedEvent{
		UserID:    sub.UserID,
		Concurso:  concurso,
		Mode:      mode,
		Subjects:  make([]models.SubjectSessionAgg, 0, len(sub.Records)),
		Timestamp: time.Now().Unix(),
	}
	for _, r := range sub.Records {
		event.Subjects = append(event.Subjects, models.SubjectSessionAgg{
			Materia: r.Materia,
			Acertos: r.Acertos,
			Total:   r.Total,
			Minutes: r.Tempo,
		})
	}

	if err := s.rabbitmqClient.PublishStudyRecorded(context.WithoutCancel(ctx), event); err != nil {
		s.logger.Error().Err(err).Str("user_id", sub.UserID).Msg("Failed to publish study recorded event")
	}
}

func (s *studyService) Preview(ctx context.Context, req *models.PreviewRequest) (*models.PreviewResponse, error) {
	examMode := req.Mode == models.ModeSimulado

	f := form.New(form.Props{
		Syllabus:  s.loadSyllabus(ctx, req.Concurso),
		ExamTrack: req.Concurso,
		ExamMode:  examMode,
	}, nil, nil)
	if req.DataEstudo != "" {
		f.SetDate(req.DataEstudo)
	}
	f.SetTime(req.Tempo)

	if examMode {
		f.SetExamTitle(req.Titulo)
		for subject, score := range req.Scores {
			f.SetExamScore(subject, score)
		}
	} else {
		f.SetSubject(req.Materia)
		f.SetTopic(req.Assunto)
		f.SetCounts(req.Acertos, req.Total)
		if req.Dificuldade != "" {
			f.SetDifficulty(req.Dificuldade)
		}
	}

	st := f.State()
	minutes, ok := form.ParseMinutes(st.Time)
	stats := f.Stats()

	resp := &models.PreviewResponse{
		MaskedTime: st.Time,
		Minutes:    minutes,
		TimeValid:  ok,
		Valid:      true,
	}

	if examMode {
		resp.Percentage = stats.Exam.Percentage
		resp.ExamAcertos = stats.Exam.Acertos
		resp.ExamTotal = stats.Exam.Total
		resp.Distribution = f.Distribution()
	} else {
		resp.Percentage = stats.Percentage
		if st.Total > 0 {
			resp.SuggestedDifficulty = stats.SuggestedDifficulty
		}
	}

	if err := f.Validate(); err != nil {
		resp.Valid = false
		resp.Error = err.Error()
	}

	return resp, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func (s *studyService) ListRecords(ctx context.Context, page, limit int) (*models.StudyRecordsResponse, error) {
	userID, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	page, limit = normalizePage(page, limit)
	offset := (page - 1) * limit

	records, total, err := s.recordRepo.GetByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get study records: %w", err)
	}

	return &models.StudyRecordsResponse{
		Records: records,
		Total:   total,
		Page:    page,
		Limit:   limit,
	}, nil
}

func (s *studyService) ListQuestionBank(ctx context.Context, page, limit int) (*models.QuestionBankResponse, error) {
	userID, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	page, limit = normalizePage(page, limit)
	offset := (page - 1) * limit

	entries, total, err := s.bankRepo.GetByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get question bank: %w", err)
	}

	return &models.QuestionBankResponse{
		Entries: entries,
		Total:   total,
		Page:    page,
		Limit:   limit,
	}, nil
}
