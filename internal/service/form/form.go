package form

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/RubachokBoss/study-tracker/internal/models"
)

//go:generate mockgen -source=form.go -destination=../../mocks/form/mock_form.go -package=mock_form

const (
	DateLayout       = "2006-01-02"
	defaultRelevance = 5
)

var ErrBusy = errors.New("submission already in progress")

type RecordStore interface {
	InsertStudyRecord(ctx context.Context, record *models.StudyRecord) error
	InsertStudyRecords(ctx context.Context, records []models.StudyRecord) error
	InsertQuestionBankEntry(ctx context.Context, entry *models.QuestionBankEntry) error
}

type UserLookup interface {
	CurrentUserID(ctx context.Context) (string, error)
}

// Props is everything the caller supplies when embedding the form.
type Props struct {
	Syllabus   []models.SyllabusEntry
	ExamTrack  string
	OnComplete func()
	ExamMode   bool
	OnCancel   func()
}

type State struct {
	Date       string
	Time       string
	Subject    string
	Topic      string
	Acertos    int
	Total      int
	Difficulty string
	Relevance  int
	Notes      string
	SaveToBank bool
	ExamTitle  string
	ExamScores map[string]models.ExamScoreEntry
}

// Submission is what the last successful Submit handed to the store.
type Submission struct {
	UserID    string
	Records   []models.StudyRecord
	BankEntry *models.QuestionBankEntry
}

type Form struct {
	props Props
	state State
	busy  atomic.Bool
	last  Submission

	store RecordStore
	users UserLookup
	now   func() time.Time
}

func New(props Props, store RecordStore, users UserLookup) *Form {
	f := &Form{
		props: props,
		store: store,
		users: users,
		now:   time.Now,
	}
	f.state = State{
		Date:       f.now().Format(DateLayout),
		Difficulty: models.DifficultyMedium,
		Relevance:  defaultRelevance,
		ExamScores: make(map[string]models.ExamScoreEntry),
	}
	return f
}

// State returns a copy of the current input state.
func (f *Form) State() State {
	st := f.state
	st.ExamScores = make(map[string]models.ExamScoreEntry, len(f.state.ExamScores))
	for k, v := range f.state.ExamScores {
		st.ExamScores[k] = v
	}
	return st
}

func (f *Form) SetDate(date string) {
	f.state.Date = date
}

func (f *Form) SetTime(raw string) {
	f.state.Time = MaskTime(raw)
}

// SetSubject changes the subject and clears the topic picked for the previous one.
func (f *Form) SetSubject(subject string) {
	if subject != f.state.Subject {
		f.state.Topic = ""
	}
	f.state.Subject = subject
}

func (f *Form) SetTopic(topic string) {
	f.state.Topic = topic
}

// SetCounts updates the score and, outside simulado mode, re-classifies
// the difficulty from the new percentage.
func (f *Form) SetCounts(acertos, total int) {
	f.state.Acertos = acertos
	f.state.Total = total
	if !f.props.ExamMode && total > 0 {
		f.state.Difficulty = ClassifyDifficulty(Percentage(acertos, total))
	}
}

func (f *Form) SetDifficulty(difficulty string) {
	f.state.Difficulty = difficulty
}

func (f *Form) SetRelevance(relevance int) {
	f.state.Relevance = relevance
}

func (f *Form) SetNotes(notes string) {
	f.state.Notes = notes
}

func (f *Form) SetSaveToBank(save bool) {
	f.state.SaveToBank = save
}

func (f *Form) SetExamTitle(title string) {
	f.state.ExamTitle = title
}

func (f *Form) SetExamScore(subject string, score models.ExamScoreEntry) {
	f.state.ExamScores[subject] = score
}

func (f *Form) Stats() Stats {
	pct := Percentage(f.state.Acertos, f.state.Total)
	return Stats{
		Percentage:          pct,
		SuggestedDifficulty: ClassifyDifficulty(pct),
		Exam:                ExamTotals(f.state.ExamScores),
	}
}

// Distribution is the per-subject time split a simulado would be saved with.
func (f *Form) Distribution() map[string]int {
	minutes, ok := ParseMinutes(f.state.Time)
	if !ok {
		return map[string]int{}
	}
	return DistributeMinutes(minutes, subjectTotals(f.state.ExamScores))
}

// Subjects lists the catalog subjects of the active exam track.
func (f *Form) Subjects() []string {
	subjects := make([]string, 0)
	seen := make(map[string]struct{})
	for _, e := range f.props.Syllabus {
		if !f.inTrack(e) {
			continue
		}
		if _, ok := seen[e.Materia]; ok {
			continue
		}
		seen[e.Materia] = struct{}{}
		subjects = append(subjects, e.Materia)
	}
	return subjects
}

func (f *Form) Topics(subject string) []string {
	topics := make([]string, 0)
	for _, e := range f.props.Syllabus {
		if f.inTrack(e) && e.Materia == subject {
			topics = append(topics, e.Topicos...)
		}
	}
	return topics
}

func (f *Form) inTrack(e models.SyllabusEntry) bool {
	return f.props.ExamTrack == "" || e.Concurso == f.props.ExamTrack
}

func (f *Form) Last() Submission {
	return f.last
}

// Submit validates the state and hands the built records to the store.
// Store errors are returned unwrapped so their message reaches the user.
func (f *Form) Submit(ctx context.Context) error {
	if !f.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer f.busy.Store(false)

	if err := f.Validate(); err != nil {
		return err
	}
	minutes, _ := ParseMinutes(f.state.Time)

	userID, err := f.users.CurrentUserID(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve current user: %w", err)
	}

	if f.state.Date == "" {
		f.state.Date = f.now().Format(DateLayout)
	}
	now := f.now().UTC()

	if f.props.ExamMode {
		records := BuildExamRecords(f.state, userID, f.props.ExamTrack, minutes, f.examSubjectOrder(), now)
		if err := f.store.InsertStudyRecords(ctx, records); err != nil {
			return err
		}
		f.last = Submission{UserID: userID, Records: records}
	} else {
		record := BuildStudyRecord(f.state, userID, f.props.ExamTrack, minutes, now)
		var entry *models.QuestionBankEntry
		if f.state.SaveToBank {
			e := BuildQuestionBankEntry(f.state, userID, now)
			entry = &e
		}

		// The record goes first. A failed bank insert does not undo it.
		if err := f.store.InsertStudyRecord(ctx, &record); err != nil {
			return err
		}
		if entry != nil {
			if err := f.store.InsertQuestionBankEntry(ctx, entry); err != nil {
				return err
			}
		}
		f.last = Submission{UserID: userID, Records: []models.StudyRecord{record}, BankEntry: entry}
	}

	if f.props.OnComplete != nil {
		f.props.OnComplete()
	}
	f.reset()
	return nil
}

func (f *Form) reset() {
	f.state.Time = ""
	f.state.Notes = ""
	if f.props.ExamMode {
		f.state.ExamTitle = ""
		f.state.ExamScores = make(map[string]models.ExamScoreEntry)
		return
	}
	f.state.Subject = ""
	f.state.Topic = ""
	f.state.SaveToBank = false
}

// Cancel invokes OnCancel in simulado mode. It does nothing otherwise.
func (f *Form) Cancel() {
	if f.props.ExamMode && f.props.OnCancel != nil {
		f.props.OnCancel()
	}
}
