package form

import (
	"errors"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/RubachokBoss/study-tracker/internal/models"
)

const minTextLength = 3

var (
	ErrInvalidTime        = errors.New("invalid time, use HH:MM with minutes up to 59")
	ErrMissingTime        = errors.New("study time must be greater than zero")
	ErrMissingSubject     = errors.New("subject is required")
	ErrTopicTooShort      = errors.New("topic must have at least 3 characters")
	ErrTotalNotPositive   = errors.New("total must be greater than zero")
	ErrAcertosExceedTotal = errors.New("acertos cannot exceed total")
	ErrNegativeAcertos    = errors.New("acertos cannot be negative")
	ErrTitleTooShort      = errors.New("title must have at least 3 characters")
	ErrNoExamScores       = errors.New("at least one subject needs a total greater than zero")
)

// ValidationError is returned when the form state cannot be submitted.
// Subject is set when the failure belongs to one simulado subject.
type ValidationError struct {
	Subject string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Subject != "" {
		return e.Subject + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(err error) error {
	return &ValidationError{Err: err}
}

// Validate checks the current state without changing it.
func (f *Form) Validate() error {
	minutes, ok := ParseMinutes(f.state.Time)
	if !ok {
		return invalid(ErrInvalidTime)
	}
	if minutes <= 0 {
		return invalid(ErrMissingTime)
	}

	if f.props.ExamMode {
		return f.validateExam()
	}
	return f.validateIndividual()
}

func (f *Form) validateIndividual() error {
	st := f.state
	if strings.TrimSpace(st.Subject) == "" {
		return invalid(ErrMissingSubject)
	}
	if utf8.RuneCountInString(strings.TrimSpace(st.Topic)) < minTextLength {
		return invalid(ErrTopicTooShort)
	}
	if st.Total <= 0 {
		return invalid(ErrTotalNotPositive)
	}
	if st.Acertos > st.Total {
		return invalid(ErrAcertosExceedTotal)
	}
	if st.Acertos < 0 {
		return invalid(ErrNegativeAcertos)
	}
	return nil
}

func (f *Form) validateExam() error {
	st := f.state
	if utf8.RuneCountInString(st.ExamTitle) < minTextLength {
		return invalid(ErrTitleTooShort)
	}

	order := f.examSubjectOrder()
	scored := false
	for _, subject := range order {
		if parseCount(st.ExamScores[subject].Total) > 0 {
			scored = true
			break
		}
	}
	if !scored {
		return invalid(ErrNoExamScores)
	}

	for _, subject := range order {
		score := st.ExamScores[subject]
		total := parseCount(score.Total)
		if total <= 0 {
			continue
		}
		if strings.TrimSpace(subject) == "" {
			return invalid(ErrMissingSubject)
		}
		if parseCount(score.Acertos) > total {
			return &ValidationError{Subject: subject, Err: ErrAcertosExceedTotal}
		}
	}
	return nil
}

// examSubjectOrder lists scored subjects in catalog order for the active
// track, followed by any other subjects sorted by name.
func (f *Form) examSubjectOrder() []string {
	order := make([]string, 0, len(f.state.ExamScores))
	seen := make(map[string]struct{}, len(f.state.ExamScores))

	for _, subject := range f.Subjects() {
		if _, ok := f.state.ExamScores[subject]; !ok {
			continue
		}
		order = append(order, subject)
		seen[subject] = struct{}{}
	}

	rest := make([]string, 0)
	for subject := range f.state.ExamScores {
		if _, ok := seen[subject]; !ok {
			rest = append(rest, subject)
		}
	}
	sort.Strings(rest)

	return append(order, rest...)
}

// subjectTotals is the question total of every subject in the score map.
func subjectTotals(scores map[string]models.ExamScoreEntry) map[string]int {
	totals := make(map[string]int, len(scores))
	for subject, s := range scores {
		totals[subject] = parseCount(s.Total)
	}
	return totals
}
