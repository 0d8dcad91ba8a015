package integration

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/RubachokBoss/study-tracker/internal/models"
)

const (
	studyRecordsPath = "/rest/v1/study_records"
	questionBankPath = "/rest/v1/question_bank"
)

// hostedError is the error body of the hosted REST service.
type hostedError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// HostedError carries the hosted service's message unchanged.
type HostedError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *HostedError) Error() string {
	return e.Message
}

func newHostedError(resp *resty.Response) error {
	msg := ""
	code := ""
	if body, ok := resp.Error().(*hostedError); ok && body != nil {
		msg = body.Message
		code = body.Code
	}
	if msg == "" {
		msg = strings.TrimSpace(string(resp.Body()))
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode())
	}
	return &HostedError{StatusCode: resp.StatusCode(), Code: code, Message: msg}
}

type HostedStore struct {
	client *resty.Client
	apiKey string
	logger zerolog.Logger
}

// NewHostedStore writes records to a PostgREST-style endpoint. Requests are
// not retried.
func NewHostedStore(baseURL, apiKey string, timeout time.Duration, logger zerolog.Logger) *HostedStore {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Prefer", "return=minimal")
	if apiKey != "" {
		client.SetHeader("apikey", apiKey)
	}

	return &HostedStore{
		client: client,
		apiKey: apiKey,
		logger: logger,
	}
}

func (s *HostedStore) InsertStudyRecord(ctx context.Context, record *models.StudyRecord) error {
	return s.post(ctx, studyRecordsPath, record)
}

func (s *HostedStore) InsertStudyRecords(ctx context.Context, records []models.StudyRecord) error {
	return s.post(ctx, studyRecordsPath, records)
}

func (s *HostedStore) InsertQuestionBankEntry(ctx context.Context, entry *models.QuestionBankEntry) error {
	return s.post(ctx, questionBankPath, entry)
}

func (s *HostedStore) post(ctx context.Context, path string, body interface{}) error {
	req := s.client.R().
		SetContext(ctx).
		SetBody(body).
		SetError(&hostedError{})

	// Row level security on the hosted side keys off the caller's token.
	if token, ok := BearerTokenFromContext(ctx); ok {
		req.SetAuthToken(token)
	} else if s.apiKey != "" {
		req.SetAuthToken(s.apiKey)
	}

	resp, err := req.Post(path)
	if err != nil {
		return fmt.Errorf("failed to call hosted store: %w", err)
	}
	if resp.IsError() {
		hostedErr := newHostedError(resp)
		s.logger.Error().
			Str("path", path).
			Int("status", resp.StatusCode()).
			Err(hostedErr).
			Msg("Hosted store rejected insert")
		return hostedErr
	}

	s.logger.Debug().Str("path", path).Int("status", resp.StatusCode()).Msg("Hosted store insert succeeded")
	return nil
}
