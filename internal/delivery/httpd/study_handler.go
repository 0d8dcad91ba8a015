package httpd

import (
	"errors"
	"net/http"

	"github.com/RubachokBoss/study-tracker/internal/models"
	"github.com/RubachokBoss/study-tracker/internal/service"
	"github.com/RubachokBoss/study-tracker/internal/service/form"
	"github.com/RubachokBoss/study-tracker/internal/service/integration"
)

func (h *Handler) SubmitStudyRecord(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitStudyRecordRequest
	if err := h.validator.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.studyService.SubmitIndividual(r.Context(), &req)
	if err != nil {
		h.handleSubmitError(w, err)
		return
	}

	writeSuccessStatus(w, http.StatusCreated, resp)
}

func (h *Handler) SubmitSimulado(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitSimuladoRequest
	if err := h.validator.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.studyService.SubmitSimulado(r.Context(), &req)
	if err != nil {
		h.handleSubmitError(w, err)
		return
	}

	writeSuccessStatus(w, http.StatusCreated, resp)
}

func (h *Handler) PreviewStudyForm(w http.ResponseWriter, r *http.Request) {
	var req models.PreviewRequest
	if err := h.validator.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.studyService.Preview(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, resp)
}

func (h *Handler) GetStudyRecords(w http.ResponseWriter, r *http.Request) {
	page := getIntQueryParam(r, "page", 1)
	limit := getIntQueryParam(r, "limit", 20)

	resp, err := h.studyService.ListRecords(r.Context(), page, limit)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, resp)
}

func (h *Handler) GetQuestionBank(w http.ResponseWriter, r *http.Request) {
	page := getIntQueryParam(r, "page", 1)
	limit := getIntQueryParam(r, "limit", 20)

	resp, err := h.studyService.ListQuestionBank(r.Context(), page, limit)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, resp)
}

// handleSubmitError maps a failed submission. Store errors are passed
// through with their original message.
func (h *Handler) handleSubmitError(w http.ResponseWriter, err error) {
	var vErr *form.ValidationError

	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusUnprocessableEntity, vErr.Error())
	case errors.Is(err, service.ErrSubmissionInProgress), errors.Is(err, form.ErrBusy):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, integration.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "authentication required")
	default:
		h.logger.Error().Err(err).Msg("Record store error")
		writeError(w, http.StatusBadGateway, err.Error())
	}
}
