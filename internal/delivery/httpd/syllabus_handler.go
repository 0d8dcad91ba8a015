package httpd

import (
	"net/http"

	"github.com/RubachokBoss/study-tracker/internal/models"
)

func (h *Handler) GetSyllabus(w http.ResponseWriter, r *http.Request) {
	concurso := r.URL.Query().Get("concurso")

	entries, err := h.syllabusService.GetByConcurso(r.Context(), concurso)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, entries)
}

func (h *Handler) CreateSyllabusEntry(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSyllabusEntryRequest
	if err := h.validator.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.syllabusService.CreateEntry(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccessStatus(w, http.StatusCreated, entry)
}
