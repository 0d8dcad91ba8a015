package httpd

import (
	"net/http"
)

func (h *Handler) GetPerformance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := h.users.CurrentUserID(ctx)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	resp, err := h.performanceService.GetForUser(ctx, userID, r.URL.Query().Get("concurso"))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, resp)
}
