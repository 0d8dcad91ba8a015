package httpd

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/RubachokBoss/study-tracker/internal/service"
	"github.com/RubachokBoss/study-tracker/internal/service/form"
	"github.com/RubachokBoss/study-tracker/internal/service/integration"
)

type Handler struct {
	studyService       service.StudyService
	syllabusService    service.SyllabusService
	performanceService service.PerformanceService
	users              form.UserLookup
	authProvider       string
	validator          *requestValidator
	logger             zerolog.Logger
}

func NewHandler(
	studyService service.StudyService,
	syllabusService service.SyllabusService,
	performanceService service.PerformanceService,
	users form.UserLookup,
	authProvider string,
	logger zerolog.Logger,
) (*Handler, error) {
	v, err := newRequestValidator()
	if err != nil {
		return nil, err
	}

	return &Handler{
		studyService:       studyService,
		syllabusService:    syllabusService,
		performanceService: performanceService,
		users:              users,
		authProvider:       authProvider,
		validator:          v,
		logger:             logger,
	}, nil
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Route("/api/v1", func(api chi.Router) {
		api.Use(Authenticate(h.authProvider))

		api.Route("/study-records", func(r chi.Router) {
			r.Post("/", h.SubmitStudyRecord)
			r.Get("/", h.GetStudyRecords)
		})

		api.Post("/simulados", h.SubmitSimulado)
		api.Post("/study-form/preview", h.PreviewStudyForm)
		api.Get("/question-bank", h.GetQuestionBank)

		api.Route("/syllabus", func(r chi.Router) {
			r.Get("/", h.GetSyllabus)
			r.Post("/", h.CreateSyllabusEntry)
		})

		api.Get("/performance", h.GetPerformance)
	})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "study-tracker",
		"timestamp": time.Now().UTC(),
	}

	writeJSON(w, http.StatusOK, response)
}

// handleServiceError maps errors of the read endpoints.
func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, integration.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "authentication required")
	default:
		h.logger.Error().Err(err).Msg("Service error")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func getIntQueryParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error":   http.StatusText(status),
		"message": message,
	})
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	writeSuccessStatus(w, http.StatusOK, data)
}

func writeSuccessStatus(w http.ResponseWriter, status int, data interface{}) {
	response := map[string]interface{}{
		"success": true,
		"data":    data,
	}
	writeJSON(w, status, response)
}
