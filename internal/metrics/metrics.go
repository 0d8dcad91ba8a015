package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultSuccess    = "success"
	ResultInvalid    = "invalid"
	ResultStoreError = "store_error"
	ResultBusy       = "busy"
	ResultFailed     = "failed"
)

type Metrics struct {
	registry *prometheus.Registry

	requestCounter     *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	submissions        *prometheus.CounterVec
	recordsPersisted   *prometheus.CounterVec
	performanceUpdates *prometheus.CounterVec
}

// New builds the collectors on a dedicated registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"method", "endpoint"},
		),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "study_submissions_total",
				Help: "Study form submissions by mode and result",
			},
			[]string{"mode", "result"},
		),
		recordsPersisted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "study_records_persisted_total",
				Help: "Study records handed to the record store",
			},
			[]string{"mode"},
		),
		performanceUpdates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "performance_updates_total",
				Help: "Study recorded events applied to subject performance",
			},
			[]string{"result"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestCounter,
		m.requestDuration,
		m.submissions,
		m.recordsPersisted,
		m.performanceUpdates,
	)
	return m
}

func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		endpoint := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			endpoint = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveSubmission(mode, result string) {
	m.submissions.WithLabelValues(mode, result).Inc()
}

func (m *Metrics) AddPersisted(mode string, records int) {
	m.recordsPersisted.WithLabelValues(mode).Add(float64(records))
}

func (m *Metrics) ObservePerformanceUpdate(result string) {
	m.performanceUpdates.WithLabelValues(result).Inc()
}

func (m *Metrics) Submissions() *prometheus.CounterVec {
	return m.submissions
}

func (m *Metrics) Persisted() *prometheus.CounterVec {
	return m.recordsPersisted
}

func (m *Metrics) PerformanceUpdates() *prometheus.CounterVec {
	return m.performanceUpdates
}
