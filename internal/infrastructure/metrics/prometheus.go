package metrics

import (
	stdErrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/johnquangdev/signal-pulse/errors"
	"github.com/johnquangdev/signal-pulse/internal/domain/entities"
)

const namespace = "signal_pulse"

// Recorder owns the Prometheus registry and the pulse collectors
type Recorder struct {
	registry *prometheus.Registry

	runs          *prometheus.CounterVec
	runDuration   *prometheus.HistogramVec
	modelCalls    *prometheus.CounterVec
	modelDuration *prometheus.HistogramVec
	overallScore  prometheus.Histogram
	grades        *prometheus.CounterVec
	executionRisk *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// NewRecorder registers the pulse collectors on a fresh registry
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Pulse pipeline runs by outcome.",
		}, []string{"outcome"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "End to end pulse run duration.",
			Buckets:   []float64{1, 5, 10, 20, 30, 60, 120, 240},
		}, []string{"outcome"}),
		modelCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_calls_total",
			Help:      "Language model calls by provider, stage and outcome.",
		}, []string{"provider", "stage", "outcome"}),
		modelDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "model_call_duration_seconds",
			Help:      "Language model call duration including retries.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 80, 160},
		}, []string{"provider", "stage"}),
		overallScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "overall_score",
			Help:      "Distribution of meeting effectiveness scores.",
			Buckets:   []float64{50, 60, 70, 80, 90, 100},
		}),
		grades: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grades_total",
			Help:      "Meeting grades handed out.",
		}, []string{"grade"}),
		executionRisk: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "execution_risk_total",
			Help:      "Execution risk levels of scored meetings.",
		}, []string{"level"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.runs,
		r.runDuration,
		r.modelCalls,
		r.modelDuration,
		r.overallScore,
		r.grades,
		r.executionRisk,
		r.httpRequests,
		r.httpDuration,
	)
	return r
}

// ObserveModelCall records one model call
func (r *Recorder) ObserveModelCall(provider, stage, outcome string, elapsed time.Duration) {
	r.modelCalls.WithLabelValues(provider, stage, outcome).Inc()
	r.modelDuration.WithLabelValues(provider, stage).Observe(elapsed.Seconds())
}

// ObserveRun records one pipeline run. scores is nil for failed runs.
func (r *Recorder) ObserveRun(outcome string, elapsed time.Duration, scores *entities.Scores) {
	r.runs.WithLabelValues(outcome).Inc()
	r.runDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	if scores == nil {
		return
	}
	r.ObserveScores(*scores)
}

// ObserveScores records a scoring verdict, including offline scoring
func (r *Recorder) ObserveScores(scores entities.Scores) {
	r.overallScore.Observe(float64(scores.Overall))
	r.grades.WithLabelValues(string(scores.Grade)).Inc()
	r.executionRisk.WithLabelValues(string(scores.ExecutionRisk)).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Middleware counts HTTP requests by matched route
func (r *Recorder) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				var he *echo.HTTPError
				var appErr errors.AppError
				switch {
				case stdErrors.As(err, &he):
					status = he.Code
				case stdErrors.As(err, &appErr):
					status = appErr.HTTPCode
				default:
					status = http.StatusInternalServerError
				}
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			r.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
			r.httpDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
