package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instruments for the quiz service.
type Metrics struct {
	EmbedRenders    *prometheus.CounterVec
	AdminSaves      prometheus.Counter
	AdminDeletes    prometheus.Counter
	RequestDuration *prometheus.HistogramVec
}

// New registers the service metrics on a fresh registry and returns both.
// A dedicated registry keeps tests from tripping over duplicate registration.
func New() (*Metrics, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		EmbedRenders: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "yabby",
				Subsystem: "quiz",
				Name:      "embed_renders_total",
				Help:      "Embed renders by resolver decision",
			},
			[]string{"decision"},
		),
		AdminSaves: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "yabby",
				Subsystem: "quiz",
				Name:      "admin_saves_total",
				Help:      "Successful quiz saves from the admin form",
			},
		),
		AdminDeletes: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "yabby",
				Subsystem: "quiz",
				Name:      "admin_deletes_total",
				Help:      "Quiz deletions from the admin list",
			},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "yabby",
				Subsystem: "quiz",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "status"},
		),
	}
	return m, reg
}

// Handler exposes the registry in Prometheus text format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Middleware records request durations labeled by method and status code.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		m.RequestDuration.WithLabelValues(r.Method, strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
