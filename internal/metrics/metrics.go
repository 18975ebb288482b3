// Package metrics exposes Prometheus collectors for the builder sessions.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/zerocode/landing/internal/builder"
)

var Module = fx.Module("metrics",
	fx.Provide(
		fx.Annotate(NewRecorder, fx.As(new(builder.Observer))),
	),
)

var (
	SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "landing_builder_sessions_active",
		Help: "Builder sessions currently held in memory",
	})

	SessionsOpened = promauto.NewCounter(prometheus.CounterOpts{
		Name: "landing_builder_sessions_opened_total",
		Help: "Total number of builder sessions opened",
	})

	GenerationsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "landing_builder_generations_started_total",
		Help: "Total number of generation runs started",
	}, []string{"superseded"})

	GenerationsIgnored = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "landing_builder_generations_ignored_total",
		Help: "Total number of generation requests that were no-ops",
	}, []string{"reason"})

	GenerationsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "landing_builder_generations_completed_total",
		Help: "Total number of generation runs that revealed the whole snippet",
	})

	GenerationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "landing_builder_generation_seconds",
		Help:    "Wall time from generation start to the end of the reveal",
		Buckets: []float64{1, 2.5, 5, 7.5, 10, 12.5, 15, 20, 30},
	})

	RequestsThrottled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "landing_builder_requests_throttled_total",
		Help: "Total number of builder requests rejected by the rate limiter",
	}, []string{"action"})
)

// Recorder feeds builder notifications into the collectors.
type Recorder struct{}

// NewRecorder creates a recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (*Recorder) SessionOpened() {
	SessionsOpened.Inc()
	SessionsActive.Inc()
}

func (*Recorder) SessionClosed() {
	SessionsActive.Dec()
}

func (*Recorder) GenerationStarted(superseded bool) {
	GenerationsStarted.WithLabelValues(strconv.FormatBool(superseded)).Inc()
}

func (*Recorder) GenerationIgnored(reason builder.IgnoreReason) {
	GenerationsIgnored.WithLabelValues(string(reason)).Inc()
}

func (*Recorder) GenerationCompleted(elapsed time.Duration) {
	GenerationsCompleted.Inc()
	GenerationSeconds.Observe(elapsed.Seconds())
}

// Throttled counts a request refused by the rate limiter.
func Throttled(action string) {
	RequestsThrottled.WithLabelValues(action).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
