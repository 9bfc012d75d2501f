package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics. Each instance owns its registry so
// several controllers (and tests) can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Command cascade metrics
	StrategyAttempts  *prometheus.CounterVec
	CascadeExhausted  *prometheus.CounterVec
	CascadeDuration   *prometheus.HistogramVec
	BreakerTransition *prometheus.CounterVec

	// Typing metrics
	Insertions        *prometheus.CounterVec
	PlaceholderSearch *prometheus.CounterVec
	ScriptSteps       *prometheus.CounterVec
	SessionsConnected prometheus.Counter

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds current metric values for the JSON API
type Snapshot struct {
	StrategyAttempts int64 `json:"strategy_attempts"`
	StrategyFailures int64 `json:"strategy_failures"`
	CascadesFailed   int64 `json:"cascades_failed"`
	Insertions       int64 `json:"insertions"`
	PlaceholdersHit  int64 `json:"placeholders_found"`
	PlaceholdersMiss int64 `json:"placeholders_missed"`
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "litepro_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "litepro_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "path"},
		),

		StrategyAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "litepro_strategy_attempts_total",
				Help: "Command strategies attempted, by operation, strategy and outcome",
			},
			[]string{"op", "strategy", "outcome"},
		),
		CascadeExhausted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "litepro_cascade_exhausted_total",
				Help: "Command cascades in which every strategy failed",
			},
			[]string{"op"},
		),
		CascadeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "litepro_cascade_duration_seconds",
				Help:    "Time spent in a command cascade",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"op"},
		),
		BreakerTransition: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "litepro_breaker_transitions_total",
				Help: "Transport circuit breaker state transitions",
			},
			[]string{"from", "to"},
		),

		Insertions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "litepro_insertions_total",
				Help: "Content insertions by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		PlaceholderSearch: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "litepro_placeholder_searches_total",
				Help: "Placeholder locate attempts by marker and outcome",
			},
			[]string{"marker", "outcome"},
		),
		ScriptSteps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "litepro_script_steps_total",
				Help: "Typing script steps by tool and outcome",
			},
			[]string{"tool", "outcome"},
		),
		SessionsConnected: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "litepro_sessions_connected_total",
				Help: "Successful attachments to the word processor",
			},
		),

		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "litepro_uptime_seconds",
				Help: "Service uptime in seconds",
			},
		),
	}

	return m
}

// Handler exposes the metrics in Prometheus text format
func (m *Metrics) Handler() http.Handler {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.updateUptime()
		h.ServeHTTP(w, r)
	})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) updateUptime() {
	m.Uptime.Set(time.Since(m.startTime).Seconds())
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordStrategy records one strategy attempt inside a cascade
func (m *Metrics) RecordStrategy(op, strategy string, ok bool) {
	if m == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "failed"
	}
	m.StrategyAttempts.WithLabelValues(op, strategy, outcome).Inc()

	m.mu.Lock()
	m.snapshot.StrategyAttempts++
	if !ok {
		m.snapshot.StrategyFailures++
	}
	m.mu.Unlock()
}

// RecordCascade records a finished cascade
func (m *Metrics) RecordCascade(op string, ok bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.CascadeDuration.WithLabelValues(op).Observe(duration.Seconds())
	if !ok {
		m.CascadeExhausted.WithLabelValues(op).Inc()
		m.mu.Lock()
		m.snapshot.CascadesFailed++
		m.mu.Unlock()
	}
}

// RecordBreaker records a breaker state change
func (m *Metrics) RecordBreaker(from, to string) {
	if m == nil {
		return
	}
	m.BreakerTransition.WithLabelValues(from, to).Inc()
}

// RecordInsertion records a content insertion
func (m *Metrics) RecordInsertion(kind string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "failed"
	}
	m.Insertions.WithLabelValues(kind, outcome).Inc()
	m.mu.Lock()
	m.snapshot.Insertions++
	m.mu.Unlock()
}

// RecordPlaceholder records a placeholder locate attempt
func (m *Metrics) RecordPlaceholder(marker string, found bool) {
	if m == nil {
		return
	}
	outcome := "found"
	if !found {
		outcome = "missing"
	}
	m.PlaceholderSearch.WithLabelValues(marker, outcome).Inc()
	m.mu.Lock()
	if found {
		m.snapshot.PlaceholdersHit++
	} else {
		m.snapshot.PlaceholdersMiss++
	}
	m.mu.Unlock()
}

// RecordScriptStep records one executed script step
func (m *Metrics) RecordScriptStep(tool string, ok bool) {
	if m == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "failed"
	}
	m.ScriptSteps.WithLabelValues(tool, outcome).Inc()
}

// IncSessionsConnected counts a successful attachment
func (m *Metrics) IncSessionsConnected() {
	if m == nil {
		return
	}
	m.SessionsConnected.Inc()
}

// GetSnapshot returns the current snapshot values
func (m *Metrics) GetSnapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}
