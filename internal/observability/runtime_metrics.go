// Package observability wires Prometheus metrics and OpenTelemetry tracing
// for the simulation server.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lodestoneworks/gameserver/gametime"
)

// RuntimeCollector bundles Prometheus metrics for the server runtime loop.
// It satisfies the server package's MetricsRecorder interface so the
// runtime can drive it directly, and exposes a /metrics handler.
type RuntimeCollector struct {
	gatherer prometheus.Gatherer

	CyclesTotal        prometheus.Counter
	CycleDuration      prometheus.Histogram
	InterruptionsTotal *prometheus.CounterVec
	EventsRunTotal     prometheus.Counter
	InGameSeconds      prometheus.Gauge
	ExitsTotal         *prometheus.CounterVec
}

// NewRuntimeCollector registers runtime metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
// Registration tolerates collectors that already exist, so repeated
// construction against the same registry returns the existing series.
func NewRuntimeCollector(reg prometheus.Registerer) (*RuntimeCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	cycles, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sim_cycles_total",
		Help: "Total number of completed runtime scheduling cycles.",
	}), "sim_cycles_total")
	if err != nil {
		return nil, err
	}

	cycleDuration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sim_cycle_duration_seconds",
		Help:    "Wall-clock duration of runtime scheduling cycles, including the bounded wait.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}), "sim_cycle_duration_seconds")
	if err != nil {
		return nil, err
	}

	interruptions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sim_interruptions_total",
		Help: "Total number of interruptions applied by the runtime, labeled by variant.",
	}, []string{"kind"})
	interruptions, err = registerCounterVec(reg, interruptions, "sim_interruptions_total")
	if err != nil {
		return nil, err
	}

	events, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sim_events_run_total",
		Help: "Total number of internally scheduled events executed.",
	}), "sim_events_run_total")
	if err != nil {
		return nil, err
	}

	inGame, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sim_in_game_seconds",
		Help: "Current in-game time in seconds since the simulation epoch.",
	}), "sim_in_game_seconds")
	if err != nil {
		return nil, err
	}

	exits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sim_runtime_exits_total",
		Help: "Runtime goroutine exits, labeled natural or fault.",
	}, []string{"outcome"})
	exits, err = registerCounterVec(reg, exits, "sim_runtime_exits_total")
	if err != nil {
		return nil, err
	}

	return &RuntimeCollector{
		gatherer:           gatherer,
		CyclesTotal:        cycles,
		CycleDuration:      cycleDuration,
		InterruptionsTotal: interruptions,
		EventsRunTotal:     events,
		InGameSeconds:      inGame,
		ExitsTotal:         exits,
	}, nil
}

// RecordCycle counts a completed cycle and observes its duration.
func (c *RuntimeCollector) RecordCycle(d time.Duration) {
	if c == nil {
		return
	}
	if c.CyclesTotal != nil {
		c.CyclesTotal.Inc()
	}
	if c.CycleDuration != nil {
		c.CycleDuration.Observe(d.Seconds())
	}
}

// RecordInterruption counts one applied interruption of the given variant.
func (c *RuntimeCollector) RecordInterruption(kind string) {
	if c == nil || c.InterruptionsTotal == nil {
		return
	}
	c.InterruptionsTotal.WithLabelValues(kind).Inc()
}

// RecordEventsRun adds the number of scheduled events run in a cycle.
func (c *RuntimeCollector) RecordEventsRun(n int) {
	if c == nil || c.EventsRunTotal == nil || n <= 0 {
		return
	}
	c.EventsRunTotal.Add(float64(n))
}

// SetInGameTime publishes the runtime's current in-game time.
func (c *RuntimeCollector) SetInGameTime(t gametime.Time) {
	if c == nil || c.InGameSeconds == nil {
		return
	}
	c.InGameSeconds.Set(t.Seconds())
}

// RecordExit counts a runtime goroutine exit by outcome.
func (c *RuntimeCollector) RecordExit(natural bool) {
	if c == nil || c.ExitsTotal == nil {
		return
	}
	outcome := "fault"
	if natural {
		outcome = "natural"
	}
	c.ExitsTotal.WithLabelValues(outcome).Inc()
}

// Handler exposes a ready-to-use /metrics handler.
func (c *RuntimeCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
