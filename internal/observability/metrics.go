package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/signalsfoundry/ewsim/core"
)

// SimCollector bundles Prometheus metrics for the simulation surface
// and exposes helpers to wire them into the tick loop and the
// dashboard HTTP layer.
type SimCollector struct {
	gatherer prometheus.Gatherer

	Ticks         *prometheus.CounterVec
	TickDurations *prometheus.HistogramVec
	TickFailures  prometheus.Counter

	LastSNRdB         prometheus.Gauge
	DashboardSessions prometheus.Gauge
}

// NewSimCollector registers simulation Prometheus metrics against the
// provided registerer, defaulting to the global Prometheus registry
// when nil.
func NewSimCollector(reg prometheus.Registerer) (*SimCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	ticks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ewsim_ticks_total",
		Help: "Total number of completed simulation ticks, labeled by jam type and resulting link status.",
	}, []string{"jam_type", "status"})
	ticks, err := registerCounterVec(reg, ticks, "ewsim_ticks_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ewsim_tick_duration_seconds",
		Help:    "Simulation tick latency in seconds.",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
	}, []string{"jam_type"})
	durations, err = registerHistogramVec(reg, durations, "ewsim_tick_duration_seconds")
	if err != nil {
		return nil, err
	}

	failures, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ewsim_tick_failures_total",
		Help: "Total number of rejected tick configurations.",
	}), "ewsim_tick_failures_total")
	if err != nil {
		return nil, err
	}

	lastSNR, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ewsim_last_snr_db",
		Help: "SNR of the most recent tick in dB.",
	}), "ewsim_last_snr_db")
	if err != nil {
		return nil, err
	}

	sessions, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ewsim_dashboard_sessions",
		Help: "Number of connected dashboard websocket sessions.",
	}), "ewsim_dashboard_sessions")
	if err != nil {
		return nil, err
	}

	return &SimCollector{
		gatherer:          gatherer,
		Ticks:             ticks,
		TickDurations:     durations,
		TickFailures:      failures,
		LastSNRdB:         lastSNR,
		DashboardSessions: sessions,
	}, nil
}

// ObserveTick records one completed tick.
func (c *SimCollector) ObserveTick(jamType core.JamType, status core.LinkStatus, snrDB float64, elapsed time.Duration) {
	if c == nil {
		return
	}
	if c.Ticks != nil {
		c.Ticks.WithLabelValues(jamType.String(), string(status)).Inc()
	}
	if c.TickDurations != nil {
		c.TickDurations.WithLabelValues(jamType.String()).Observe(elapsed.Seconds())
	}
	if c.LastSNRdB != nil {
		c.LastSNRdB.Set(snrDB)
	}
}

// ObserveTickFailure records a rejected configuration.
func (c *SimCollector) ObserveTickFailure() {
	if c == nil || c.TickFailures == nil {
		return
	}
	c.TickFailures.Inc()
}

// SessionOpened / SessionClosed track dashboard connections.
func (c *SimCollector) SessionOpened() {
	if c != nil && c.DashboardSessions != nil {
		c.DashboardSessions.Inc()
	}
}

func (c *SimCollector) SessionClosed() {
	if c != nil && c.DashboardSessions != nil {
		c.DashboardSessions.Dec()
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *SimCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
