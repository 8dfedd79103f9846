// Package dashboard exposes the simulation engine over HTTP: a
// one-shot JSON tick endpoint for polling clients and a websocket for
// interactive control surfaces. The server ships raw analysis arrays;
// rendering is entirely the client's problem.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/signalsfoundry/ewsim/core"
	"github.com/signalsfoundry/ewsim/internal/logging"
	"github.com/signalsfoundry/ewsim/internal/observability"
)

const tracerName = "github.com/signalsfoundry/ewsim/internal/dashboard"

// DefaultPushInterval is how often a websocket session receives an
// unsolicited tick when the client sends no control changes.
const DefaultPushInterval = time.Second

// Server hosts the dashboard API around a single Engine. The engine
// recomputes every tick from the submitted config, so one engine can
// serve all sessions concurrently without shared mutable state beyond
// its random source.
type Server struct {
	engine       *core.Engine
	defaults     core.SimulationConfig
	log          logging.Logger
	metrics      *observability.SimCollector
	tracer       trace.Tracer
	pushInterval time.Duration
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the structured logger. Defaults to a noop logger.
func WithLogger(log logging.Logger) ServerOption {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMetrics wires the Prometheus collector into the tick path.
func WithMetrics(collector *observability.SimCollector) ServerOption {
	return func(s *Server) { s.metrics = collector }
}

// WithDefaults sets the baseline config that requests are merged onto,
// typically the scenario file's defaults.
func WithDefaults(cfg core.SimulationConfig) ServerOption {
	return func(s *Server) { s.defaults = cfg }
}

// WithPushInterval sets the periodic websocket push cadence. Zero or
// negative disables unsolicited pushes.
func WithPushInterval(d time.Duration) ServerOption {
	return func(s *Server) { s.pushInterval = d }
}

// NewServer builds a dashboard server around the given engine.
func NewServer(engine *core.Engine, opts ...ServerOption) *Server {
	s := &Server{
		engine:       engine,
		defaults:     core.DefaultConfig(),
		log:          logging.Noop(),
		tracer:       otel.Tracer(tracerName),
		pushInterval: DefaultPushInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the dashboard HTTP mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tick", s.handleTick)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// handleTick computes a single tick from query parameters merged onto
// the server defaults and returns the full TickResult as JSON.
func (s *Server) handleTick(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.configFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := s.runTick(r.Context(), cfg)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, core.ErrInvalidParameter) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.log.Warn(r.Context(), "failed to encode tick result", logging.String("error", err.Error()))
	}
}

// runTick is the instrumented path every transport funnels through:
// one span per tick, metrics on success and rejection.
func (s *Server) runTick(ctx context.Context, cfg core.SimulationConfig) (*core.TickResult, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.RunTick", trace.WithAttributes(
		attribute.String("jam_type", cfg.JamType.String()),
		attribute.Float64("jam_intensity", cfg.JamIntensity),
		attribute.Float64("frequency_hz", cfg.FrequencyHz),
	))
	defer span.End()

	start := time.Now()
	result, err := s.engine.RunTick(cfg)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveTickFailure()
		return nil, err
	}

	span.SetAttributes(
		attribute.Float64("snr_db", result.Link.SNRdB),
		attribute.String("link_status", string(result.Link.Status)),
	)
	s.metrics.ObserveTick(cfg.JamType, result.Link.Status, result.Link.SNRdB, time.Since(start))

	s.log.Debug(ctx, "tick complete",
		logging.String("jam_type", cfg.JamType.String()),
		logging.Float64("snr_db", result.Link.SNRdB),
		logging.String("status", string(result.Link.Status)),
	)
	return result, nil
}

// configFromQuery merges URL query parameters onto the server defaults.
// Absent parameters keep their default; malformed ones reject the
// request.
func (s *Server) configFromQuery(q url.Values) (core.SimulationConfig, error) {
	cfg := s.defaults

	if v := q.Get("jam_type"); v != "" {
		jt, err := core.ParseJamType(v)
		if err != nil {
			return cfg, err
		}
		cfg.JamType = jt
	}

	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{"frequency_hz", &cfg.FrequencyHz},
		{"amplitude", &cfg.Amplitude},
		{"jam_intensity", &cfg.JamIntensity},
		{"threat_lat", &cfg.ThreatLat},
		{"threat_lon", &cfg.ThreatLon},
		{"sample_rate_hz", &cfg.SampleRateHz},
		{"duration_s", &cfg.DurationS},
	} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("%w: parameter %s: %v", core.ErrInvalidParameter, p.name, err)
		}
		*p.dst = f
	}

	return cfg, nil
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
