package dashboard

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/signalsfoundry/ewsim/core"
	"github.com/signalsfoundry/ewsim/internal/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// The dashboard is served from the same origin in deployments; tests
	// and local tooling connect cross-origin.
	CheckOrigin: func(*http.Request) bool { return true },
}

// ControlMessage is what a dashboard client sends over the websocket.
// All fields are optional; present fields are applied to the session's
// current config before the next tick is computed.
type ControlMessage struct {
	FrequencyHz  *float64 `json:"frequency_hz,omitempty"`
	Amplitude    *float64 `json:"amplitude,omitempty"`
	JamType      *string  `json:"jam_type,omitempty"`
	JamIntensity *float64 `json:"jam_intensity,omitempty"`
	ThreatLat    *float64 `json:"threat_lat,omitempty"`
	ThreatLon    *float64 `json:"threat_lon,omitempty"`
	SampleRateHz *float64 `json:"sample_rate_hz,omitempty"`
	DurationS    *float64 `json:"duration_s,omitempty"`
}

// TickEnvelope wraps websocket frames so clients can distinguish tick
// payloads from error notices.
type TickEnvelope struct {
	Type      string           `json:"type"` // "tick" or "error"
	SessionID string           `json:"session_id"`
	Error     string           `json:"error,omitempty"`
	Result    *core.TickResult `json:"result,omitempty"`
}

// wsSession holds per-connection state. The config is owned by the
// session; gorilla allows a single concurrent writer, so all frames go
// through send().
type wsSession struct {
	conn      *websocket.Conn
	sessionID string
	log       logging.Logger

	mu  sync.Mutex // guards writes to conn
	cfg core.SimulationConfig
}

func (w *wsSession) send(env TickEnvelope) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteJSON(env)
}

// handleWebSocket upgrades the connection and serves the interactive
// session: each inbound control message triggers a recomputed tick,
// and a background ticker pushes the current state at the configured
// cadence so passive clients still see live data.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn(r.Context(), "websocket upgrade failed", logging.String("error", err.Error()))
		return
	}

	ctx, log := logging.WithSessionLogger(r.Context(), s.log)
	sess := &wsSession{
		conn:      conn,
		sessionID: logging.SessionIDFromContext(ctx),
		log:       log,
		cfg:       s.defaults,
	}

	s.metrics.SessionOpened()
	log.Info(ctx, "dashboard session opened", logging.String("remote", conn.RemoteAddr().String()))

	defer func() {
		s.metrics.SessionClosed()
		log.Info(ctx, "dashboard session closed")
		_ = conn.Close()
	}()

	// Initial tick so the client renders immediately.
	s.sendTick(ctx, sess)

	done := make(chan struct{})
	defer close(done)
	if s.pushInterval > 0 {
		go s.pushLoop(ctx, sess, done)
	}

	for {
		var msg ControlMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn(ctx, "websocket read failed", logging.String("error", err.Error()))
			}
			return
		}
		if err := sess.apply(msg); err != nil {
			_ = sess.send(TickEnvelope{Type: "error", SessionID: sess.sessionID, Error: err.Error()})
			continue
		}
		s.sendTick(ctx, sess)
	}
}

// pushLoop sends unsolicited periodic ticks until the session ends.
// Jam models with a random component produce fresh traces every push.
func (s *Server) pushLoop(ctx context.Context, sess *wsSession, done <-chan struct{}) {
	ticker := time.NewTicker(s.pushInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.sendTick(ctx, sess)
		}
	}
}

func (s *Server) sendTick(ctx context.Context, sess *wsSession) {
	sess.mu.Lock()
	cfg := sess.cfg
	sess.mu.Unlock()

	result, err := s.runTick(ctx, cfg)
	if err != nil {
		_ = sess.send(TickEnvelope{Type: "error", SessionID: sess.sessionID, Error: err.Error()})
		return
	}
	if err := sess.send(TickEnvelope{Type: "tick", SessionID: sess.sessionID, Result: result}); err != nil {
		sess.log.Debug(ctx, "websocket write failed", logging.String("error", err.Error()))
	}
}

// apply merges a control message onto the session config. The merged
// config is validated as a whole so a rejected message leaves the
// session exactly where it was.
func (w *wsSession) apply(msg ControlMessage) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	next := w.cfg
	if msg.FrequencyHz != nil {
		next.FrequencyHz = *msg.FrequencyHz
	}
	if msg.Amplitude != nil {
		next.Amplitude = *msg.Amplitude
	}
	if msg.JamType != nil {
		jt, err := core.ParseJamType(*msg.JamType)
		if err != nil {
			return err
		}
		next.JamType = jt
	}
	if msg.JamIntensity != nil {
		next.JamIntensity = *msg.JamIntensity
	}
	if msg.ThreatLat != nil {
		next.ThreatLat = *msg.ThreatLat
	}
	if msg.ThreatLon != nil {
		next.ThreatLon = *msg.ThreatLon
	}
	if msg.SampleRateHz != nil {
		next.SampleRateHz = *msg.SampleRateHz
	}
	if msg.DurationS != nil {
		next.DurationS = *msg.DurationS
	}

	if err := next.Validate(); err != nil {
		return err
	}
	w.cfg = next
	return nil
}
