package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/linguava/linguava/internal/config"
	"github.com/linguava/linguava/internal/observability"
	"github.com/linguava/linguava/internal/protocol"
	"github.com/linguava/linguava/internal/session"
)

// ConnectionHandler consumes parsed inbound messages for one session and
// produces outbound envelopes.
type ConnectionHandler interface {
	RunConnection(ctx context.Context, s *session.Session, inbound <-chan any, outbound chan<- any) error
}

type Server struct {
	cfg      config.Config
	registry *session.Registry
	handler  ConnectionHandler
	metrics  *observability.Metrics
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func New(cfg config.Config, registry *session.Registry, handler ConnectionHandler, metrics *observability.Metrics, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		cfg:      cfg,
		registry: registry,
		handler:  handler,
		metrics:  metrics,
		logger:   logger.With(zap.String("component", "httpapi")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				// Default: only allow browser websocket connections from the
				// same origin. The game mod omits Origin entirely.
				if cfg.AllowAnyOrigin {
					return true
				}
				origin := strings.TrimSpace(r.Header.Get("Origin"))
				if origin == "" {
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				if u.Scheme != "http" && u.Scheme != "https" {
					return false
				}
				return strings.EqualFold(u.Host, r.Host)
			},
		},
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		observability.MetricsHandler().ServeHTTP(w, r)
	})
	r.Get("/ws", s.handleWS)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"active_sessions": s.registry.ActiveCount(),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":          "ready",
		"target_language": s.cfg.TargetLanguage,
		"voice_enabled":   !s.cfg.VoiceDisabled(),
	})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	sess := s.registry.Register(r.RemoteAddr)
	s.metrics.ActiveSessions.Set(float64(s.registry.ActiveCount()))
	s.metrics.SessionEvents.WithLabelValues("connected").Inc()
	s.logger.Info("client connected",
		zap.String("session_id", sess.ID),
		zap.String("remote_addr", sess.RemoteAddr),
		zap.Int("total_clients", s.registry.ActiveCount()),
	)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	inbound := make(chan any, 64)
	outbound := make(chan any, 64)
	runDone := make(chan struct{})

	go func() {
		defer close(runDone)
		_ = s.handler.RunConnection(ctx, sess, inbound, outbound)
	}()

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-outbound:
				if !ok {
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
				if err := conn.WriteJSON(msg); err != nil {
					s.logger.Warn("write failed", zap.String("session_id", sess.ID), zap.Error(err))
					cancel()
					return
				}
				if t, ok := protocol.MessageTypeOf(msg); ok {
					s.metrics.WSMessages.WithLabelValues("outbound", string(t)).Inc()
				}
			}
		}
	}()

	conn.SetReadLimit(4 << 20)
	_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
		return nil
	})

readLoop:
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
		if msgType != websocket.TextMessage {
			continue
		}

		parsed, err := protocol.ParseClientMessage(data)
		if err != nil {
			// Malformed envelopes are recoverable: reply ERROR, keep the
			// session open.
			errEnv := protocol.NewError(formatParseError(err))
			select {
			case outbound <- errEnv:
			default:
				// Keep websocket writes single-threaded; drop when saturated.
				s.logger.Warn("outbound queue full, dropping error reply", zap.String("session_id", sess.ID))
			}
			continue
		}

		if t, ok := protocol.MessageTypeOf(parsed); ok {
			s.metrics.WSMessages.WithLabelValues("inbound", string(t)).Inc()
		}
		select {
		case <-ctx.Done():
			break readLoop
		case inbound <- parsed:
		}
	}

	cancel()
	close(inbound)
	<-runDone
	<-writerDone

	if err := s.registry.Deregister(sess.ID); err == nil {
		s.metrics.ActiveSessions.Set(float64(s.registry.ActiveCount()))
		s.metrics.SessionEvents.WithLabelValues("disconnected").Inc()
	}
	s.logger.Info("client disconnected",
		zap.String("session_id", sess.ID),
		zap.Int("total_clients", s.registry.ActiveCount()),
	)
}

func formatParseError(err error) string {
	if errors.Is(err, protocol.ErrUnsupportedType) {
		return "unsupported message type"
	}
	return "Invalid JSON format"
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
