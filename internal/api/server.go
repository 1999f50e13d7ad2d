// Package api provides the local HTTP status endpoint for the companion.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"mouseshare/internal/input"
	"mouseshare/internal/session"
)

// SessionSource reports the link state.
type SessionSource interface {
	Status() session.Status
}

// InputSource reports dispatcher activity.
type InputSource interface {
	Stats() input.Stats
	Pressed() []int
}

// StatusResponse is the body of GET /api/status and of every /ws push.
type StatusResponse struct {
	Session session.Status `json:"session"`
	Screen  input.Geometry `json:"screen"`
	Input   input.Stats    `json:"input"`
	Pressed []int          `json:"pressed"`
	Version string         `json:"version"`
}

// Server provides the HTTP status API
type Server struct {
	session SessionSource
	input   InputSource
	screen  input.Geometry
	version string
	hub     *Hub
	log     *slog.Logger
}

// NewServer creates a new status server
func NewServer(sess SessionSource, in InputSource, screen input.Geometry, version string) *Server {
	s := &Server{
		session: sess,
		input:   in,
		screen:  screen,
		version: version,
		log:     slog.Default().With("component", "status"),
	}
	s.hub = newHub(s)
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/ws", s.hub.handleWebSocket)
	return s.logMiddleware(s.recoverMiddleware(mux))
}

// Start serves on addr until ctx is done. The hub runs for the lifetime of
// the call.
func (s *Server) Start(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("status server listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go s.hub.run(hubCtx)

	server := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	s.log.Info("status server listening", "addr", ln.Addr().String())
	if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("status server: %w", err)
	}
	return nil
}

// Publish pushes a fresh snapshot to every /ws client. It never blocks and
// is meant to be registered with session.Client.OnStateChange.
func (s *Server) Publish(session.Status) {
	s.hub.publish(s.snapshot())
}

func (s *Server) snapshot() StatusResponse {
	resp := StatusResponse{
		Screen:  s.screen,
		Version: s.version,
		Pressed: []int{},
	}
	if s.session != nil {
		resp.Session = s.session.Status()
	}
	if s.input != nil {
		resp.Input = s.input.Stats()
		resp.Pressed = s.input.Pressed()
	}
	return resp
}

// recoverMiddleware prevents panics from crashing the whole server
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.log.Error("handler panic", "path", r.URL.Path, "err", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.Debug("request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}

// handleStatus handles GET /api/status
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, s.snapshot())
}

// handleHealth handles GET /health (for monitoring)
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
