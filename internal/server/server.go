// Package server provides the HTTP and SSE host for lead analysis sessions.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/phuslu/log"

	"github.com/jonathan/leadgen/internal/engine"
	"github.com/jonathan/leadgen/internal/server/ratelimit"
	"github.com/jonathan/leadgen/internal/session"
)

// DefaultMaxSessions bounds the session table when Config.MaxSessions is unset.
const DefaultMaxSessions = 256

// EngineFactory creates the engine owned by a new session.
type EngineFactory func() (engine.Engine, error)

// Config holds server configuration
type Config struct {
	Port         int
	MaxSessions  int
	RateLimit    float64 // requests per second per client, 0 uses the limiter default
	RateBurst    int
	ProgressTick time.Duration
	NewEngine    EngineFactory
}

// sessionEntry pairs a session with the engine it owns.
type sessionEntry struct {
	session *session.Session
	engine  engine.Engine
}

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	handler      http.Handler
	sessions     *lru.Cache[string, *sessionEntry]
	newEngine    EngineFactory
	progressTick time.Duration
	rateLimiter  *ratelimit.Limiter
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.NewEngine == nil {
		return nil, errors.New("an engine factory is required")
	}

	maxSessions := cfg.MaxSessions
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	sessions, err := lru.NewWithEvict(maxSessions, func(id string, entry *sessionEntry) {
		log.Info().Str("session", id).Msg("session evicted")
		closeEngine(entry.engine)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session table: %w", err)
	}

	s := &Server{
		sessions:     sessions,
		newEngine:    cfg.NewEngine,
		progressTick: cfg.ProgressTick,
		rateLimiter:  ratelimit.NewLimiter(ratelimit.LoadConfig(cfg.RateLimit, cfg.RateBurst)),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("GET /sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("POST /sessions/{id}/runs", s.handleRun)
	mux.HandleFunc("POST /sessions/{id}/runs/stream", s.handleRunStream)
	mux.HandleFunc("GET /sessions/{id}/profile", s.handleProfile)
	mux.HandleFunc("GET /sessions/{id}/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /sessions/{id}/export", s.handleExport)

	mux.HandleFunc("POST /batch", s.handleBatch)

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for analysis runs
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped request handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.Close()
	log.Info().Msg("server stopped")
	return nil
}

// Close stops the rate limiter and releases every session engine.
func (s *Server) Close() {
	s.rateLimiter.Stop()
	s.sessions.Purge()
}

func closeEngine(eng engine.Engine) {
	if c, ok := eng.(io.Closer); ok {
		if err := c.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close engine")
		}
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients that exceed their bucket
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"status": "ok", "sessions": s.sessions.Len()})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// writeError maps err to its status code.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg("request failed")
	}
	s.errorResponse(w, status, err.Error())
}

// clientID identifies the caller by IP address.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":   "rate_limit_exceeded",
		"message": "Rate limit exceeded. Please try again later.",
		"limit":   info.Limit,
	}
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	log.Warn().Int("limit", info.Limit).Dur("retry_after", info.RetryAfter).Msg("rate limit exceeded")
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
