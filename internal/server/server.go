// Package server provides the HTTP API for parsing uploads and rendering résumés.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/theme"
	"github.com/jonathan/resume-builder/internal/types"
)

// Store persists render history. *db.DB implements it.
type Store interface {
	CreateRender(ctx context.Context, name, source, engine string) (uuid.UUID, error)
	CompleteRender(ctx context.Context, id uuid.UUID, pages int, renderErr error) error
	SaveArtifact(ctx context.Context, renderID uuid.UUID, kind string, content []byte) error
	GetArtifact(ctx context.Context, renderID uuid.UUID, kind string) (*db.Artifact, error)
	GetRender(ctx context.Context, id uuid.UUID) (*db.Render, error)
	ListRenders(ctx context.Context, limit int) ([]db.Render, error)
	Close()
}

// RenderFunc renders a résumé to PDF.
type RenderFunc func(ctx context.Context, resume *types.Resume, th *theme.Theme, opts rendering.RenderOptions) (*rendering.Output, error)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       Store
	parser      *parsing.Parser
	render      RenderFunc
	rateLimiter *ratelimit.Limiter
	logger      *slog.Logger

	themePath    string
	templatePath string
	compile      rendering.CompileOptions
	// themeMu serialises theme file writes
	themeMu sync.Mutex
}

// Config holds server configuration
type Config struct {
	Port           int
	DatabaseURL    string
	ThemePath      string
	TemplatePath   string
	TempDir        string
	CompileTimeout time.Duration
	Logger         *slog.Logger
}

// New creates a server. Render history is enabled when DatabaseURL is set.
func New(cfg Config) (*Server, error) {
	var store Store
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, err
		}
		store = database
	}

	return newServer(cfg, store, ratelimit.LoadConfig()), nil
}

func newServer(cfg Config, store Store, limits *ratelimit.Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	themePath := cfg.ThemePath
	if themePath == "" {
		themePath = theme.DefaultPath
	}

	s := &Server{
		store:        store,
		parser:       &parsing.Parser{TempDir: cfg.TempDir, Logger: logger},
		render:       rendering.RenderPDF,
		rateLimiter:  ratelimit.NewLimiter(limits),
		logger:       logger,
		themePath:    themePath,
		templatePath: cfg.TemplatePath,
		compile: rendering.CompileOptions{
			TempDir: cfg.TempDir,
			Timeout: cfg.CompileTimeout,
			Logger:  logger,
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /parse", s.handleParse)
	mux.HandleFunc("POST /render", s.handleRender)
	mux.HandleFunc("POST /transform", s.handleTransform)
	mux.HandleFunc("GET /theme", s.handleGetTheme)
	mux.HandleFunc("PUT /theme", s.handlePutTheme)

	// Render history
	mux.HandleFunc("GET /renders", s.handleListRenders)
	mux.HandleFunc("GET /renders/{id}", s.handleGetRender)
	mux.HandleFunc("GET /renders/{id}/{artifact}", s.handleGetArtifact)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // LaTeX runs can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the server's root handler with middleware applied
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens until SIGINT or SIGTERM, then shuts down gracefully
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr, "history", s.store != nil)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.close()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.close()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.store != nil {
		s.store.Close()
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Expose-Headers", "X-Render-ID, Content-Disposition")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients that exceed their token bucket
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging logs each request with its status and duration
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// clientID identifies the caller by remote IP
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

// rateLimitResponse writes a 429 with the limit details
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Warn("rate limit exceeded", "client", clientID(r), "path", r.URL.Path, "limit", info.Limit)
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}
