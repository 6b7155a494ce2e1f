// Package server provides the HTTP REST API for the resume maker.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/resumeforge/resume-maker/internal/cache"
	"github.com/resumeforge/resume-maker/internal/config"
	"github.com/resumeforge/resume-maker/internal/db"
	"github.com/resumeforge/resume-maker/internal/export"
	"github.com/resumeforge/resume-maker/internal/ingest"
	"github.com/resumeforge/resume-maker/internal/llm"
	"github.com/resumeforge/resume-maker/internal/queue"
	"github.com/resumeforge/resume-maker/internal/render"
	"github.com/resumeforge/resume-maker/internal/scoring"
	"github.com/resumeforge/resume-maker/internal/server/middleware"
	"github.com/resumeforge/resume-maker/internal/server/ratelimit"
	"github.com/resumeforge/resume-maker/internal/storage"
)

// MaxUploadBytes caps the size of an uploaded resume file.
const MaxUploadBytes = 10 << 20 // 10 MiB

// Server represents the HTTP server and its backing services. Optional
// backends (queue, cache, AI) may be nil; handlers degrade accordingly.
type Server struct {
	httpServer *http.Server

	db        *db.DB
	store     *storage.Store
	queue     *queue.Queue
	cache     *cache.ScoreCache
	llmClient llm.Client

	renderer    *render.Renderer
	exporter    *export.Exporter
	localEngine scoreEngine
	aiEngine    scoreEngine
	processor   *ingest.Processor

	jwtService  *JWTService
	rateLimiter *ratelimit.Limiter
	validate    *validator.Validate

	allowedOrigin string
}

// New creates a server, connecting to the configured backends. The
// database is required; Redis, RabbitMQ, S3, and Gemini are attached only
// when configured.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	s := &Server{
		renderer:      render.NewRenderer(),
		localEngine:   scoring.NewLocalEngine(),
		jwtService:    NewJWTService(cfg.JWTSecret, cfg.JWTExpirationHours),
		rateLimiter:   ratelimit.NewLimiter(ratelimit.LoadConfig()),
		validate:      validator.New(),
		allowedOrigin: cfg.AllowedOrigin,
	}

	exporter := export.New(s.renderer)
	exporter.SetTimeout(time.Duration(cfg.ChromeTimeoutSeconds) * time.Second)
	s.exporter = exporter

	// Backends are independent; connect to them concurrently.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		database, err := db.Connect(gctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		s.db = database
		return nil
	})

	if cfg.S3Bucket != "" {
		g.Go(func() error {
			store, err := storage.New(gctx, storage.Config{
				Endpoint:  cfg.S3Endpoint,
				Region:    cfg.S3Region,
				Bucket:    cfg.S3Bucket,
				AccessKey: cfg.S3AccessKey,
				SecretKey: cfg.S3SecretKey,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize object storage: %w", err)
			}
			s.store = store
			return nil
		})
	}

	if cfg.RedisAddr != "" {
		g.Go(func() error {
			scores, err := cache.New(gctx, cfg.RedisAddr, cfg.RedisPassword)
			if err != nil {
				return fmt.Errorf("failed to connect to Redis: %w", err)
			}
			s.cache = scores
			return nil
		})
	}

	if cfg.GeminiAPIKey != "" {
		g.Go(func() error {
			client, err := llm.NewGeminiClient(gctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
			if err != nil {
				return fmt.Errorf("failed to create LLM client: %w", err)
			}
			s.llmClient = client
			s.aiEngine = scoring.NewAIEngine(client)
			return nil
		})
	}

	if cfg.AMQPURL != "" {
		g.Go(func() error {
			q, err := queue.Connect(cfg.AMQPURL)
			if err != nil {
				return fmt.Errorf("failed to connect to queue: %w", err)
			}
			s.queue = q
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.processor = ingest.NewProcessor(s.db, s.store)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF export can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the router. Resume and credit endpoints require a bearer
// token; health and template listing are open.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /templates", s.handleListTemplates)

	authed := middleware.Auth(s.jwtService.AsTokenValidator())
	protect := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, authed(h))
	}

	protect("POST /resumes", s.handleUploadResume)
	protect("POST /resumes/json", s.handleCreateResumeJSON)
	protect("GET /resumes", s.handleListResumes)
	protect("GET /resumes/{id}", s.handleGetResume)
	protect("PATCH /resumes/{id}", s.handleUpdateResume)
	protect("DELETE /resumes/{id}", s.handleDeleteResume)
	protect("GET /resumes/{id}/file", s.handleDownloadFile)
	protect("POST /resumes/{id}/reparse", s.handleReparse)

	protect("POST /resumes/{id}/score", s.handleScoreResume)
	protect("GET /resumes/{id}/score", s.handleGetScore)

	protect("GET /resumes/{id}/preview", s.handlePreview)
	protect("GET /resumes/{id}/export", s.handleExport)

	protect("GET /credits", s.handleGetCredits)

	return mux
}

// Start begins listening and blocks until SIGINT/SIGTERM, then shuts down
// gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.queue != nil {
		s.queue.Close()
	}
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			log.Printf("Error closing Redis client: %v", err)
		}
	}
	if s.llmClient != nil {
		if err := s.llmClient.Close(); err != nil {
			log.Printf("Error closing LLM client: %v", err)
		}
	}
	s.db.Close()

	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit applies per-client rate limiting.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleError maps a handler error to its HTTP status and writes it.
func (s *Server) handleError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID extracts the client identifier (IP) from the request.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
