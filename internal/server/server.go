// Package server provides the HTTP API of the resume builder: template
// catalog, previews, downloads, live preview streams, share links and the
// AI assistant.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/ai"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/sirupsen/logrus"
)

// Store is the resume persistence the server needs. *db.DB implements it.
type Store interface {
	ListResumes(ctx context.Context, filters db.ListFilters) ([]db.ResumeSummary, error)
	GetResume(ctx context.Context, id uuid.UUID) (*db.ResumeRecord, error)
	CreateResume(ctx context.Context, r *types.Resume) (*db.ResumeRecord, error)
	UpdateResume(ctx context.Context, id uuid.UUID, r *types.Resume) (*db.ResumeRecord, error)
	DeleteResume(ctx context.Context, id uuid.UUID) error
	DuplicateResume(ctx context.Context, id uuid.UUID) (*db.ResumeRecord, error)
	SetSharing(ctx context.Context, id uuid.UUID, public bool, token string) error
}

// Assistant is the AI collaborator. *ai.Service implements it.
type Assistant interface {
	Enhance(ctx context.Context, req types.EnhanceRequest) (*types.EnhanceResult, error)
	GenerateSummary(ctx context.Context, req types.SummaryRequest) (*types.SummaryResult, error)
	Score(ctx context.Context, r *types.Resume) (*types.ATSReport, error)
	KeywordSuggestions(ctx context.Context, req types.KeywordRequest) (*types.KeywordSuggestions, error)
	ApplyEnhancement(ctx context.Context, r *types.Resume, t ai.Target) (*types.EnhanceResult, error)
}

// Thumbnailer produces template preview images. *thumbnail.Service
// implements it.
type Thumbnailer interface {
	Thumbnail(ctx context.Context, templateID string) ([]byte, error)
}

// Options wires the server's collaborators. Only Config is required;
// missing collaborators disable their routes with 503.
type Options struct {
	Config      *config.Config
	Store       Store
	Renderer    *rendering.Renderer
	Assistant   Assistant
	Thumbnailer Thumbnailer
	Limiter     *ratelimit.Limiter
	Logger      logrus.FieldLogger
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	handler    http.Handler

	cfg         *config.Config
	store       Store
	renderer    *rendering.Renderer
	assistant   Assistant
	thumbnails  Thumbnailer
	shares      *ShareService
	previews    *PreviewHub
	rateLimiter *ratelimit.Limiter
	log         logrus.FieldLogger
	stop        chan struct{}
}

const maxBodyBytes = 1 << 20

// New creates a new server instance
func New(opts Options) (*Server, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("config is required")
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	rn := opts.Renderer
	if rn == nil {
		rn = rendering.NewRenderer(log)
	}

	s := &Server{
		cfg:         opts.Config,
		store:       opts.Store,
		renderer:    rn,
		assistant:   opts.Assistant,
		thumbnails:  opts.Thumbnailer,
		previews:    NewPreviewHub(30 * time.Minute),
		rateLimiter: opts.Limiter,
		log:         log,
		stop:        make(chan struct{}),
	}

	if share, err := opts.Config.Share(); err == nil {
		s.shares = NewShareService(share)
	} else {
		log.WithError(err).Info("share links disabled")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Template catalog
	mux.HandleFunc("GET /templates", s.handleListTemplates)
	mux.HandleFunc("GET /templates/{id}", s.handleGetTemplate)
	mux.HandleFunc("GET /templates/{id}/preview", s.handleTemplatePreview)
	mux.HandleFunc("GET /templates/{id}/thumbnail.png", s.handleTemplateThumbnail)

	// Stateless rendering
	mux.HandleFunc("POST /render/{format}", s.handleRender)

	// Resumes
	mux.HandleFunc("GET /resumes", s.handleListResumes)
	mux.HandleFunc("POST /resumes", s.handleCreateResume)
	mux.HandleFunc("GET /resumes/{id}", s.handleGetResume)
	mux.HandleFunc("PUT /resumes/{id}", s.handleUpdateResume)
	mux.HandleFunc("DELETE /resumes/{id}", s.handleDeleteResume)
	mux.HandleFunc("POST /resumes/{id}/duplicate", s.handleDuplicateResume)
	mux.HandleFunc("GET /resumes/{id}/preview", s.handleResumePreview)
	mux.HandleFunc("GET /resumes/{id}/pdf", s.handleResumeDownload(rendering.FormatPDF))
	mux.HandleFunc("GET /resumes/{id}/docx", s.handleResumeDownload(rendering.FormatDOCX))

	// Sharing
	mux.HandleFunc("POST /resumes/{id}/share", s.handleShareResume)
	mux.HandleFunc("POST /resumes/{id}/unshare", s.handleUnshareResume)
	mux.HandleFunc("GET /shared/{token}", s.handleShared)

	// Live preview
	mux.HandleFunc("POST /preview/sessions", s.handleCreatePreviewSession)
	mux.HandleFunc("GET /preview/sessions/{id}", s.handlePreviewPage)
	mux.HandleFunc("POST /preview/sessions/{id}", s.handlePreviewUpdate)
	mux.HandleFunc("GET /preview/sessions/{id}/events", s.handlePreviewEvents)

	// AI assistant
	mux.HandleFunc("POST /ai/enhance", s.handleEnhance)
	mux.HandleFunc("POST /ai/summary", s.handleSummary)
	mux.HandleFunc("POST /ai/ats-score", s.handleATSScore)
	mux.HandleFunc("POST /ai/keywords", s.handleKeywords)
	mux.HandleFunc("POST /resumes/{id}/enhance", s.handleEnhanceResume)
	mux.HandleFunc("POST /resumes/{id}/ats-score", s.handleScoreResume)

	var handler http.Handler = s.withCORS(mux)
	handler = s.withLogging(handler)
	if s.rateLimiter != nil {
		handler = s.withRateLimit(handler)
	}
	s.handler = handler

	s.httpServer = &http.Server{
		Addr:              opts.Config.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// No WriteTimeout: preview event streams are long-lived.
		IdleTimeout: 60 * time.Second,
	}

	return s, nil
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.httpServer.Addr).Info("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	go s.sweepPreviews(time.Minute)

	select {
	case err := <-errCh:
		close(s.stop)
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.log.Info("shutting down server")
	close(s.stop)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	s.log.Info("server stopped")
	return nil
}

func (s *Server) sweepPreviews(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			if n := s.previews.Sweep(); n > 0 {
				s.log.WithField("sessions", n).Debug("expired preview sessions")
			}
		case <-s.stop:
			return
		}
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps SSE streaming working through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// withLogging logs one line per request.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

// withRateLimit rejects clients over their tier's budget with 429.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
		}
		if !allowed {
			if info.RetryAfter > 0 {
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds()+0.999)))
			}
			s.log.WithFields(logrus.Fields{"client": clientID(r), "path": r.URL.Path}).Warn("rate limit exceeded")
			s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
				"error":   "rate_limit_exceeded",
				"message": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientID is the remote IP; proxies are not trusted.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"storage":    s.store != nil,
		"ai":         s.assistant != nil,
		"thumbnails": s.thumbnails != nil,
		"sharing":    s.shares != nil,
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.WithError(err).Error("failed to encode JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// fail maps err to a status and a client-safe body. 5xx causes are logged.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
	}
	body := map[string]any{"error": publicMessage(err)}
	if details := validationDetails(err); len(details) > 0 {
		body["details"] = details
	}
	s.jsonResponse(w, status, body)
}

// renderContext bounds a render by the configured timeout.
func (s *Server) renderContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), s.cfg.RenderTimeout())
}
