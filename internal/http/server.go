package http

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"budget/internal/cache"
	"budget/internal/ledger"
	applog "budget/internal/log"
	"budget/internal/middleware/ratelimit"
	"budget/internal/middleware/security"
	"budget/internal/middleware/trace"
	appweb "budget/web"
)

// Config holds the HTTP server settings.
type Config struct {
	Addr               string
	RateLimitPerMinute int
	SummaryCacheSize   int
	SummaryCacheTTL    time.Duration
}

// Server serves the dashboard, its HTMX partials and the JSON API over a
// single transaction store.
type Server struct {
	http.Server

	templates *template.Template
	store     *ledger.Store
	summaries *cache.SummaryCache
	caches    *cache.Manager
	limiter   *ratelimit.Limiter
	detector  *security.Detector
	tracer    *trace.Middleware
	logger    *applog.Logger
	started   time.Time
	now       func() time.Time
}

// NewServer configures routes, middleware and templates.
func NewServer(cfg Config, store *ledger.Store, logger *applog.Logger) (*Server, error) {
	if store == nil {
		return nil, errors.New("http: nil store")
	}
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	if cfg.SummaryCacheSize <= 0 {
		cfg.SummaryCacheSize = 32
	}
	if cfg.SummaryCacheTTL <= 0 {
		cfg.SummaryCacheTTL = 5 * time.Minute
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		templates: t,
		store:     store,
		summaries: cache.NewSummaryCache(cfg.SummaryCacheSize, cfg.SummaryCacheTTL),
		limiter:   ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: cfg.RateLimitPerMinute}),
		detector:  security.NewDetector(),
		logger:    logger.WithComponent(applog.ComponentHTTP),
		started:   time.Now(),
		now:       time.Now,
	}
	s.caches = cache.NewManager(logger, s.summaries)
	s.tracer = trace.NewMiddleware(logger, s.detector.ExtractClientIP)

	mux := http.NewServeMux()
	if err := s.routes(mux); err != nil {
		return nil, err
	}

	s.Server = http.Server{
		Addr:              cfg.Addr,
		Handler:           s.middleware(mux),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

func (s *Server) routes(mux *http.ServeMux) error {
	sub, err := fs.Sub(appweb.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("mount static assets: %w", err)
	}
	mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(
		http.StripPrefix("/static/", http.FileServer(http.FS(sub)))))

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	// HTMX partials
	mux.HandleFunc("GET /ui/summary", s.handleSummaryPartial)
	mux.HandleFunc("GET /ui/transactions", s.handleTransactionsPartial)
	mux.HandleFunc("GET /ui/transactions/new", s.handleNewForm)
	mux.HandleFunc("GET /ui/transactions/{id}/edit", s.handleEditForm)

	// Form actions
	mux.HandleFunc("POST /transactions", s.handleCreateTransaction)
	mux.HandleFunc("POST /transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /transactions/{id}", s.handleDeleteTransaction)
	mux.HandleFunc("POST /transactions/{id}/delete", s.handleDeleteTransaction)

	// JSON API
	mux.HandleFunc("GET /api/transactions", s.handleAPIList)
	mux.HandleFunc("POST /api/transactions", s.handleAPICreate)
	mux.HandleFunc("PUT /api/transactions/{id}", s.handleAPIUpdate)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleAPIDelete)
	mux.HandleFunc("GET /api/summary", s.handleAPISummary)
	return nil
}

// middleware wraps the mux, outermost first: tracing, request logger,
// security headers, suspicious request detection, rate limiting of writes.
func (s *Server) middleware(next http.Handler) http.Handler {
	h := s.limiter.Middleware(s.detector.ExtractClientIP, s.onRateLimit,
		http.MethodPost, http.MethodPut, http.MethodDelete)(next)
	h = s.detector.Middleware(h)
	h = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(h)
	h = applog.Middleware(s.logger, trace.RequestID)(h)
	return s.tracer.Middleware(h)
}

func (s *Server) onRateLimit(w http.ResponseWriter, r *http.Request) {
	s.logger.WarnContext(r.Context(), "Rate limit exceeded",
		applog.FieldClientIP, s.detector.ExtractClientIP(r),
		applog.FieldMethod, r.Method,
		applog.FieldPath, r.URL.Path)
	if isAPI(r) {
		writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}
	TooManyRequestsError("Too many requests. Please try again later.").Write(w)
}

// RunMaintenance evicts idle rate limit clients and expired cache entries
// until ctx is cancelled.
func (s *Server) RunMaintenance(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.limiter.Run(ctx) })
	g.Go(func() error { return s.caches.Run(ctx, time.Minute) })
	return g.Wait()
}

// Run serves until ctx is cancelled, then shuts down within
// timeout.
func (s *Server) Run(ctx context.Context, timeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", s.Addr)
		errCh <- s.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	s.logger.Info("Shutting down HTTP server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}
