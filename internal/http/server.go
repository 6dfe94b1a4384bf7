// Package http serves the budget dashboard: login, record entry, the
// filtered table views, insight reports and CSV exports.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"budgetboard/internal/cache"
	"budgetboard/internal/core"
	applog "budgetboard/internal/log"
	"budgetboard/internal/middleware/ratelimit"
	"budgetboard/internal/middleware/security"
	"budgetboard/internal/middleware/trace"
	"budgetboard/internal/services"
	"budgetboard/internal/session"
	"budgetboard/internal/store"
	appweb "budgetboard/web"
)

const (
	snapshotKey       = "records"
	storeTimeout      = 7 * time.Second
	staticMaxAgeSecs  = 3600
	snapshotCacheSize = 4
)

// Config holds what the server needs beyond its collaborators.
type Config struct {
	Addr     string
	Projects []string
	CacheTTL time.Duration
	Logger   *applog.Logger
}

// Server wires handlers, middleware and the record snapshot cache
// around the embedded http.Server.
type Server struct {
	http.Server

	templates *template.Template
	store     store.RecordStore
	records   *services.RecordService
	sessions  *session.Manager
	projects  []string

	snapshot *cache.LRUCache[[]core.Record]
	limiter  *ratelimit.Limiter
	resolver *security.ClientIPResolver

	stopCleanup  context.CancelFunc
	shutdownOnce sync.Once
}

// NewServer configures routes, templates and middleware, returning a
// ready-to-run server.
func NewServer(cfg Config, recordStore store.RecordStore, recordService *services.RecordService, sessions *session.Manager) *Server {
	mux := http.NewServeMux()

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	s := &Server{
		store:    recordStore,
		records:  recordService,
		sessions: sessions,
		projects: cfg.Projects,
		snapshot: cache.NewLRUCache[[]core.Record](snapshotCacheSize, ttl),
		limiter:  ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		resolver: security.NewClientIPResolver(),
	}

	s.templates = template.Must(template.New("").Funcs(template.FuncMap{
		"money":  core.FormatCents,
		"pct":    formatPercent,
		"fmoney": formatFloatCents,
	}).ParseFS(appweb.TemplatesFS, "templates/*.html"))

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", security.StaticAssetMiddleware(staticMaxAgeSecs)(static))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /login", s.handleLoginPage)
	mux.HandleFunc("POST /login", s.limited(s.handleLogin))
	mux.HandleFunc("POST /logout", s.requireAuth(s.handleLogout))

	mux.HandleFunc("GET /{$}", s.requireAuth(s.handleIndex))
	mux.HandleFunc("GET /ui/records", s.requireAuth(s.handleRecordsPartial))
	mux.HandleFunc("GET /ui/overview", s.requireAuth(s.handleOverviewPartial))
	mux.HandleFunc("GET /ui/insights", s.requireAuth(s.handleInsightsPartial))

	mux.HandleFunc("POST /records", s.limited(s.requireAuth(s.handleCreateRecord)))
	mux.HandleFunc("POST /records/status", s.limited(s.requireAuth(s.handleRecordStatus)))
	mux.HandleFunc("POST /records/check", s.limited(s.requireAuth(s.handleCheckRecord)))
	mux.HandleFunc("POST /records/delete", s.limited(s.requireAuth(s.handleDeleteRecord)))

	mux.HandleFunc("GET /export/overview.csv", s.requireAuth(s.handleOverviewCSV))
	mux.HandleFunc("GET /export/records.csv", s.requireAuth(s.handleRecordsCSV))
	mux.HandleFunc("POST /export/sheets", s.limited(s.requireAuth(s.handleSheetsExport)))

	logger := cfg.Logger
	if logger == nil {
		logger = applog.New(applog.ComponentHTTP, applog.Config{})
	}
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.NewMiddleware(s.resolver.ExtractClientIP)
	s.Server = http.Server{
		Addr:    cfg.Addr,
		Handler: applog.Middleware(logger)(headers.Middleware(tracer.Middleware(mux))),
	}

	cleanupCtx, cancel := context.WithCancel(context.Background())
	s.stopCleanup = cancel
	go cache.RunCleanup(cleanupCtx, 10*time.Minute, s.snapshot)

	return s
}

// Shutdown stops background goroutines and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.stopCleanup()
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// requireAuth resolves the session or bounces to the login page.
func (s *Server) requireAuth(next func(http.ResponseWriter, *http.Request, *session.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.sessions.FromRequest(r)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r, sess)
	}
}

// limited applies per-IP rate limiting to mutating endpoints.
func (s *Server) limited(next http.HandlerFunc) http.HandlerFunc {
	mw := s.limiter.Middleware(s.resolver.ExtractClientIP, nil)
	limited := mw(next)
	return limited.ServeHTTP
}

// loadRecords returns the current record snapshot. A store failure
// degrades to an empty list so views keep rendering; ok reports whether
// the data is live.
func (s *Server) loadRecords(ctx context.Context) (records []core.Record, ok bool) {
	if cached, hit := s.snapshot.Get(snapshotKey); hit {
		return cached, true
	}

	cctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	records, err := s.store.FetchAll(cctx)
	if err != nil {
		slog.ErrorContext(ctx, "Record fetch failed, serving empty view", "error", err)
		return nil, false
	}
	s.snapshot.Set(snapshotKey, records)
	return records, true
}

// invalidateSnapshot drops cached records after any write.
func (s *Server) invalidateSnapshot() {
	s.snapshot.Purge()
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if _, err := s.store.FetchAll(ctx); err != nil {
		slog.WarnContext(r.Context(), "Readiness check failed", "error", err)
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed", "template", name, "error", err)
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}
