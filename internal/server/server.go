// Package server wires the dashboard's HTTP surface: the JSON admin API, the
// page guard in front of the embedded dashboard shell, and health probes.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/waitdesk/waitdesk/internal/connector"
	"github.com/waitdesk/waitdesk/internal/handler"
	"github.com/waitdesk/waitdesk/internal/server/middleware"
	"github.com/waitdesk/waitdesk/internal/service"
	"github.com/waitdesk/waitdesk/internal/store"
	"github.com/waitdesk/waitdesk/internal/ui"
)

// Config holds the HTTP server configuration.
type Config struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
	// CORSOrigins enables CORS for the listed origins. Empty means
	// same-origin only.
	CORSOrigins []string
	EnableUI    bool
	// LoginRateLimit and ExportRateLimit are requests per minute; zero
	// disables the limit.
	LoginRateLimit  int
	ExportRateLimit int
	// Production hides error details from 500 responses.
	Production bool
	// Location is the time zone of bare filter dates.
	Location *time.Location
	Version  string
}

// DefaultConfig returns a Config with sensible production defaults.
func DefaultConfig() Config {
	return Config{
		Host:            "0.0.0.0",
		Port:            8080,
		ShutdownTimeout: 30 * time.Second,
		EnableUI:        true,
		LoginRateLimit:  10,
		ExportRateLimit: 30,
		Production:      true,
		Location:        time.UTC,
		Version:         "dev",
	}
}

// Server is the top-level HTTP server. It owns the Chi router and serves the
// record store through the admin API.
type Server struct {
	cfg        Config
	router     chi.Router
	store      *store.Store
	registry   *connector.Registry
	sessions   *service.SessionManager
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a new Server, wires up all routes and middleware, and returns
// it ready to listen. Call ListenAndServe to start accepting connections.
// registry supplies the readiness checks.
func New(cfg Config, st *store.Store, registry *connector.Registry, sessions *service.SessionManager, logger *slog.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		store:    st,
		registry: registry,
		sessions: sessions,
		logger:   logger,
	}
	s.setupRouter()
	return s
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// --- Global middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(s.logger, "/healthz", "/readyz"))
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	if len(s.cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	r.Use(chimw.Compress(5))
	r.Use(middleware.Guard(s.sessions))

	// --- Health checks (no auth required) ---
	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)

	// --- OpenAPI document (no auth required) ---
	r.Get("/openapi.json", handler.NewOpenAPIHandler(s.cfg.Version, s.sessions.CookieName()).Serve)

	// --- API routes ---
	opts := handler.Options{Logger: s.logger, Production: s.cfg.Production}
	admins := handler.NewAdminHandler(s.store, s.sessions, opts)
	waitlist := handler.NewWaitlistHandler(service.NewWaitlistService(s.store), s.cfg.Location, opts)

	r.Route("/api", func(r chi.Router) {
		// Login and logout are public; me and account check the session
		// themselves.
		r.With(rateLimit(s.cfg.LoginRateLimit, middleware.RateLimit)).Post("/auth/login", admins.Login)
		r.Post("/auth/logout", admins.Logout)
		r.Get("/auth/me", admins.Me)
		r.Patch("/account", admins.UpdateAccount)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(s.sessions))

			r.Get("/access", admins.ListAdmins)
			r.Post("/access", admins.CreateAdmin)
			r.Delete("/access/{id}", admins.DeleteAdmin)

			r.Get("/dashboard/waitlist", waitlist.List)
			r.Get("/dashboard/waitlist/{id}", waitlist.Get)
			r.With(rateLimit(s.cfg.ExportRateLimit, func(n int) func(http.Handler) http.Handler {
				return middleware.RateLimitBySession(s.sessions, n)
			})).Post("/dashboard/export", waitlist.Export)
		})
	})

	// --- Embedded dashboard shell ---
	if s.cfg.EnableUI {
		s.mountUI(r)
	}

	s.router = r
}

// rateLimit returns limiter(n), or a pass-through when n is not positive.
func rateLimit(n int, limiter func(int) func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	if n <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return limiter(n)
}

// mountUI serves the embedded dashboard. Every page route returns the same
// shell; the guard has already decided whether the visitor may see it.
func (s *Server) mountUI(r chi.Router) {
	distFS, err := fs.Sub(ui.Dist, "dist")
	if err != nil {
		s.logger.Error("failed to create sub filesystem for UI", "error", err)
		return
	}
	fileServer := http.FileServer(http.FS(distFS))
	r.Handle("/assets/*", fileServer)
	r.Get("/favicon.svg", fileServer.ServeHTTP)

	shell := func(w http.ResponseWriter, r *http.Request) {
		f, err := distFS.Open("index.html")
		if err != nil {
			http.Error(w, "UI not available", http.StatusNotFound)
			return
		}
		defer f.Close()
		stat, _ := f.Stat()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		http.ServeContent(w, r, "index.html", stat.ModTime(), f.(io.ReadSeeker))
	}
	for _, page := range ui.Pages {
		r.Get(page, shell)
	}
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, middleware.HomePath, http.StatusTemporaryRedirect)
	})
}

// handleHealthz is a liveness probe. Returns 200 if the process is running.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// handleReadyz is a readiness probe. Returns 200 when every database
// connection answers a ping, or 503 if any is unhealthy.
func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	httpStatus := http.StatusOK
	checks := make(map[string]string)

	for _, name := range s.registry.Names() {
		conn, err := s.registry.Get(name)
		if err != nil {
			checks[name] = "error: " + err.Error()
			status = "degraded"
			continue
		}
		if err := conn.Ping(r.Context()); err != nil {
			checks[name] = "error: " + err.Error()
			status = "degraded"
		} else {
			checks[name] = "ok"
		}
	}

	if status != "ok" {
		httpStatus = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": status,
		"checks": checks,
	})
}

// ListenAndServe starts the HTTP server and blocks until ctx is cancelled,
// or a SIGINT or SIGTERM is received. It then performs a graceful shutdown,
// draining in-flight requests. Closing the store is left to the caller.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server listen: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Router returns the underlying Chi router, useful for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ServeHTTP implements http.Handler, delegating to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
