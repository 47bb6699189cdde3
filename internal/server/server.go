// Package server wires configuration, middleware and pages into a running
// HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kfs-ai/faculty-web/internal/config"
	"github.com/kfs-ai/faculty-web/internal/content"
	"github.com/kfs-ai/faculty-web/internal/i18n"
	"github.com/kfs-ai/faculty-web/internal/metrics"
	"github.com/kfs-ai/faculty-web/internal/middleware"
	"github.com/kfs-ai/faculty-web/internal/pages"
	"github.com/kfs-ai/faculty-web/internal/routing"
	"github.com/kfs-ai/faculty-web/internal/state"
	"github.com/kfs-ai/faculty-web/internal/template"
)

// Server is the public site plus an optional private metrics listener.
type Server struct {
	cfg     *config.Config
	logger  *zap.Logger
	engine  *gin.Engine
	metrics *metrics.Metrics
}

// New builds the site for cfg.
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	switch {
	case cfg.App.IsProduction():
		gin.SetMode(gin.ReleaseMode)
	case cfg.App.IsDevelopment():
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.TestMode)
	}

	defaultLang, err := i18n.ParseLanguage(cfg.I18n.DefaultLanguage)
	if err != nil {
		return nil, err
	}
	catalog, err := i18n.LoadCatalog(defaultLang)
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}
	if missing := catalog.MissingKeys(); len(missing) > 0 {
		for lang, keys := range missing {
			logger.Warn("translation keys missing", zap.String("lang", lang.String()), zap.Strings("keys", keys))
		}
	}

	theme, err := state.ParseTheme(cfg.Theme.Default)
	if err != nil {
		return nil, err
	}

	reload := cfg.App.Debug || cfg.App.IsDevelopment()
	renderer, err := template.NewPongo2Renderer(cfg.Templates.Dir, reload, logger)
	if err != nil {
		return nil, err
	}

	table, err := routing.DefaultTable()
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	handlers := pages.New(renderer, content.NewMarkdown(), m, logger)

	engine, err := NewEngine(Deps{
		Catalog:  catalog,
		Handlers: handlers,
		Table:    table,
		Metrics:  m,
		Logger:   logger,
		Cookies: middleware.CookieOptions{
			ThemeName:    cfg.Theme.CookieName,
			LanguageName: cfg.I18n.CookieName,
			MaxAge:       cfg.Cookies.MaxAge,
			Secure:       cfg.Cookies.Secure,
		},
		DefaultTheme: theme,
	})
	if err != nil {
		return nil, err
	}

	return &Server{cfg: cfg, logger: logger, engine: engine, metrics: m}, nil
}

// Deps are the collaborators of the site's gin engine.
type Deps struct {
	Catalog      *i18n.Catalog
	Handlers     *pages.Handlers
	Table        *routing.Table
	Metrics      *metrics.Metrics
	Logger       *zap.Logger
	Cookies      middleware.CookieOptions
	DefaultTheme state.Theme
}

// NewEngine installs the middleware chain and mounts the route table. The
// theme provider wraps the language provider, and both wrap every page.
func NewEngine(d Deps) (*gin.Engine, error) {
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.AccessLog(d.Logger),
		middleware.Recovery(d.Logger, d.Handlers.ErrorPage),
		middleware.Metrics(d.Metrics),
		middleware.ThemeProvider(d.Cookies, d.DefaultTheme),
		middleware.NewLanguageProvider(d.Catalog, d.Cookies, d.Logger).Handle(),
		middleware.DocumentBinder(d.Logger),
	)

	registry := routing.NewHandlerRegistry()
	if err := d.Handlers.Register(registry); err != nil {
		return nil, err
	}
	if err := routing.Mount(engine, d.Table, registry); err != nil {
		return nil, err
	}
	return engine, nil
}

// Handler returns the public site handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Metrics returns the site's collectors.
func (s *Server) Metrics() *metrics.Metrics {
	return s.metrics
}

// Run listens on the configured address and serves until ctx ends.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.GetServerAddr())
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	var metricsLn net.Listener
	if s.cfg.Metrics.Enabled {
		metricsLn, err = net.Listen("tcp", s.cfg.Metrics.GetAddr())
		if err != nil {
			_ = ln.Close()
			return fmt.Errorf("listen metrics: %w", err)
		}
	}

	return s.Serve(ctx, ln, metricsLn)
}

// Serve serves the site on ln, and metrics on metricsLn when it is not nil,
// until ctx ends or a listener fails. Shutdown waits for in-flight
// requests up to server.shutdown_timeout.
func (s *Server) Serve(ctx context.Context, ln, metricsLn net.Listener) error {
	servers := []*http.Server{s.httpServer(s.engine)}
	listeners := []net.Listener{ln}

	if metricsLn != nil {
		mux := http.NewServeMux()
		mux.Handle(s.cfg.Metrics.Path, s.metrics.Handler())
		servers = append(servers, s.httpServer(mux))
		listeners = append(listeners, metricsLn)
	}

	errCh := make(chan error, len(servers))
	for i, srv := range servers {
		srv, l := srv, listeners[i]
		s.logger.Info("listening", zap.String("addr", l.Addr().String()))
		go func() {
			if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info("shutting down")
	case runErr = <-errCh:
		s.logger.Error("server failed", zap.Error(runErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil && runErr == nil {
			runErr = fmt.Errorf("shutdown: %w", err)
		}
	}
	return runErr
}

func (s *Server) httpServer(h http.Handler) *http.Server {
	return &http.Server{
		Handler:           h,
		ReadTimeout:       s.cfg.Server.ReadTimeout,
		ReadHeaderTimeout: readHeaderTimeout(s.cfg.Server.ReadTimeout),
		WriteTimeout:      s.cfg.Server.WriteTimeout,
		IdleTimeout:       2 * s.cfg.Server.ReadTimeout,
		ErrorLog:          zap.NewStdLog(s.logger),
	}
}

func readHeaderTimeout(read time.Duration) time.Duration {
	if read > 5*time.Second {
		return 5 * time.Second
	}
	return read
}
