// internal/server/server.go
// Package server exposes the pages over HTTP with gin: HTML pages, the update
// endpoints (stateless POST and websocket), figure and image endpoints,
// static assets and Prometheus metrics.
package server

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mwiater/biostat/internal/appconfig"
	"github.com/mwiater/biostat/internal/engine"
	"github.com/mwiater/biostat/internal/logging"
	"github.com/mwiater/biostat/internal/pages"
	"github.com/mwiater/biostat/internal/router"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

// Server serves one catalog.
type Server struct {
	cfg     appconfig.Config
	catalog *pages.Catalog
	router  *router.Router
	store   *engine.Store
	engine  *gin.Engine
}

// New builds the HTTP handler tree for catalog.
func New(cfg appconfig.Config, catalog *pages.Catalog) *Server {
	registerValidations()

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:     cfg,
		catalog: catalog,
		router:  router.New(catalog),
		store:   engine.NewStore(cfg.SessionTTL()),
	}

	r := gin.New()
	r.RedirectTrailingSlash = false
	r.Use(gin.Recovery())
	if cfg.Debug {
		r.Use(gin.LoggerWithWriter(logging.Writer()))
	}
	r.Use(countRequests())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	for _, path := range s.router.Paths() {
		r.GET(path, s.handlePage)
	}
	r.StaticFS("/assets", s.assets())

	r.POST("/_update", s.handleUpdate)
	if cfg.Websocket {
		r.GET("/_ws", s.handleWebsocket)
	}

	api := r.Group("/api")
	{
		api.GET("/pages", s.handlePages)
		api.GET("/figures/:page/:graph", s.handleFigure)
		api.GET("/figures/:page/:graph/:format", s.handleImage)
	}

	if cfg.Metrics {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, router.NotFound)
	})

	s.engine = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Sessions returns the websocket session store.
func (s *Server) Sessions() *engine.Store { return s.store }

func (s *Server) assets() http.FileSystem {
	if s.cfg.AssetsDir != "" {
		return http.Dir(s.cfg.AssetsDir)
	}
	sub, err := fs.Sub(embedded, "assets")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// Run serves until ctx is cancelled, then shuts down within the configured
// timeout. Idle sessions are swept while the server runs.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.LogEvent("biostat listening on http://%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		s.sweep(ctx)
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout())
		defer cancel()
		logging.LogEvent("biostat shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) sweep(ctx context.Context) {
	interval := max(s.cfg.SessionTTL()/4, time.Second)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.store.Sweep(); n > 0 {
				logging.LogEvent("expired %d idle sessions", n)
			}
		}
	}
}
