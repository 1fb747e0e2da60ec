// Package server hosts lessons over HTTP: a small REST surface for the
// lesson document and learner records, and a websocket that plays a
// session and streams its view.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spacey-learn/spacey/internal/catalog"
	lsn "github.com/spacey-learn/spacey/internal/lesson"
	"github.com/spacey-learn/spacey/internal/logger"
	"github.com/spacey-learn/spacey/internal/store"
)

const shutdownTimeout = 5 * time.Second

// Store is the persistence the server needs.
type Store interface {
	lsn.Persistence
	lsn.EventLog
	EnsureUser(ctx context.Context, id string) (store.User, error)
}

// Options configures a Server.
type Options struct {
	Catalog *catalog.Catalog
	Store   Store
	Config  lsn.Config
	Logger  *logger.Logger
}

// Server serves one lesson catalog.
type Server struct {
	opts   Options
	log    *logger.Logger
	engine *gin.Engine
}

// New builds a Server and its routes.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	if opts.Config == (lsn.Config{}) {
		opts.Config = lsn.DefaultConfig()
	}

	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		opts:   opts,
		log:    opts.Logger.With("component", "server"),
		engine: gin.New(),
	}
	s.engine.Use(gin.Recovery(), s.accessLog())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.engine.Group("/api")
	{
		api.GET("/lesson", s.getLesson)

		users := api.Group("/users/:id")
		{
			users.GET("/progress", s.getProgress)
			users.GET("/badges", s.getBadges)
		}
	}

	s.engine.GET("/ws/lesson", s.lessonSocket)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("server stopped")
	return nil
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
