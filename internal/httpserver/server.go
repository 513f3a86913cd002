// Package httpserver exposes the widget dashboard and command pipeline over
// a local HTTP API for frontend clients.
package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/voxboard/voxboard/internal/command"
	"github.com/voxboard/voxboard/internal/widget"
)

// CommandRunner runs one typed or transcribed command through the pipeline.
type CommandRunner interface {
	Process(ctx context.Context, text string) command.Result
}

// Server serves the dashboard REST API on a local listener.
type Server struct {
	logger    *slog.Logger
	store     *widget.Store
	processor CommandRunner
	engine    *gin.Engine
	listen    string
}

// New wires routes onto a fresh gin engine. The listener is not opened until
// Run is called.
func New(logger *slog.Logger, listen string, store *widget.Store, processor CommandRunner) (*Server, error) {
	if store == nil {
		return nil, errors.New("widget store is required")
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		logger:    logger,
		store:     store,
		processor: processor,
		engine:    engine,
		listen:    listen,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.healthz)

	api := s.engine.Group("/api")
	api.GET("/widgets", s.listWidgets)
	api.POST("/widgets", s.createWidget)
	api.GET("/widgets/:id", s.getWidget)
	api.PATCH("/widgets/:id", s.updateWidget)
	api.DELETE("/widgets/:id", s.deleteWidget)
	api.POST("/widgets/:id/restore", s.restoreWidget)
	api.POST("/command", s.postCommand)
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.listen,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	if s.logger != nil {
		s.logger.Info("http api listening", "addr", s.listen)
	}

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
