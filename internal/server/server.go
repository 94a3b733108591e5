// Package server provides the HTTP server for the SDU API.
package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/corporativo/sdu/internal/fetch"
	"github.com/corporativo/sdu/internal/server/session"
	"github.com/corporativo/sdu/internal/store"
	"github.com/corporativo/sdu/pkg/reconcile"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	store      *store.Store
	fetcher    *fetch.Client
	sessions   *session.Store
	reconciler *reconcile.Reconciler
	logger     *zerolog.Logger
	config     Config
	startTime  time.Time
}

// New creates a new server instance with the given configuration.
func New(st *store.Store, logger *zerolog.Logger, cfg Config) *Server {
	return &Server{
		store:      st,
		fetcher:    fetch.New(fetch.WithLogger(logger)),
		sessions:   session.New(),
		reconciler: reconcile.New(reconcile.WithLogger(logger)),
		logger:     logger,
		config:     cfg,
		startTime:  time.Now(),
	}
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
