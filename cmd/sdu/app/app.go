// Package app provides the application context and dependency management
// for the sdu CLI. It centralizes configuration, logging, and the shared
// file store behind lazy initialization.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/corporativo/sdu/internal/fetch"
	"github.com/corporativo/sdu/internal/server"
	"github.com/corporativo/sdu/internal/store"
	"github.com/corporativo/sdu/pkg/errors"
)

// App represents the sdu application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// File store (lazy-initialized, singleton)
	mu    sync.Mutex
	store *store.Store
}

// New creates a new App instance with the given version information.
func New(version, commit, date string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapIO("load", "config", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version string.
func (a *App) Version() string { return a.version }

// Commit returns the git commit hash.
func (a *App) Commit() string { return a.commit }

// Date returns the build date.
func (a *App) Date() string { return a.date }

// Config returns the application configuration.
func (a *App) Config() *Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// Store returns the file store, creating it lazily if needed.
func (a *App) Store() (*store.Store, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.store != nil {
		return a.store, nil
	}
	st, err := store.New(a.config.CacheDir, store.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	a.store = st
	return st, nil
}

// Fetcher returns a share-link download client.
func (a *App) Fetcher() *fetch.Client {
	return fetch.New(fetch.WithLogger(a.logger))
}

// ServerConfig builds the HTTP server configuration from app settings.
func (a *App) ServerConfig() server.Config {
	cfg := server.DefaultConfig()
	cfg.Host = a.config.Host
	cfg.Port = a.config.Port
	cfg.AdminPassword = a.config.AdminPassword
	return cfg
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}
