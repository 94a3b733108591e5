package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/corporativo/sdu/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand(app Application) *cobra.Command {
	c := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		Short:   "Start the HTTP server with the web UI and REST API",
		Long: `Start the SDU server.

The server hosts the single-page web UI at / and the REST API under
/api/v1. Uploaded source files are cached on disk so later runs can
omit sources that have not changed. File cache mutation endpoints are
gated by the admin password.`,
		Example: `  # Start on default port 8080
  sdu serve

  # Start on a custom address
  sdu serve --host 0.0.0.0 --port 3000

  # Enable CORS for a frontend served elsewhere
  sdu serve --cors-origins "https://intranet.example.com"`,
		RunE: func(c *cobra.Command, args []string) error {
			return runServe(c, args, app)
		},
	}

	// Server configuration flags
	c.Flags().IntP("port", "p", 0, "Server port (default from config)")
	c.Flags().String("host", "", "Bind address (default from config)")
	c.Flags().String("prefix", "/api/v1", "API path prefix")

	// CORS flags
	c.Flags().Bool("cors", false, "Enable CORS for all origins")
	c.Flags().StringSlice("cors-origins", []string{}, "Allowed CORS origins (comma-separated)")

	// Timeout flags
	c.Flags().Duration("read-timeout", 30*time.Second, "HTTP read timeout")
	c.Flags().Duration("write-timeout", 60*time.Second, "HTTP write timeout")
	c.Flags().Duration("idle-timeout", 120*time.Second, "HTTP idle timeout")

	return c
}

// runServe starts the HTTP server.
func runServe(c *cobra.Command, _ []string, app Application) error {
	cfg := parseServeConfig(c, app)
	logger := app.Logger()

	st, err := app.Store()
	if err != nil {
		return fmt.Errorf("opening file store: %w", err)
	}

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("prefix", cfg.PathPrefix).
		Bool("cors", cfg.CORSEnabled).
		Bool("admin_gate", cfg.AdminPassword != "").
		Msg("Starting server")

	srv := server.New(st, logger, cfg)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Pass c.Context() which has signal handling from main.go
	return startWithGracefulShutdown(c.Context(), httpServer, logger)
}

// parseServeConfig merges app defaults with command flags.
func parseServeConfig(c *cobra.Command, app Application) server.Config {
	cfg := app.ServerConfig()

	if port := mustGetInt(c, "port"); port != 0 {
		cfg.Port = port
	}
	if host := mustGetString(c, "host"); host != "" {
		cfg.Host = host
	}
	cfg.PathPrefix = mustGetString(c, "prefix")
	cfg.CORSEnabled = mustGetBool(c, "cors")
	if origins, err := c.Flags().GetStringSlice("cors-origins"); err == nil && len(origins) > 0 {
		cfg.CORSEnabled = true
		cfg.CORSOrigins = origins
	}
	cfg.ReadTimeout = mustGetDuration(c, "read-timeout")
	cfg.WriteTimeout = mustGetDuration(c, "write-timeout")
	cfg.IdleTimeout = mustGetDuration(c, "idle-timeout")

	return cfg
}

// startWithGracefulShutdown starts the HTTP server and shuts it down when
// the context is cancelled (SIGINT/SIGTERM from main.go).
func startWithGracefulShutdown(ctx context.Context, httpServer *http.Server, logger *zerolog.Logger) error {
	serverErr := make(chan error, 1)

	go func() {
		logger.Info().
			Str("addr", httpServer.Addr).
			Msg("HTTP server listening")

		fmt.Printf("🚀 SDU server listening on %s\n", httpServer.Addr)
		fmt.Println("   Press Ctrl+C to stop")

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logger.Info().Msg("Shutdown signal received")

		fmt.Println("\n🛑 Shutting down server...")

		// Fresh shutdown context with timeout; the parent is already cancelled
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("Server stopped gracefully")
		fmt.Println("✅ Server stopped gracefully")
		return nil
	}
}
