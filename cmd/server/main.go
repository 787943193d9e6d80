package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/teamweaver/internal/config"
	"github.com/JonMunkholm/teamweaver/internal/core"
	"github.com/JonMunkholm/teamweaver/internal/logging"
	"github.com/JonMunkholm/teamweaver/internal/suggest"
	"github.com/JonMunkholm/teamweaver/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"suggest_enabled", cfg.Suggest.Enabled(),
		"suggest_max_concurrent", cfg.Suggest.MaxConcurrent,
		"session_ttl", cfg.Session.TTL,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	ctx := context.Background()

	suggestions, err := newSuggestService(ctx, cfg)
	if err != nil {
		slog.Error("failed to create suggestion backend", "error", err)
		os.Exit(1)
	}

	service := core.NewService(core.ServiceConfig{
		WorkspaceTTL:    cfg.Session.TTL,
		MaxWorkspaces:   cfg.Session.MaxWorkspaces,
		MaxParticipants: cfg.Roster.MaxParticipants,
	})

	server := web.NewServer(service, suggestions, cfg)

	// Create cancellable context for background jobs
	jobCtx, cancelJobs := context.WithCancel(ctx)
	go service.StartJanitor(jobCtx, cfg.Session.CleanupInterval)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		// Stop background jobs
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Wait for in-flight suggestions to complete (with timeout)
		limiter := suggestions.Limiter()
		if active := limiter.ActiveCount(); active > 0 {
			slog.Info("waiting for suggestions to complete", "active", active)
			if err := limiter.WaitForDrain(shutdownCtx); err != nil {
				slog.Warn("suggestions did not complete in time", "error", err)
			} else {
				slog.Info("all suggestions completed")
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// newSuggestService wires the Gemini backend when an API key is configured,
// and the disabled backend otherwise.
func newSuggestService(ctx context.Context, cfg *config.Config) (*suggest.Service, error) {
	limiter := suggest.NewLimiter(cfg.Suggest.MaxConcurrent, cfg.Suggest.MaxWaitTime)

	if !cfg.Suggest.Enabled() {
		slog.Warn("GEMINI_API_KEY not set, AI suggestions disabled")
		return suggest.NewService(suggest.Disabled{}, limiter, cfg.Suggest.Timeout), nil
	}

	backend, err := suggest.NewGemini(ctx, suggest.GeminiConfig{
		APIKey:      cfg.Suggest.APIKey,
		Model:       cfg.Suggest.Model,
		MaxAttempts: cfg.Suggest.MaxAttempts,
	})
	if err != nil {
		return nil, err
	}
	slog.Info("AI suggestions enabled", "backend", backend.Name(), "model", cfg.Suggest.Model)
	return suggest.NewService(backend, limiter, cfg.Suggest.Timeout), nil
}
