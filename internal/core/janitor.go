package core

// janitor.go expires idle workspaces.
//
// Workspaces live only in memory, so the janitor is what bounds memory use
// for organizers who close the tab instead of finishing. It runs until its
// context is cancelled and never fails the application.

import (
	"context"
	"log/slog"
	"time"
)

// StartJanitor removes workspaces idle longer than the configured TTL, once
// immediately and then every interval. It blocks until ctx is cancelled.
func (s *Service) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultJanitorInterval
	}
	slog.Info("workspace janitor started",
		"interval", interval,
		"ttl", s.cfg.WorkspaceTTL,
	)

	s.expireIdle(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("workspace janitor stopped")
			return
		case <-ticker.C:
			s.expireIdle(ctx)
		}
	}
}

// expireIdle drops every workspace whose last update is older than the TTL
// and returns how many were dropped.
func (s *Service) expireIdle(ctx context.Context) int {
	cutoff := s.now().Add(-s.cfg.WorkspaceTTL)

	s.mu.Lock()
	expired := 0
	for id, ws := range s.workspaces {
		if ws.UpdatedAt.Before(cutoff) {
			delete(s.workspaces, id)
			expired++
		}
	}
	remaining := len(s.workspaces)
	s.mu.Unlock()

	if expired > 0 {
		slog.InfoContext(ctx, "expired idle workspaces",
			"expired", expired,
			"remaining", remaining,
		)
	}
	return expired
}
