package core

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestService_ExpireIdle(t *testing.T) {
	s, now := newTestService(t, ServiceConfig{WorkspaceTTL: time.Hour})
	ctx := context.Background()

	old, err := s.Analyze(ctx, sampleRoster)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	*now = now.Add(45 * time.Minute)
	fresh, err := s.Analyze(ctx, sampleRoster)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	*now = now.Add(30 * time.Minute)
	if got := s.expireIdle(ctx); got != 1 {
		t.Errorf("expireIdle() = %d, want 1", got)
	}
	if _, err := s.Get(ctx, old.ID); !errors.Is(err, ErrWorkspaceNotFound) {
		t.Errorf("old workspace still present: %v", err)
	}
	if _, err := s.Get(ctx, fresh.ID); err != nil {
		t.Errorf("fresh workspace expired: %v", err)
	}
}

func TestService_EditKeepsWorkspaceAlive(t *testing.T) {
	s, now := newTestService(t, ServiceConfig{WorkspaceTTL: time.Hour})
	ctx := context.Background()

	ws, err := s.Analyze(ctx, sampleRoster)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	*now = now.Add(50 * time.Minute)
	if _, err := s.UpdateParticipant(ctx, ws.ID, 0, FieldRegion, "경기 화성"); err != nil {
		t.Fatalf("UpdateParticipant() error = %v", err)
	}

	*now = now.Add(50 * time.Minute)
	if got := s.expireIdle(ctx); got != 0 {
		t.Errorf("expireIdle() = %d, want 0", got)
	}
}

func TestService_StartJanitorStops(t *testing.T) {
	s, _ := newTestService(t, ServiceConfig{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.StartJanitor(ctx, 10*time.Millisecond)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("StartJanitor did not return after cancel")
	}
}
