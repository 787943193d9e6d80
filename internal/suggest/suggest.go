// Package suggest asks a language model for a team name and icebreaker
// questions for one group.
//
// Suggestions are a nice-to-have on top of the grouping, so failures never
// reach the caller as errors: [Service.Suggest] logs them and returns
// [Fallback].
package suggest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/JonMunkholm/teamweaver/internal/core"
)

// ErrDisabled is returned by the Disabled backend.
var ErrDisabled = errors.New("suggestions are not configured")

// ErrEmptyReply is returned when the model answered without a usable suggestion.
var ErrEmptyReply = errors.New("empty suggestion reply")

// DefaultTimeout bounds one suggestion including retries.
const DefaultTimeout = 30 * time.Second

// Member is the part of a participant the model sees.
type Member struct {
	Name   string `json:"name"`
	School string `json:"school"`
	Level  string `json:"level"`
}

// Suggestion is a team name with icebreaker questions, in Korean.
type Suggestion struct {
	TeamName    string   `json:"teamName"`
	Icebreakers []string `json:"icebreakers"`
}

// Fallback is returned whenever a suggestion could not be produced.
func Fallback() Suggestion {
	return Suggestion{
		TeamName:    "오류",
		Icebreakers: []string{"AI 추천을 가져오는 데 실패했습니다."},
	}
}

// IsFallback reports whether s is the failure placeholder.
func (s Suggestion) IsFallback() bool {
	fb := Fallback()
	return s.TeamName == fb.TeamName && len(s.Icebreakers) == 1 && s.Icebreakers[0] == fb.Icebreakers[0]
}

// Suggester produces a suggestion for one group.
type Suggester interface {
	Suggest(ctx context.Context, members []Member) (Suggestion, error)
}

// Disabled is the backend used when no API key is configured.
type Disabled struct{}

// Suggest always fails with ErrDisabled.
func (Disabled) Suggest(context.Context, []Member) (Suggestion, error) {
	return Suggestion{}, ErrDisabled
}

// MembersFrom converts a group of participants.
func MembersFrom(group []core.Participant) []Member {
	members := make([]Member, len(group))
	for i, p := range group {
		members[i] = Member{Name: p.Name, School: p.School, Level: string(p.Level)}
	}
	return members
}

// Service fronts a Suggester with a concurrency limit, a timeout and the
// fallback reply.
type Service struct {
	backend Suggester
	limiter *Limiter
	timeout time.Duration
}

// NewService creates a suggestion service. A nil backend means Disabled and a
// nil limiter means DefaultMaxConcurrent slots.
func NewService(backend Suggester, limiter *Limiter, timeout time.Duration) *Service {
	if backend == nil {
		backend = Disabled{}
	}
	if limiter == nil {
		limiter = NewLimiter(0, 0)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{backend: backend, limiter: limiter, timeout: timeout}
}

// Enabled reports whether a real backend is configured.
func (s *Service) Enabled() bool {
	_, disabled := s.backend.(Disabled)
	return !disabled
}

// Limiter returns the service's limiter, for shutdown draining and status.
func (s *Service) Limiter() *Limiter {
	return s.limiter
}

// Suggest returns a suggestion for members, or Fallback on any failure.
func (s *Service) Suggest(ctx context.Context, members []Member) Suggestion {
	out, err := s.suggest(ctx, members)
	if err != nil {
		level := slog.LevelError
		if errors.Is(err, ErrDisabled) {
			level = slog.LevelDebug
		}
		slog.Log(ctx, level, "suggestion failed", "error", err, "members", len(members))
		return Fallback()
	}
	return out
}

func (s *Service) suggest(ctx context.Context, members []Member) (Suggestion, error) {
	if !s.Enabled() {
		return Suggestion{}, ErrDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.limiter.Acquire(ctx); err != nil {
		return Suggestion{}, fmt.Errorf("acquire suggestion slot: %w", err)
	}
	defer s.limiter.Release()

	start := time.Now()
	out, err := s.backend.Suggest(ctx, members)
	if err != nil {
		return Suggestion{}, err
	}

	out, err = clean(out)
	if err != nil {
		return Suggestion{}, err
	}

	slog.InfoContext(ctx, "suggestion generated",
		"members", len(members),
		"icebreakers", len(out.Icebreakers),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

// clean trims the reply and drops blank questions.
func clean(s Suggestion) (Suggestion, error) {
	s.TeamName = strings.TrimSpace(s.TeamName)
	questions := make([]string, 0, len(s.Icebreakers))
	for _, q := range s.Icebreakers {
		if q = strings.TrimSpace(q); q != "" {
			questions = append(questions, q)
		}
	}
	s.Icebreakers = questions

	if s.TeamName == "" || len(s.Icebreakers) == 0 {
		return Suggestion{}, ErrEmptyReply
	}
	return s, nil
}
