package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrWorkspaceNotFound is returned for unknown or expired workspace ids.
	ErrWorkspaceNotFound = errors.New("workspace not found")

	// ErrTooManyWorkspaces is returned when the service is at capacity.
	ErrTooManyWorkspaces = errors.New("too many workspaces")

	// ErrTooManyParticipants is returned when a roster grows past the row limit.
	ErrTooManyParticipants = errors.New("too many participants")

	// ErrParticipantNotFound is returned for an out-of-range participant row.
	ErrParticipantNotFound = errors.New("participant not found")

	// ErrUnknownField is returned when editing a field that does not exist.
	ErrUnknownField = errors.New("unknown participant field")

	// ErrNotGrouped is returned by group operations before groups were generated.
	ErrNotGrouped = errors.New("workspace has no grouping yet")
)

// Default service limits, used when ServiceConfig leaves them zero.
const (
	DefaultWorkspaceTTL    = 12 * time.Hour
	DefaultMaxWorkspaces   = 1000
	DefaultMaxParticipants = 2000
	DefaultJanitorInterval = 10 * time.Minute
	DefaultTargetSize      = 4
)

// ServiceConfig holds limits for the workspace service.
type ServiceConfig struct {
	WorkspaceTTL    time.Duration // Idle time before a workspace is dropped
	MaxWorkspaces   int           // Concurrent workspaces kept in memory
	MaxParticipants int           // Participants accepted per roster
}

// Workspace is one organizer's roster moving through review and grouping.
// Workspaces returned by Service are copies; mutate through Service methods.
type Workspace struct {
	ID           string        `json:"id"`
	Participants []Participant `json:"participants"`
	Groups       Grouping      `json:"groups,omitempty"`
	TargetSize   int           `json:"targetSize,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// Grouped reports whether groups have been generated.
func (w *Workspace) Grouped() bool {
	return w.Groups != nil
}

func (w *Workspace) clone() *Workspace {
	cp := *w
	cp.Participants = slices.Clone(w.Participants)
	cp.Groups = w.Groups.Clone()
	return &cp
}

// Service owns the mutable workspaces of the interactive tool and serializes
// every edit against them. The parser and partitioner it calls are pure.
type Service struct {
	cfg ServiceConfig
	now func() time.Time

	mu         sync.RWMutex
	workspaces map[string]*Workspace
}

// NewService creates a workspace service.
func NewService(cfg ServiceConfig) *Service {
	if cfg.WorkspaceTTL <= 0 {
		cfg.WorkspaceTTL = DefaultWorkspaceTTL
	}
	if cfg.MaxWorkspaces <= 0 {
		cfg.MaxWorkspaces = DefaultMaxWorkspaces
	}
	if cfg.MaxParticipants <= 0 {
		cfg.MaxParticipants = DefaultMaxParticipants
	}
	return &Service{
		cfg:        cfg,
		now:        time.Now,
		workspaces: make(map[string]*Workspace),
	}
}

// Analyze parses a roster text into a new workspace in the review stage.
func (s *Service) Analyze(ctx context.Context, text string) (*Workspace, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyRoster
	}

	participants := ParseRoster(text)
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}
	if len(participants) > s.cfg.MaxParticipants {
		participants = participants[:s.cfg.MaxParticipants]
		slog.WarnContext(ctx, "roster truncated", "limit", s.cfg.MaxParticipants)
	}

	now := s.now()
	ws := &Workspace{
		ID:           uuid.New().String(),
		Participants: participants,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.workspaces) >= s.cfg.MaxWorkspaces {
		return nil, fmt.Errorf("%w: limit is %d", ErrTooManyWorkspaces, s.cfg.MaxWorkspaces)
	}
	s.workspaces[ws.ID] = ws

	slog.InfoContext(ctx, "roster analyzed",
		"workspace_id", ws.ID,
		"participants", len(participants),
	)
	return ws.clone(), nil
}

// Get returns a copy of a workspace.
func (s *Service) Get(_ context.Context, id string) (*Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ws, ok := s.workspaces[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWorkspaceNotFound, id)
	}
	return ws.clone(), nil
}

// Delete drops a workspace.
func (s *Service) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.workspaces[id]; !ok {
		return fmt.Errorf("%w: %s", ErrWorkspaceNotFound, id)
	}
	delete(s.workspaces, id)
	return nil
}

// Count returns the number of live workspaces.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.workspaces)
}

// update runs fn against a workspace under the write lock and returns a copy
// of the result.
func (s *Service) update(id string, fn func(ws *Workspace) error) (*Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws, ok := s.workspaces[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWorkspaceNotFound, id)
	}
	if err := fn(ws); err != nil {
		return nil, err
	}
	ws.UpdatedAt = s.now()
	return ws.clone(), nil
}

// Participant field names accepted by UpdateParticipant.
const (
	FieldGroupID = "groupId"
	FieldID      = "id"
	FieldName    = "name"
	FieldGender  = "gender"
	FieldSchool  = "school"
	FieldLevel   = "level"
	FieldRegion  = "region"
)

// EditableFields lists participant fields in review-table order.
var EditableFields = []string{FieldGroupID, FieldID, FieldName, FieldGender, FieldSchool, FieldLevel, FieldRegion}

func setField(p *Participant, field, value string) error {
	value = strings.TrimSpace(value)
	switch field {
	case FieldGroupID:
		p.GroupID = value
	case FieldID:
		p.ID = value
	case FieldName:
		p.Name = value
	case FieldGender:
		p.Gender = value
	case FieldSchool:
		p.School = value
	case FieldLevel:
		p.Level = Level(value)
	case FieldRegion:
		p.Region = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// UpdateParticipant edits one field of the participant at index. Edits do
// not touch an existing grouping; regenerate to apply them.
func (s *Service) UpdateParticipant(ctx context.Context, id string, index int, field, value string) (*Workspace, error) {
	return s.update(id, func(ws *Workspace) error {
		if index < 0 || index >= len(ws.Participants) {
			return fmt.Errorf("%w: row %d", ErrParticipantNotFound, index)
		}
		if err := setField(&ws.Participants[index], field, value); err != nil {
			return err
		}
		slog.DebugContext(ctx, "participant updated", "workspace_id", id, "row", index, "field", field)
		return nil
	})
}

// AddParticipant appends a blank row whose id is the new row count.
func (s *Service) AddParticipant(ctx context.Context, id string) (*Workspace, error) {
	return s.update(id, func(ws *Workspace) error {
		if len(ws.Participants) >= s.cfg.MaxParticipants {
			return fmt.Errorf("%w: limit is %d", ErrTooManyParticipants, s.cfg.MaxParticipants)
		}
		ws.Participants = append(ws.Participants, Participant{ID: strconv.Itoa(len(ws.Participants) + 1)})
		return nil
	})
}

// DeleteParticipant removes the row at index.
func (s *Service) DeleteParticipant(ctx context.Context, id string, index int) (*Workspace, error) {
	return s.update(id, func(ws *Workspace) error {
		if index < 0 || index >= len(ws.Participants) {
			return fmt.Errorf("%w: row %d", ErrParticipantNotFound, index)
		}
		ws.Participants = slices.Delete(ws.Participants, index, index+1)
		return nil
	})
}

// GenerateGroups builds a fresh grouping from the current participants,
// replacing any previous one.
func (s *Service) GenerateGroups(ctx context.Context, id string, targetSize int) (*Workspace, error) {
	return s.update(id, func(ws *Workspace) error {
		g, err := BuildGrouping(ws.Participants, targetSize)
		if err != nil {
			return err
		}
		ws.Groups = g
		ws.TargetSize = targetSize
		slog.InfoContext(ctx, "groups generated",
			"workspace_id", id,
			"participants", g.Count(),
			"groups", len(g.Numbered()),
			"target_size", targetSize,
		)
		return nil
	})
}

// MoveMember moves a member between groups.
func (s *Service) MoveMember(ctx context.Context, id, memberID string, from, to GroupRef) (*Workspace, error) {
	return s.update(id, func(ws *Workspace) error {
		if !ws.Grouped() {
			return ErrNotGrouped
		}
		return ws.Groups.Move(memberID, from, to)
	})
}

// AddGroup appends an empty group to a level.
func (s *Service) AddGroup(ctx context.Context, id string, level Level) (*Workspace, error) {
	return s.update(id, func(ws *Workspace) error {
		if !ws.Grouped() {
			return ErrNotGrouped
		}
		ws.Groups.AddGroup(level)
		return nil
	})
}

// DeleteGroup removes an empty group.
func (s *Service) DeleteGroup(ctx context.Context, id string, ref GroupRef) (*Workspace, error) {
	return s.update(id, func(ws *Workspace) error {
		if !ws.Grouped() {
			return ErrNotGrouped
		}
		return ws.Groups.DeleteGroup(ref)
	})
}

// Group returns the members of one group.
func (s *Service) Group(ctx context.Context, id string, ref GroupRef) ([]Participant, error) {
	ws, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ws.Grouped() {
		return nil, ErrNotGrouped
	}
	return ws.Groups.group(ref)
}
