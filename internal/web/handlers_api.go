package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/JonMunkholm/teamweaver/internal/core"
	"github.com/JonMunkholm/teamweaver/internal/suggest"
	"github.com/go-chi/chi/v5"
)

// rosterRequest is the body of the parse, partition and export endpoints.
// Either Text or Participants is set; Text wins when both are. A missing
// TargetSize means the configured default.
type rosterRequest struct {
	Text         string             `json:"text,omitempty"`
	Participants []core.Participant `json:"participants,omitempty"`
	TargetSize   *int               `json:"targetSize,omitempty"`
}

// ParseResponse is returned by POST /api/parse.
type ParseResponse struct {
	Participants []core.Participant `json:"participants"`
	Count        int                `json:"count"`
}

// PartitionResponse is returned by POST /api/partition.
type PartitionResponse struct {
	TargetSize int                  `json:"targetSize"`
	Groups     []core.NumberedGroup `json:"groups"`
	Summary    core.Summary         `json:"summary"`
}

// SuggestRequest is the body of POST /api/suggest.
type SuggestRequest struct {
	Members []suggest.Member `json:"members"`
}

// SuggestResponse is returned by POST /api/suggest. Fallback is set when the
// suggestion is the placeholder served after a failure.
type SuggestResponse struct {
	suggest.Suggestion
	Fallback bool `json:"fallback"`
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status     string        `json:"status"`
	Workspaces int           `json:"workspaces"`
	Suggest    SuggestStatus `json:"suggest"`
}

// SuggestStatus reports whether suggestions are configured and how busy the
// model call slots are.
type SuggestStatus struct {
	Enabled bool                  `json:"enabled"`
	Limiter suggest.LimiterStatus `json:"limiter"`
}

// decodeJSON decodes a size-limited JSON request body into v.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Roster.MaxUploadSize+formOverhead)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return fmt.Errorf("%w: %v", core.ErrRosterTooLarge, err)
		}
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

// participants resolves the roster of a request, parsing Text when present.
func (s *Server) participants(req rosterRequest) ([]core.Participant, error) {
	if strings.TrimSpace(req.Text) != "" {
		ps := core.ParseRoster(req.Text)
		if len(ps) == 0 {
			return nil, core.ErrNoParticipants
		}
		return ps, nil
	}
	if len(req.Participants) == 0 {
		return nil, core.ErrEmptyRoster
	}
	return req.Participants, nil
}

// checkLimit rejects rosters over the participant limit.
func (s *Server) checkLimit(ps []core.Participant) error {
	if limit := s.cfg.Roster.MaxParticipants; limit > 0 && len(ps) > limit {
		return fmt.Errorf("%w: %d rows, limit is %d", core.ErrTooManyParticipants, len(ps), limit)
	}
	return nil
}

// grouping runs the partitioner over a roster request.
func (s *Server) grouping(w http.ResponseWriter, r *http.Request) (core.Grouping, int, error) {
	var req rosterRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		return nil, 0, err
	}
	ps, err := s.participants(req)
	if err != nil {
		return nil, 0, err
	}
	if err := s.checkLimit(ps); err != nil {
		return nil, 0, err
	}

	size := s.cfg.Roster.DefaultTeamSize
	if req.TargetSize != nil {
		size = *req.TargetSize
	}
	g, err := core.BuildGrouping(ps, size)
	if err != nil {
		return nil, 0, err
	}
	return g, size, nil
}

// handleAPIParse parses roster text into participants.
func (s *Server) handleAPIParse(w http.ResponseWriter, r *http.Request) {
	var req rosterRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		s.fail(w, r, core.ErrEmptyRoster)
		return
	}

	ps := core.ParseRoster(req.Text)
	if err := s.checkLimit(ps); err != nil {
		s.fail(w, r, err)
		return
	}
	if ps == nil {
		ps = []core.Participant{}
	}
	writeJSON(w, ParseResponse{Participants: ps, Count: len(ps)})
}

// handleAPIPartition groups a roster and returns the numbered groups.
func (s *Server) handleAPIPartition(w http.ResponseWriter, r *http.Request) {
	g, size, err := s.grouping(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, PartitionResponse{
		TargetSize: size,
		Groups:     g.Numbered(),
		Summary:    core.Summarize(g),
	})
}

// handleAPIExport groups a roster and returns it as CSV.
func (s *Server) handleAPIExport(w http.ResponseWriter, r *http.Request) {
	g, _, err := s.grouping(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeCSV(w, r, g)
}

// handleAPISuggest returns a team name and icebreakers for one group. The
// response is always 200 for a well-formed request; failures are reported
// through the fallback flag.
func (s *Server) handleAPISuggest(w http.ResponseWriter, r *http.Request) {
	var req SuggestRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if len(req.Members) == 0 {
		s.fail(w, r, fmt.Errorf("%w: no members", errBadRequest))
		return
	}

	sg := s.suggest.Suggest(r.Context(), req.Members)
	writeJSON(w, SuggestResponse{Suggestion: sg, Fallback: sg.IsFallback()})
}

// handleAPIWorkspace returns a workspace as JSON.
func (s *Server) handleAPIWorkspace(w http.ResponseWriter, r *http.Request) {
	ws, err := s.core.Get(r.Context(), chi.URLParam(r, "workspaceID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, ws)
}

func (s *Server) suggestStatus() SuggestStatus {
	return SuggestStatus{
		Enabled: s.suggest.Enabled(),
		Limiter: s.suggest.Limiter().Status(),
	}
}

// handleSuggestStatus returns the state of the suggestion limiter.
// Used for monitoring and to check if suggestions can be served right now.
func (s *Server) handleSuggestStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.suggestStatus())
}

// handleHealth reports liveness with a few gauges.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, HealthResponse{
		Status:     "ok",
		Workspaces: s.core.Count(),
		Suggest:    s.suggestStatus(),
	})
}
