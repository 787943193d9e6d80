package web

import (
	"fmt"
	"log/slog"
	"mime"
	"net/http"

	"github.com/JonMunkholm/teamweaver/internal/core"
	"github.com/JonMunkholm/teamweaver/internal/suggest"
	"github.com/JonMunkholm/teamweaver/internal/web/templates"
	"github.com/go-chi/chi/v5"
)

// handleIndex renders the roster input page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	size, err := targetSize(r, s.cfg.Roster.DefaultTeamSize)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	p := templates.IndexParams{
		TeamSize:       size,
		MaxUploadSize:  s.cfg.Roster.MaxUploadSize,
		SuggestEnabled: s.suggest.Enabled(),
	}
	if r.URL.Query().Get("preset") == "1" {
		p.Text = sampleRoster
	}
	render(w, r, templates.Index(p))
}

// handleAnalyze parses a pasted or uploaded roster into a new workspace.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	text, err := s.readRosterInput(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	size, err := targetSize(r, s.cfg.Roster.DefaultTeamSize)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	ws, err := s.core.Analyze(r.Context(), text)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	redirect(w, r, fmt.Sprintf("%s?size=%d", workspacePath(ws.ID, "review"), size))
}

// handleReview renders the editable participant table.
func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	ws, err := s.core.Get(r.Context(), chi.URLParam(r, "workspaceID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	def := s.cfg.Roster.DefaultTeamSize
	if ws.TargetSize > 0 {
		def = ws.TargetSize
	}
	size, err := targetSize(r, def)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render(w, r, templates.Review(templates.ReviewParams{
		WorkspaceID: ws.ID,
		Fields:      core.EditableFields,
		Rows:        templates.NewReviewRows(ws.Participants),
		TeamSize:    size,
	}))
}

// handleAddParticipant appends a blank row to the review table.
func (s *Server) handleAddParticipant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "workspaceID")
	if _, err := s.core.AddParticipant(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	redirect(w, r, workspacePath(id, "review"))
}

// handleUpdateParticipant saves the edited fields of one row. A request may
// carry any subset of the editable fields, or a single field/value pair.
func (s *Server) handleUpdateParticipant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "workspaceID")
	row, err := intParam(r, "row")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.fail(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	edits := make(map[string]string)
	if field := r.PostForm.Get("field"); field != "" {
		edits[field] = r.PostForm.Get("value")
	}
	for _, field := range core.EditableFields {
		if vals, ok := r.PostForm[field]; ok {
			edits[field] = vals[0]
		}
	}

	for field, value := range edits {
		if _, err := s.core.UpdateParticipant(r.Context(), id, row, field, value); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	redirect(w, r, workspacePath(id, "review"))
}

// handleDeleteParticipant removes one row of the review table.
func (s *Server) handleDeleteParticipant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "workspaceID")
	row, err := intParam(r, "row")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if _, err := s.core.DeleteParticipant(r.Context(), id, row); err != nil {
		s.fail(w, r, err)
		return
	}
	redirect(w, r, workspacePath(id, "review"))
}

// handleGenerateGroups partitions the reviewed roster.
func (s *Server) handleGenerateGroups(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "workspaceID")
	size, err := targetSize(r, s.cfg.Roster.DefaultTeamSize)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if _, err := s.core.GenerateGroups(r.Context(), id, size); err != nil {
		s.fail(w, r, err)
		return
	}
	redirect(w, r, workspacePath(id, "results"))
}

// grouped loads a workspace that must already have groups.
func (s *Server) grouped(r *http.Request) (*core.Workspace, error) {
	ws, err := s.core.Get(r.Context(), chi.URLParam(r, "workspaceID"))
	if err != nil {
		return nil, err
	}
	if !ws.Grouped() {
		return nil, core.ErrNotGrouped
	}
	return ws, nil
}

// handleResults renders the groups by level with the summary.
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	ws, err := s.grouped(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render(w, r, templates.Results(templates.NewResultsParams(ws, s.suggest.Enabled())))
}

// handleMoveMember moves one member to another group.
func (s *Server) handleMoveMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "workspaceID")
	from, err := parseGroupValue(r.FormValue("from"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	to, err := parseGroupValue(r.FormValue("to"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if _, err := s.core.MoveMember(r.Context(), id, r.FormValue("member"), from, to); err != nil {
		s.fail(w, r, err)
		return
	}
	redirect(w, r, workspacePath(id, "results"))
}

// handleAddGroup appends an empty group to a level.
func (s *Server) handleAddGroup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "workspaceID")
	if _, err := s.core.AddGroup(r.Context(), id, levelParam(r)); err != nil {
		s.fail(w, r, err)
		return
	}
	redirect(w, r, workspacePath(id, "results"))
}

// handleDeleteGroup removes an empty group.
func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "workspaceID")
	ref, err := groupRefParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if _, err := s.core.DeleteGroup(r.Context(), id, ref); err != nil {
		s.fail(w, r, err)
		return
	}
	redirect(w, r, workspacePath(id, "results"))
}

// handleSeating renders the printable seating chart.
func (s *Server) handleSeating(w http.ResponseWriter, r *http.Request) {
	ws, err := s.grouped(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render(w, r, templates.Seating(templates.SeatingParams{
		WorkspaceID: ws.ID,
		Groups:      ws.Groups.Numbered(),
	}))
}

// handleExport downloads the grouping as CSV.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ws, err := s.grouped(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeCSV(w, r, ws.Groups)
}

// writeCSV streams g as an attachment named core.ExportFileName.
func writeCSV(w http.ResponseWriter, r *http.Request, g core.Grouping) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": core.ExportFileName,
	}))
	if err := core.WriteCSV(w, g); err != nil {
		slog.ErrorContext(r.Context(), "export csv", "error", err)
	}
}

// handleSuggestPage asks the suggestion service for a team name and
// icebreakers for one group. Failures render the fallback, never an error page.
func (s *Server) handleSuggestPage(w http.ResponseWriter, r *http.Request) {
	ws, err := s.grouped(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ref, err := groupRefParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var group *core.NumberedGroup
	for _, ng := range ws.Groups.Numbered() {
		if ng.Ref == ref {
			group = &ng
			break
		}
	}
	if group == nil {
		s.fail(w, r, fmt.Errorf("%w: %s", core.ErrGroupNotFound, ref))
		return
	}

	p := templates.SuggestParams{
		WorkspaceID: ws.ID,
		Group:       *group,
		Enabled:     s.suggest.Enabled(),
	}
	if p.Enabled {
		p.Suggestion = s.suggest.Suggest(r.Context(), suggest.MembersFrom(group.Members))
		p.Failed = p.Suggestion.IsFallback()
	}
	render(w, r, templates.Suggest(p))
}

// handleDeleteWorkspace drops a workspace and returns to the input page.
func (s *Server) handleDeleteWorkspace(w http.ResponseWriter, r *http.Request) {
	if err := s.core.Delete(r.Context(), chi.URLParam(r, "workspaceID")); err != nil {
		s.fail(w, r, err)
		return
	}
	redirect(w, r, "/")
}
