package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JonMunkholm/teamweaver/internal/core"
	"github.com/JonMunkholm/teamweaver/internal/suggest"
	"github.com/stretchr/testify/require"
)

func TestAPIParse(t *testing.T) {
	s := newTestServer(t, nil, nil)

	rec := postJSON(s, "/api/parse", map[string]string{"text": highRoster})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp ParseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 9, resp.Count)
	require.Equal(t, core.Participant{
		ID:     "1",
		Name:   "홍길동",
		Gender: "남",
		School: "경기과학고등학교",
		Level:  core.LevelHigh,
		Region: "경기 수원",
	}, resp.Participants[0])
}

func TestAPIParseErrors(t *testing.T) {
	s := newTestServer(t, nil, nil)

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{"empty text", `{"text":"  "}`, http.StatusBadRequest, "ROS001"},
		{"malformed json", `{"text":`, http.StatusBadRequest, "REQ002"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/parse", strings.NewReader(tt.body))
			rec := serve(s, req)
			require.Equal(t, tt.wantCode, rec.Code)
			require.Equal(t, tt.wantErr, decodeError(t, rec).Code)
		})
	}
}

func TestAPIParseTooManyParticipants(t *testing.T) {
	cfg := testConfig()
	cfg.Roster.MaxParticipants = 3
	s := newTestServer(t, cfg, nil)

	rec := postJSON(s, "/api/parse", map[string]string{"text": highRoster})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "ROS005", decodeError(t, rec).Code)
}

func TestAPIPartition(t *testing.T) {
	s := newTestServer(t, nil, nil)

	rec := postJSON(s, "/api/partition", map[string]any{"text": highRoster, "targetSize": 4})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp PartitionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 4, resp.TargetSize)
	require.Len(t, resp.Groups, 2)
	require.Equal(t, 1, resp.Groups[0].Number)
	require.Len(t, resp.Groups[0].Members, 5)
	require.Len(t, resp.Groups[1].Members, 4)
	require.Equal(t, 9, resp.Summary.Total)
	require.Equal(t, 4, resp.Summary.Male)
	require.Equal(t, 5, resp.Summary.Female)
}

func TestAPIPartitionParticipants(t *testing.T) {
	s := newTestServer(t, nil, nil)

	ps := []core.Participant{
		{ID: "1", Name: "가", Level: core.LevelMiddle, GroupID: "2"},
		{ID: "2", Name: "나", Level: core.LevelMiddle, GroupID: "1"},
		{ID: "3", Name: "다", Level: core.LevelMiddle},
	}
	rec := postJSON(s, "/api/partition", map[string]any{"participants": ps})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp PartitionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 4, resp.TargetSize, "default size")
	require.Len(t, resp.Groups, 3, "grouped by id plus the unassigned group")
}

func TestAPIPartitionErrors(t *testing.T) {
	s := newTestServer(t, nil, nil)

	for _, size := range []int{1, 0, -3} {
		for _, path := range []string{"/api/partition", "/api/export"} {
			rec := postJSON(s, path, map[string]any{"text": highRoster, "targetSize": size})
			require.Equal(t, http.StatusBadRequest, rec.Code, "%s size %d", path, size)
			require.Equal(t, "GRP001", decodeError(t, rec).Code)
		}
	}

	rec := postJSON(s, "/api/partition", map[string]any{"targetSize": 4})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "ROS001", decodeError(t, rec).Code)
}

func TestAPIExport(t *testing.T) {
	s := newTestServer(t, nil, nil)

	rec := postJSON(s, "/api/export", map[string]any{"text": highRoster, "targetSize": 4})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))

	lines := strings.Split(strings.TrimSuffix(rec.Body.String(), "\r\n"), "\r\n")
	require.Len(t, lines, 10)
	require.True(t, strings.HasPrefix(lines[1], "1,"), lines[1])
	require.True(t, strings.HasPrefix(lines[9], "2,"), lines[9])
}

func TestAPISuggest(t *testing.T) {
	members := []suggest.Member{
		{Name: "홍길동", School: "경기과학고등학교", Level: "고등"},
		{Name: "김영희", School: "수원고등학교", Level: "고등"},
	}

	tests := []struct {
		name         string
		backend      suggest.Suggester
		wantTeam     string
		wantFallback bool
	}{
		{"suggestion", stubSuggester{sg: okSuggestion}, "푸른 바다", false},
		{"backend error", stubSuggester{err: errors.New("quota")}, "오류", true},
		{"disabled", nil, "오류", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, nil, tt.backend)

			rec := postJSON(s, "/api/suggest", SuggestRequest{Members: members})
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var resp SuggestResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.Equal(t, tt.wantTeam, resp.TeamName)
			require.Equal(t, tt.wantFallback, resp.Fallback)
			require.NotEmpty(t, resp.Icebreakers)
		})
	}

	t.Run("no members", func(t *testing.T) {
		s := newTestServer(t, nil, stubSuggester{sg: okSuggestion})
		rec := postJSON(s, "/api/suggest", SuggestRequest{})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "REQ002", decodeError(t, rec).Code)
	})
}

func TestAPIWorkspace(t *testing.T) {
	s := newTestServer(t, nil, nil)
	id := generate(t, s)

	rec := get(s, "/api/workspaces/"+id)
	require.Equal(t, http.StatusOK, rec.Code)

	var ws core.Workspace
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ws))
	require.Equal(t, id, ws.ID)
	require.Len(t, ws.Participants, 9)
	require.Equal(t, 4, ws.TargetSize)
	require.Equal(t, 9, ws.Groups.Count())

	rec = get(s, "/api/workspaces/nope")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "WS001", decodeError(t, rec).Code)
}

func TestSuggestStatus(t *testing.T) {
	s := newTestServer(t, nil, stubSuggester{sg: okSuggestion})

	rec := get(s, "/api/suggest/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var status SuggestStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.True(t, status.Enabled)
	require.Equal(t, 0, status.Limiter.Active)
	require.Equal(t, status.Limiter.MaxConcurrent, status.Limiter.Available)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{core.ErrWorkspaceNotFound, http.StatusNotFound},
		{core.ErrGroupNotEmpty, http.StatusConflict},
		{core.ErrTooManyWorkspaces, http.StatusServiceUnavailable},
		{core.ErrRosterTooLarge, http.StatusRequestEntityTooLarge},
		{&http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge},
		{core.ErrInvalidTargetSize, http.StatusBadRequest},
		{errRateLimited, http.StatusTooManyRequests},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
