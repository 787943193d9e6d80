package web

// handlers_common.go contains shared helpers used across handlers.

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/JonMunkholm/teamweaver/internal/core"
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
)

// sampleRoster is offered on the input page via ?preset=1.
const sampleRoster = `1. 김민준, 남, 서울중학교, 서울 강남
2. 이서연, 여, 부산국제고등학교, 부산 해운대
3. 박도윤, 남, 대구초등학교, 대구 수성
4. 최지우, 여, 광주과학고등학교, 광주 북구
5. 정하준, 남, 인천중학교, 인천 연수
6. 강서윤, 여, 대전고등학교, 대전 유성
7. 조시우, 남, 울산초등학교, 울산 남구
8. 윤지아, 여, 세종중학교, 세종
9. 장주원, 남, 경기과학고등학교, 경기 수원
10. 임하은, 여, 강원중학교, 강원 춘천
11. 한예준, 남, 충북고등학교, 충북 청주
12. 오수아, 여, 충남초등학교, 충남 천안
13. 서지호, 남, 전북중학교, 전북 전주
14. 신채원, 여, 전남고등학교, 전남 목포
15. 권건우, 남, 경북초등학교, 경북 포항
16. 황다은, 여, 경남중학교, 경남 창원`

// clientIP returns the client address resolved by TrustedRealIP, without
// the port.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// render writes a page component. Rendering errors are logged because the
// headers are already sent.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		slog.ErrorContext(r.Context(), "render page", "path", r.URL.Path, "error", err)
	}
}

// redirect sends the browser to target after a form post. HTMX requests get
// an HX-Redirect header instead of a 303.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func workspacePath(id, page string) string {
	return "/w/" + url.PathEscape(id) + "/" + page
}

// intParam parses a non-negative integer URL parameter.
func intParam(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s=%q", errBadRequest, name, chi.URLParam(r, name))
	}
	return v, nil
}

// levelParam returns the decoded level URL parameter.
func levelParam(r *http.Request) core.Level {
	raw := chi.URLParam(r, "level")
	if v, err := url.PathUnescape(raw); err == nil {
		return core.Level(v)
	}
	return core.Level(raw)
}

// groupRefParam reads the level and index URL parameters.
func groupRefParam(r *http.Request) (core.GroupRef, error) {
	idx, err := intParam(r, "index")
	if err != nil {
		return core.GroupRef{}, err
	}
	return core.GroupRef{Level: levelParam(r), Index: idx}, nil
}

// parseGroupValue decodes a group reference written by templates.GroupValue.
func parseGroupValue(v string) (core.GroupRef, error) {
	idx, level, ok := strings.Cut(v, ":")
	if !ok {
		return core.GroupRef{}, fmt.Errorf("%w: group %q", errBadRequest, v)
	}
	i, err := strconv.Atoi(idx)
	if err != nil || i < 0 {
		return core.GroupRef{}, fmt.Errorf("%w: group %q", errBadRequest, v)
	}
	return core.GroupRef{Level: core.Level(level), Index: i}, nil
}

// targetSize reads the "size" form or query value, falling back to def when
// it is absent. Range checks are left to the partitioner.
func targetSize(r *http.Request, def int) (int, error) {
	v := strings.TrimSpace(r.FormValue("size"))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: size %q", errBadRequest, v)
	}
	return n, nil
}

// formOverhead is the body allowance on top of the roster size limit for
// multipart boundaries and the other form fields.
const formOverhead = 64 << 10

// readRosterInput returns the roster text of an analyze request: the
// uploaded file when one was sent, the pasted text otherwise.
func (s *Server) readRosterInput(w http.ResponseWriter, r *http.Request) (string, error) {
	limit := s.cfg.Roster.MaxUploadSize
	r.Body = http.MaxBytesReader(w, r.Body, limit+formOverhead)

	if err := r.ParseMultipartForm(limit); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		if strings.Contains(err.Error(), "request body too large") {
			return "", fmt.Errorf("%w: %v", core.ErrRosterTooLarge, err)
		}
		return "", fmt.Errorf("%w: parse form: %v", errBadRequest, err)
	}

	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()
		if header.Size > 0 {
			text, err := core.ReadRoster(file, limit)
			if err != nil {
				return "", fmt.Errorf("read %s: %w", header.Filename, err)
			}
			slog.InfoContext(r.Context(), "roster uploaded", "file", header.Filename, "size", header.Size)
			return text, nil
		}
	case !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart):
		return "", fmt.Errorf("%w: %v", errNoFile, err)
	}

	return r.FormValue("text"), nil
}
