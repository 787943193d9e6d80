package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "nil error returns empty",
			err:      nil,
			wantCode: "",
		},
		{
			name:     "empty roster",
			err:      ErrEmptyRoster,
			wantCode: "ROS001",
		},
		{
			name:     "wrapped sentinel is matched",
			err:      fmt.Errorf("partition %s: %w", LevelHigh, fmt.Errorf("%w: 1 (minimum 2)", ErrInvalidTargetSize)),
			wantCode: "GRP001",
		},
		{
			name:     "workspace not found",
			err:      fmt.Errorf("%w: abc", ErrWorkspaceNotFound),
			wantCode: "WS001",
		},
		{
			name:     "too many participants",
			err:      ErrTooManyParticipants,
			wantCode: "ROS005",
		},
		{
			name:     "encoding",
			err:      fmt.Errorf("%w: input is neither UTF-8 nor CP949", ErrRosterEncoding),
			wantCode: "FILE003",
		},
		{
			name:     "deadline",
			err:      fmt.Errorf("suggest: %w", context.DeadlineExceeded),
			wantCode: "REQ001",
		},
		{
			name:     "http body limit matched by text",
			err:      errors.New("http: request body too large"),
			wantCode: "FILE001",
		},
		{
			name:     "suggestion errors matched by text",
			err:      errors.New("acquire suggestion slot: too many concurrent suggestion requests"),
			wantCode: "SUG001",
		},
		{
			name:     "case insensitive pattern",
			err:      errors.New("RATE LIMIT exceeded"),
			wantCode: "RATE001",
		},
		{
			name:     "unknown error returns default",
			err:      errors.New("some random internal error"),
			wantCode: "ERR000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if tt.err != nil && got.Message == "" {
				t.Error("MapError() returned empty message for non-nil error")
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(ErrGroupNotEmpty)

	expected := "멤버가 있는 조는 삭제할 수 없습니다. (코드: GRP002). 멤버를 다른 조로 옮긴 뒤 삭제하세요."
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error is not user facing",
			err:  nil,
			want: false,
		},
		{
			name: "known error is user facing",
			err:  ErrNotGrouped,
			want: true,
		},
		{
			name: "unknown error is not user facing",
			err:  errors.New("random internal error xyz"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsUserFacing(tt.err)
			if got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}
