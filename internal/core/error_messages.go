package core

// error_messages.go maps technical errors to Korean user messages with codes
// for support reference. Organizers quote the code; the log line carrying the
// same request id has the technical detail.
//
// # Roster Errors (ROS001-ROS099)
//
//	ROS001 - Empty roster: no text was pasted or uploaded
//	ROS002 - No participants: nothing in the text could be parsed
//	ROS003 - Participant not found: row index out of range
//	ROS004 - Unknown field: edited column does not exist
//	ROS005 - Too many participants: roster row limit reached
//
// # Grouping Errors (GRP001-GRP099)
//
//	GRP001 - Invalid target size: group size below 2
//	GRP002 - Group not empty: only empty groups can be deleted
//	GRP003 - Group not found: level or group index out of range
//	GRP004 - Member not found: moved member is not in the source group
//	GRP005 - Not grouped: grouping has not been generated yet
//
// # Workspace Errors (WS001-WS099)
//
//	WS001 - Workspace not found: expired or never existed
//	WS002 - Too many workspaces: server is at capacity
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large
//	FILE002 - No file: upload field is empty
//	FILE003 - Encoding error: neither UTF-8 nor CP949
//
// # Other
//
//	SUG001  - Suggestions unavailable: no API key or all slots busy
//	RATE001 - Rate limited
//	REQ001  - Request cancelled or timed out
//	REQ002  - Malformed request body or parameters
//	ERR000  - Unknown error (check the logs)
//
// Sentinel errors are matched with errors.Is first; errors that only exist as
// text (net/http, context) fall back to case-insensitive substring patterns.

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type sentinelMessage struct {
	target error
	msg    UserMessage
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var sentinelMessages = []sentinelMessage{
	{ErrEmptyRoster, UserMessage{
		Message: "참가자 정보를 입력해주세요.",
		Action:  "명단을 붙여넣거나 파일을 선택하세요.",
		Code:    "ROS001",
	}},
	{ErrNoParticipants, UserMessage{
		Message: "유효한 참가자 정보가 없습니다.",
		Action:  "한 줄에 한 명씩, 쉼표나 탭으로 구분해 입력하세요.",
		Code:    "ROS002",
	}},
	{ErrParticipantNotFound, UserMessage{
		Message: "해당 참가자를 찾을 수 없습니다.",
		Action:  "페이지를 새로고침한 뒤 다시 시도하세요.",
		Code:    "ROS003",
	}},
	{ErrUnknownField, UserMessage{
		Message: "수정할 수 없는 항목입니다.",
		Action:  "표의 항목만 수정할 수 있습니다.",
		Code:    "ROS004",
	}},
	{ErrTooManyParticipants, UserMessage{
		Message: "참가자 수가 너무 많습니다.",
		Action:  "명단을 나누어 작업하세요.",
		Code:    "ROS005",
	}},
	{ErrInvalidTargetSize, UserMessage{
		Message: "한 조당 인원은 2명 이상이어야 합니다.",
		Action:  "목표 조당 인원 수를 2 이상으로 입력하세요.",
		Code:    "GRP001",
	}},
	{ErrGroupNotEmpty, UserMessage{
		Message: "멤버가 있는 조는 삭제할 수 없습니다.",
		Action:  "멤버를 다른 조로 옮긴 뒤 삭제하세요.",
		Code:    "GRP002",
	}},
	{ErrGroupNotFound, UserMessage{
		Message: "해당 조를 찾을 수 없습니다.",
		Action:  "페이지를 새로고침한 뒤 다시 시도하세요.",
		Code:    "GRP003",
	}},
	{ErrMemberNotFound, UserMessage{
		Message: "해당 조에서 멤버를 찾을 수 없습니다.",
		Action:  "페이지를 새로고침한 뒤 다시 시도하세요.",
		Code:    "GRP004",
	}},
	{ErrNotGrouped, UserMessage{
		Message: "아직 조 편성이 되지 않았습니다.",
		Action:  "검토 화면에서 조 편성을 먼저 시작하세요.",
		Code:    "GRP005",
	}},
	{ErrWorkspaceNotFound, UserMessage{
		Message: "작업 내역을 찾을 수 없습니다.",
		Action:  "오래된 작업은 자동으로 삭제됩니다. 명단을 다시 입력하세요.",
		Code:    "WS001",
	}},
	{ErrTooManyWorkspaces, UserMessage{
		Message: "동시에 진행 중인 작업이 너무 많습니다.",
		Action:  "잠시 후 다시 시도하세요.",
		Code:    "WS002",
	}},
	{ErrRosterTooLarge, UserMessage{
		Message: "파일이 너무 큽니다.",
		Action:  "명단을 나누어 올리세요.",
		Code:    "FILE001",
	}},
	{ErrRosterEncoding, UserMessage{
		Message: "파일 인코딩을 읽을 수 없습니다.",
		Action:  "UTF-8 또는 CP949(EUC-KR) 형식으로 저장하세요.",
		Code:    "FILE003",
	}},
	{context.DeadlineExceeded, UserMessage{
		Message: "요청 시간이 초과되었습니다.",
		Action:  "잠시 후 다시 시도하세요.",
		Code:    "REQ001",
	}},
	{context.Canceled, UserMessage{
		Message: "요청이 취소되었습니다.",
		Action:  "다시 시도하세요.",
		Code:    "REQ001",
	}},
}

// errorPatterns are matched against the lowercase error text when no
// sentinel matched. First match wins.
var errorPatterns = []errorPattern{
	{"request body too large", UserMessage{
		Message: "파일이 너무 큽니다.",
		Action:  "명단을 나누어 올리세요.",
		Code:    "FILE001",
	}},
	{"no file provided", UserMessage{
		Message: "선택된 파일이 없습니다.",
		Action:  "명단 파일을 선택하세요.",
		Code:    "FILE002",
	}},
	{"suggestion", UserMessage{
		Message: "AI 추천을 사용할 수 없습니다.",
		Action:  "잠시 후 다시 시도하거나 관리자에게 API 키 설정을 확인해달라고 요청하세요.",
		Code:    "SUG001",
	}},
	{"rate limit", UserMessage{
		Message: "요청이 너무 많습니다.",
		Action:  "잠시 후 다시 시도하세요.",
		Code:    "RATE001",
	}},
	{"invalid request", UserMessage{
		Message: "요청 형식이 올바르지 않습니다.",
		Action:  "입력값을 확인한 뒤 다시 시도하세요.",
		Code:    "REQ002",
	}},
}

var defaultMessage = UserMessage{
	Message: "알 수 없는 오류가 발생했습니다.",
	Action:  "다시 시도하거나 관리자에게 오류 코드를 알려주세요.",
	Code:    "ERR000",
}

// MapError converts an error to a user-friendly message.
// Returns an empty UserMessage for a nil error.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, sm := range sentinelMessages {
		if errors.Is(err, sm.target) {
			return sm.msg
		}
	}

	text := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(text, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError formats err as "Message (코드: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (코드: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
