package core

// roster.go handles whole roster texts: pasted text blocks and uploaded files.
//
// Uploaded files come from spreadsheets more often than not, which means a
// UTF-8 BOM (Excel "CSV UTF-8") or CP949 bytes (Korean Excel default). Both
// are normalized to NFC UTF-8 text before the line parser sees them.

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// exportHeaderPrefix marks the header row of an exported roster.
const exportHeaderPrefix = "모둠 번호"

var (
	// ErrEmptyRoster is returned when no roster text was supplied at all.
	ErrEmptyRoster = errors.New("empty roster")

	// ErrNoParticipants is returned when the text holds no parseable line.
	ErrNoParticipants = errors.New("no participants in roster")

	// ErrRosterTooLarge is returned when an uploaded roster exceeds the size limit.
	ErrRosterTooLarge = errors.New("roster file too large")

	// ErrRosterEncoding is returned when a roster is neither UTF-8 nor CP949.
	ErrRosterEncoding = errors.New("roster encoding error")
)

// ParseRoster parses every participant line of a roster text. A leading BOM,
// blank lines and export header rows are skipped; the line index passed to ParseLine counts
// kept lines only.
func ParseRoster(text string) []Participant {
	text = norm.NFC.String(strings.TrimPrefix(text, utf8BOM))

	var participants []Participant
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, exportHeaderPrefix) {
			continue
		}
		participants = append(participants, ParseLine(line, len(participants)))
	}
	return participants
}

// ReadRoster reads an uploaded roster file of at most limit bytes and returns
// its text as UTF-8. A BOM is dropped; non-UTF-8 input is decoded as CP949.
func ReadRoster(r io.Reader, limit int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", fmt.Errorf("read roster: %w", err)
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("%w: limit is %d bytes", ErrRosterTooLarge, limit)
	}

	if utf8.Valid(data) {
		text, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrRosterEncoding, err)
		}
		return string(text), nil
	}

	text, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), korean.EUCKR.NewDecoder()))
	if err != nil || !utf8.Valid(text) || bytes.ContainsRune(text, utf8.RuneError) {
		return "", fmt.Errorf("%w: input is neither UTF-8 nor CP949", ErrRosterEncoding)
	}
	return string(text), nil
}
