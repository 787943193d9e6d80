package core

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/encoding/korean"
)

func TestParseRoster(t *testing.T) {
	text := "\uFEFF모둠 번호,ID,이름,성별,학교,학교급,지역\r\n" +
		"\r\n" +
		"홍길동, 남, 서울고등학교\r\n" +
		"   \n" +
		"김영희, 여\n"

	got := ParseRoster(text)

	want := []Participant{
		{ID: "1", Name: "홍길동", Gender: "남", School: "서울고등학교", Level: LevelHigh, Region: Unclassified},
		{ID: "2", Name: "김영희", Gender: "여", School: Unclassified, Level: LevelOther, Region: Unclassified},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseRoster() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRoster_NormalizesDecomposedHangul(t *testing.T) {
	// "홍길동" as conjoining jamo, as pasted from some macOS apps.
	decomposed := "\u1112\u1169\u11bc\u1100\u1175\u11af\u1103\u1169\u11bc, 남"

	got := ParseRoster(decomposed)
	if len(got) != 1 {
		t.Fatalf("ParseRoster() = %d participants, want 1", len(got))
	}
	if got[0].Name != "홍길동" {
		t.Errorf("Name = %q, want %q", got[0].Name, "홍길동")
	}
}

func TestParseRoster_Empty(t *testing.T) {
	for _, text := range []string{"", "\n\n", "모둠 번호,ID"} {
		if got := ParseRoster(text); len(got) != 0 {
			t.Errorf("ParseRoster(%q) = %v, want none", text, got)
		}
	}
}

func TestReadRoster(t *testing.T) {
	const line = "홍길동, 남, 서울고등학교"

	eucKR, err := korean.EUCKR.NewEncoder().String(line)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	tests := []struct {
		name    string
		input   []byte
		limit   int64
		want    string
		wantErr error
	}{
		{
			name:  "utf-8",
			input: []byte(line),
			limit: 1024,
			want:  line,
		},
		{
			name:  "utf-8 with BOM",
			input: append([]byte{0xEF, 0xBB, 0xBF}, line...),
			limit: 1024,
			want:  line,
		},
		{
			name:  "cp949",
			input: []byte(eucKR),
			limit: 1024,
			want:  line,
		},
		{
			name:  "empty",
			input: nil,
			limit: 1024,
			want:  "",
		},
		{
			name:  "exactly at limit",
			input: []byte("abcd"),
			limit: 4,
			want:  "abcd",
		},
		{
			name:    "over limit",
			input:   []byte("abcde"),
			limit:   4,
			wantErr: ErrRosterTooLarge,
		},
		{
			name:    "binary garbage",
			input:   []byte{0xFF, 0xFE, 0xFF, 0x80},
			limit:   1024,
			wantErr: ErrRosterEncoding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadRoster(bytes.NewReader(tt.input), tt.limit)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ReadRoster() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadRoster() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadRoster() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadRoster_ParsesCP949Upload(t *testing.T) {
	src := "1, 홍길동, 남, 경기과학고등학교, 경기 수원\r\n2, 김영희, 여, 부산중학교, 부산\r\n"
	encoded, err := korean.EUCKR.NewEncoder().String(src)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	text, err := ReadRoster(strings.NewReader(encoded), 1<<20)
	if err != nil {
		t.Fatalf("ReadRoster() error = %v", err)
	}
	ps := ParseRoster(text)
	if len(ps) != 2 || ps[1].School != "부산중학교" || ps[1].Level != LevelMiddle {
		t.Errorf("ParseRoster(ReadRoster()) = %+v", ps)
	}
}
