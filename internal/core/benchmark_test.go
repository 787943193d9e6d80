package core

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"golang.org/x/text/encoding/korean"
)

// ============================================================================
// Parser Benchmarks
// ============================================================================

// BenchmarkParseLine benchmarks the line parser over typical line shapes.
func BenchmarkParseLine(b *testing.B) {
	lines := []string{
		"1. 홍길동, 남, 경기과학고등학교, 경기 수원",
		"3\t12\t김철수\t남\t부산고\t부산",
		"Kim Minsu, 서울대학교",
		"최민준, 남, 한빛교회 청년부, 소망",
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for j, line := range lines {
			ParseLine(line, j)
		}
	}
}

// BenchmarkParseRoster_Large benchmarks a camp-sized roster.
func BenchmarkParseRoster_Large(b *testing.B) {
	text := generateTestRoster(1000)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		ParseRoster(text)
	}
}

// BenchmarkReadRoster compares UTF-8 and CP949 uploads.
func BenchmarkReadRoster(b *testing.B) {
	utf8Data := []byte(generateTestRoster(1000))
	encoded, err := korean.EUCKR.NewEncoder().String(string(utf8Data))
	if err != nil {
		b.Fatal(err)
	}
	cp949Data := []byte(encoded)

	b.Run("UTF8", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			ReadRoster(bytes.NewReader(utf8Data), 1<<24)
		}
	})

	b.Run("CP949", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			ReadRoster(bytes.NewReader(cp949Data), 1<<24)
		}
	})
}

// ============================================================================
// Partition Benchmarks
// ============================================================================

// BenchmarkBuildGrouping benchmarks grouping a parsed roster at several sizes.
func BenchmarkBuildGrouping(b *testing.B) {
	participants := ParseRoster(generateTestRoster(1000))

	for _, size := range []int{2, 4, 8} {
		b.Run(fmt.Sprintf("size_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				BuildGrouping(participants, size)
			}
		})
	}
}

// BenchmarkWriteCSV benchmarks export of a grouped roster.
func BenchmarkWriteCSV(b *testing.B) {
	g, err := BuildGrouping(ParseRoster(generateTestRoster(1000)), 4)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		WriteCSV(io.Discard, g)
	}
}

// ============================================================================
// Helper Functions
// ============================================================================

// generateTestRoster generates a roster text with the specified number of lines.
func generateTestRoster(lines int) string {
	names := []string{"홍길동", "김영희", "이철수", "박민지", "최준호", "정하늘"}
	schools := []string{"경기과학고등학교", "서울중학교", "부산초등학교", "한빛대학교", "수원고등학교"}
	regions := []string{"경기 수원", "서울", "부산", "대전", "경남 창원"}
	genders := []string{"남", "여"}

	var sb strings.Builder
	for i := 0; i < lines; i++ {
		fmt.Fprintf(&sb, "%d. %s, %s, %s, %s\n",
			i+1,
			names[i%len(names)],
			genders[i%len(genders)],
			schools[i%len(schools)],
			regions[i%len(regions)],
		)
	}
	return sb.String()
}
