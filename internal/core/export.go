package core

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ExportFileName is the download name of an exported grouping.
const ExportFileName = "조편성_결과.csv"

// ExportHeader lists the columns of an exported grouping.
var ExportHeader = []string{"모둠 번호", "ID", "이름", "성별", "학교", "학교급", "지역"}

const utf8BOM = "\uFEFF"

// WriteCSV writes g as a spreadsheet-friendly CSV: UTF-8 with BOM, CRLF line
// endings, one row per member in group order, groups numbered continuously
// across levels. The school column is always quoted.
//
// encoding/csv only quotes fields that need it, so rows are written by hand.
func WriteCSV(w io.Writer, g Grouping) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(utf8BOM)
	bw.WriteString(strings.Join(ExportHeader, ","))
	bw.WriteString("\r\n")

	for _, ng := range g.Numbered() {
		for _, m := range ng.Members {
			row := []string{
				strconv.Itoa(ng.Number),
				csvField(m.ID),
				csvField(m.Name),
				csvField(m.Gender),
				quote(m.School),
				csvField(string(m.Level)),
				csvField(m.Region),
			}
			bw.WriteString(strings.Join(row, ","))
			bw.WriteString("\r\n")
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func csvField(s string) string {
	if strings.ContainsAny(s, ",\"\r\n") {
		return quote(s)
	}
	return s
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
