// Package templates renders the pages of the roster tool.
//
// Pages are html/template files embedded in the binary and exposed as
// templ.Component values, so handlers render them the same way whether a
// page comes from a .html file or a generated templ component.
package templates

import (
	"embed"
	"html/template"
	"net/url"
	"strconv"

	"github.com/JonMunkholm/teamweaver/internal/core"
	"github.com/JonMunkholm/teamweaver/internal/suggest"
	"github.com/a-h/templ"
)

//go:embed *.html
var files embed.FS

var funcs = template.FuncMap{
	"pathEscape": url.PathEscape,
	"inc":        func(i int) int { return i + 1 },
	"itoa":       strconv.Itoa,
	"groupValue": GroupValue,
	"fieldLabel": FieldLabel,
}

var base = template.Must(template.New("base").Funcs(funcs).ParseFS(files, "layout.html", "partials.html"))

// page parses one page file on top of the shared layout and returns the
// layout entry point.
func page(name string) *template.Template {
	t := template.Must(base.Clone())
	return template.Must(t.ParseFS(files, name)).Lookup("layout")
}

var (
	indexPage   = page("index.html")
	reviewPage  = page("review.html")
	resultsPage = page("results.html")
	seatingPage = page("seating.html")
	suggestPage = page("suggest.html")
)

// GroupValue encodes a group reference for a form field as "index:level".
func GroupValue(ref core.GroupRef) string {
	return strconv.Itoa(ref.Index) + ":" + string(ref.Level)
}

var fieldLabels = map[string]string{
	core.FieldGroupID: "모둠",
	core.FieldID:      "ID",
	core.FieldName:    "이름",
	core.FieldGender:  "성별",
	core.FieldSchool:  "학교",
	core.FieldLevel:   "학교급",
	core.FieldRegion:  "지역",
}

// FieldLabel returns the Korean column label of a participant field.
func FieldLabel(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}

// IndexParams holds data for the roster input page.
type IndexParams struct {
	Text           string
	TeamSize       int
	MaxUploadSize  int64
	SuggestEnabled bool
}

// Index renders the roster input page.
func Index(p IndexParams) templ.Component {
	return templ.FromGoHTML(indexPage, p)
}

// FieldValue is one editable cell of the review table.
type FieldValue struct {
	Field string
	Value string
}

// ReviewRow is one participant row of the review table.
type ReviewRow struct {
	Index  int
	Values []FieldValue
}

// ReviewParams holds data for the review page.
type ReviewParams struct {
	WorkspaceID string
	Fields      []string
	Rows        []ReviewRow
	TeamSize    int
}

// NewReviewRows builds review table rows in core.EditableFields order.
func NewReviewRows(participants []core.Participant) []ReviewRow {
	rows := make([]ReviewRow, len(participants))
	for i, p := range participants {
		rows[i] = ReviewRow{
			Index: i,
			Values: []FieldValue{
				{core.FieldGroupID, p.GroupID},
				{core.FieldID, p.ID},
				{core.FieldName, p.Name},
				{core.FieldGender, p.Gender},
				{core.FieldSchool, p.School},
				{core.FieldLevel, string(p.Level)},
				{core.FieldRegion, p.Region},
			},
		}
	}
	return rows
}

// Review renders the participant review page.
func Review(p ReviewParams) templ.Component {
	return templ.FromGoHTML(reviewPage, p)
}

// LevelSection is the groups of one education tier.
type LevelSection struct {
	Level  core.Level
	Groups []core.NumberedGroup
}

// GroupOption is a move target in the member move form.
type GroupOption struct {
	Value string
	Label string
}

// ResultsParams holds data for the grouping results page.
type ResultsParams struct {
	WorkspaceID    string
	TargetSize     int
	Summary        core.Summary
	Sections       []LevelSection
	Targets        []GroupOption
	SuggestEnabled bool
}

// NewResultsParams lays out a grouping by level with continuous numbering.
func NewResultsParams(ws *core.Workspace, suggestEnabled bool) ResultsParams {
	p := ResultsParams{
		WorkspaceID:    ws.ID,
		TargetSize:     ws.TargetSize,
		Summary:        core.Summarize(ws.Groups),
		SuggestEnabled: suggestEnabled,
	}
	for _, ng := range ws.Groups.Numbered() {
		n := len(p.Sections)
		if n == 0 || p.Sections[n-1].Level != ng.Ref.Level {
			p.Sections = append(p.Sections, LevelSection{Level: ng.Ref.Level})
			n++
		}
		p.Sections[n-1].Groups = append(p.Sections[n-1].Groups, ng)
		p.Targets = append(p.Targets, GroupOption{
			Value: GroupValue(ng.Ref),
			Label: strconv.Itoa(ng.Number) + "조 (" + string(ng.Ref.Level) + ")",
		})
	}
	return p
}

// Results renders the grouping results page.
func Results(p ResultsParams) templ.Component {
	return templ.FromGoHTML(resultsPage, p)
}

// SeatingParams holds data for the seating chart.
type SeatingParams struct {
	WorkspaceID string
	Groups      []core.NumberedGroup
}

// Seating renders the printable seating chart.
func Seating(p SeatingParams) templ.Component {
	return templ.FromGoHTML(seatingPage, p)
}

// SuggestParams holds data for the team suggestion page.
type SuggestParams struct {
	WorkspaceID string
	Group       core.NumberedGroup
	Suggestion  suggest.Suggestion
	Failed      bool
	Enabled     bool
}

// Suggest renders an AI team name and icebreaker suggestion for one group.
func Suggest(p SuggestParams) templ.Component {
	return templ.FromGoHTML(suggestPage, p)
}

type errorAlert struct {
	Message string
	Action  string
	Code    string
}

// ErrorAlert renders an inline error fragment.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.FromGoHTML(base.Lookup("error_alert"), errorAlert{message, action, code})
}
