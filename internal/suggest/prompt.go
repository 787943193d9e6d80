package suggest

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed prompt.tmpl
var promptText string

var promptTemplate = template.Must(template.New("prompt").Parse(promptText))

// RenderPrompt renders the model prompt for one group.
func RenderPrompt(members []Member) (string, error) {
	var sb strings.Builder
	if err := promptTemplate.Execute(&sb, members); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return sb.String(), nil
}
