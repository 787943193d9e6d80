package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/JonMunkholm/teamweaver/internal/core"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// readParticipants reads the roster named by args, or stdin, and parses it.
func readParticipants(cmd *cobra.Command, args []string) ([]core.Participant, error) {
	var (
		r    io.Reader = cmd.InOrStdin()
		name           = "stdin"
	)
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r, name = f, args[0]
	}

	text, err := core.ReadRoster(r, maxInput)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%s: %w", name, core.ErrEmptyRoster)
	}

	ps := core.ParseRoster(text)
	if len(ps) == 0 {
		return nil, fmt.Errorf("%s: %w", name, core.ErrNoParticipants)
	}
	return ps, nil
}

// encode writes v to w as YAML or JSON.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q", format)
}

// groupView is the printable form of one numbered group.
type groupView struct {
	Number  int                `json:"number" yaml:"number"`
	Level   core.Level         `json:"level" yaml:"level"`
	Members []core.Participant `json:"members" yaml:"members"`
}

func groupViews(g core.Grouping) []groupView {
	numbered := g.Numbered()
	out := make([]groupView, len(numbered))
	for i, ng := range numbered {
		out[i] = groupView{Number: ng.Number, Level: ng.Ref.Level, Members: ng.Members}
	}
	return out
}
