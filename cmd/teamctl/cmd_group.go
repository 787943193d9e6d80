package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/JonMunkholm/teamweaver/internal/core"
	"github.com/spf13/cobra"
)

func newGroupCmd() *cobra.Command {
	var (
		size   int
		format string
	)

	cmd := &cobra.Command{
		Use:   "group [file]",
		Short: "Split a roster into balanced teams per education tier",
		Long: "group sorts each tier by region, school and gender and cuts it into teams\n" +
			"of --size members. Tiers where any participant has a group number keep\n" +
			"those groups instead.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := buildGrouping(cmd, args, size)
			if err != nil {
				return err
			}
			if format == "text" {
				return writeTable(cmd.OutOrStdout(), g)
			}
			return encode(cmd.OutOrStdout(), format, groupViews(g))
		},
	}
	cmd.Flags().IntVarP(&size, "size", "s", core.DefaultTargetSize, "Target team size (at least 2)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, yaml or json")
	return cmd
}

func buildGrouping(cmd *cobra.Command, args []string, size int) (core.Grouping, error) {
	ps, err := readParticipants(cmd, args)
	if err != nil {
		return nil, err
	}
	g, err := core.BuildGrouping(ps, size)
	if err != nil {
		return nil, err
	}
	slog.Info("roster grouped", "participants", g.Count(), "groups", len(g.Numbered()), "size", size)
	return g, nil
}

// writeTable prints one block per team followed by the roster summary.
func writeTable(w io.Writer, g core.Grouping) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, ng := range g.Numbered() {
		fmt.Fprintf(tw, "%d조 (%s, %d명)\n", ng.Number, ng.Ref.Level, len(ng.Members))
		for _, m := range ng.Members {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n", m.ID, m.Name, m.Gender, m.School, m.Region)
		}
		fmt.Fprintln(tw)
	}

	s := core.Summarize(g)
	fmt.Fprintf(tw, "전체 %d명 (남 %d, 여 %d)\n", s.Total, s.Male, s.Female)
	levels := make([]string, len(s.ByLevel))
	for i, c := range s.ByLevel {
		levels[i] = fmt.Sprintf("%s %d", c.Label, c.Count)
	}
	fmt.Fprintf(tw, "학교급: %s\n", strings.Join(levels, ", "))
	return tw.Flush()
}
