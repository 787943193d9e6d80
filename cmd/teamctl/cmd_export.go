package main

import (
	"fmt"
	"io"
	"os"

	"github.com/JonMunkholm/teamweaver/internal/core"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var (
		size   int
		output string
	)

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Group a roster and write the teams as spreadsheet CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := buildGrouping(cmd, args, size)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if err := core.WriteCSV(w, g); err != nil {
				return err
			}
			if output != "" && output != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d명, %d개 조 -> %s\n", g.Count(), len(g.Numbered()), output)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&size, "size", "s", core.DefaultTargetSize, "Target team size (at least 2)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout; "+core.ExportFileName+" is the usual name)")
	return cmd
}
