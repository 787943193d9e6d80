package main

import (
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a roster into participant records",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := readParticipants(cmd, args)
			if err != nil {
				return err
			}
			return encode(cmd.OutOrStdout(), format, ps)
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: yaml or json")
	return cmd
}
