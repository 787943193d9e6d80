// teamctl runs the roster parser and team partitioner from the command line.
//
// Usage:
//
//	teamctl parse  [file] [--format yaml|json]
//	teamctl group  [file] --size 4 [--format text|yaml|json]
//	teamctl export [file] --size 4 -o 조편성_결과.csv
//
// The roster is read from file, or from stdin when no file is given. Files
// may be UTF-8 (with or without BOM) or CP949.
package main

import (
	"fmt"
	"os"

	"github.com/JonMunkholm/teamweaver/internal/logging"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

// maxInput bounds the roster read from a file or stdin.
const maxInput = 16 << 20

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "teamctl",
		Short: "Parse camp rosters and split them into balanced teams",
		Long: "teamctl parses free-form roster lines (번호, 이름, 성별, 학교, 지역) and\n" +
			"groups participants by education tier into balanced teams.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.Setup(logLevel, "text", cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	root.AddCommand(newParseCmd())
	root.AddCommand(newGroupCmd())
	root.AddCommand(newExportCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
