// Package aidd assembles the aidd command tree.
package aidd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/aidd/cmd/aidd/commands/clean"
	configcmd "github.com/arthur-debert/aidd/cmd/aidd/commands/config"
	"github.com/arthur-debert/aidd/cmd/aidd/commands/create"
	"github.com/arthur-debert/aidd/cmd/aidd/commands/verify"
	"github.com/arthur-debert/aidd/internal/version"
	"github.com/arthur-debert/aidd/pkg/logging"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "aidd",
		Short: "Create projects from scaffolds",
		Long: `aidd creates new projects from scaffolds: template packages holding a
setup manifest, an optional JS extension and a README. Scaffolds resolve from
a local named template, a file:// path, an https:// URL, or a bare GitHub
repository reference resolved to its latest release.`,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(create.NewCommand())
	rootCmd.AddCommand(verify.NewCommand())
	rootCmd.AddCommand(clean.NewCommand())
	rootCmd.AddCommand(configcmd.NewCommand())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("aidd version %s\n", version.Version)
			fmt.Printf("  commit: %s\n", version.Commit)
			fmt.Printf("  built:  %s\n", version.Date)
		},
	}
}
