package verify

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/aidd/pkg/core"
	"github.com/arthur-debert/aidd/pkg/errors"
	"github.com/arthur-debert/aidd/pkg/settings"
	"github.com/arthur-debert/aidd/pkg/style"
)

// Message constants
const (
	MsgShort = "Check a scaffold directory without running it"
	MsgLong  = `Verify statically checks the scaffold in the given directory (default ".").
It confirms the manifest exists, parses, has a valid structure, and that an
empty step list is backed by an extension entry point. All problems are
reported together.`
	MsgValid   = "Scaffold at %s is valid"
	MsgInvalid = "Scaffold at %s has problems:"
)

// NewCommand creates the verify command
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [dir]",
		Short: MsgShort,
		Long:  MsgLong,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			cfg, err := settings.Load()
			if err != nil {
				return err
			}

			result := core.VerifyScaffoldDir(dir, cfg)
			if result.Valid {
				fmt.Fprintln(cmd.OutOrStdout(),
					style.Success.Render(fmt.Sprintf(MsgValid, dir)))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(),
				style.Error.Render(fmt.Sprintf(MsgInvalid, dir)))
			for _, problem := range result.Errors {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", problem)
			}
			return errors.Newf(errors.ErrManifestInvalid,
				"scaffold at %s failed verification", dir)
		},
	}
}
