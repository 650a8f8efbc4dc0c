package clean

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/aidd/pkg/core"
	"github.com/arthur-debert/aidd/pkg/settings"
	"github.com/arthur-debert/aidd/pkg/style"
)

// Message constants
const (
	MsgShort   = "Remove the downloaded scaffold kept in a project folder"
	MsgLong    = `Clean removes the scoped download directory a remote scaffold was extracted
into. The directory is kept after a run (and after a failed run, for
inspection); clean is the explicit removal path. Cleaning a folder with no
download directory succeeds quietly.`
	MsgCleaned = "Removed %s"
)

// NewCommand creates the clean command
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clean [folder]",
		Short: MsgShort,
		Long:  MsgLong,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder := "."
			if len(args) == 1 {
				folder = args[0]
			}

			cfg, err := settings.Load()
			if err != nil {
				return err
			}

			removed, err := core.CleanProject(folder, cfg)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(),
				style.Success.Render(fmt.Sprintf(MsgCleaned, removed)))
			return nil
		},
	}
}
