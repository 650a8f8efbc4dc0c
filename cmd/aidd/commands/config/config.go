package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/aidd/pkg/errors"
	"github.com/arthur-debert/aidd/pkg/project"
)

// Message constants
const (
	MsgShort    = "Read or write the persisted project config"
	MsgGetShort = "Print the value of a config key"
	MsgSetShort = "Set a config key, preserving other keys"
)

// NewCommand creates the config command group
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgShort,
		Long: `Config reads and writes ` + project.ConfigFileName + ` in the current
directory. Writes merge: the named key is added or overwritten, other keys
are preserved. A missing file is created on first write.`,
	}

	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newSetCmd())

	return cmd
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: MsgGetShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := project.ReadConfig(".")
			value, ok := cfg[args[0]]
			if !ok {
				return errors.Newf(errors.ErrNotFound,
					"key %q is not set in %s", args[0], project.ConfigFileName)
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: MsgSetShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return project.WriteConfig(".", map[string]interface{}{
				args[0]: args[1],
			})
		},
	}
}
