package create

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/aidd/pkg/core"
	"github.com/arthur-debert/aidd/pkg/settings"
	"github.com/arthur-debert/aidd/pkg/style"
)

// NewCommand creates the create command
func NewCommand() *cobra.Command {
	var scaffoldsRoot string

	cmd := &cobra.Command{
		Use:     "create [type] <folder>",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, folder, err := core.DisambiguateArgs(args)
			if err != nil {
				return err
			}

			cfg, err := settings.Load()
			if err != nil {
				return err
			}

			packageRoot := scaffoldsRoot
			if packageRoot == "" {
				packageRoot = defaultPackageRoot()
			}

			result, err := core.CreateProject(cmd.Context(), core.CreateOptions{
				Type:        typ,
				Folder:      folder,
				PackageRoot: packageRoot,
				Settings:    cfg,
				Log: func(msg string) {
					fmt.Fprint(cmd.OutOrStdout(), style.RenderMarkdown(msg))
				},
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(),
				style.Success.Render(fmt.Sprintf(MsgCreated, result.Folder)))
			if result.CleanupHint != "" {
				fmt.Fprintln(cmd.OutOrStdout(),
					style.Hint.Render(fmt.Sprintf(MsgCleanupHint, result.CleanupHint)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scaffoldsRoot, "scaffolds-root", "", MsgFlagScaffoldsRoot)

	return cmd
}

// defaultPackageRoot is the directory holding the aidd installation, under
// which the built-in scaffolds directory lives.
func defaultPackageRoot() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}
