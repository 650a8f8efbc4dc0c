package manifest

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/arthur-debert/aidd/pkg/errors"
	"github.com/arthur-debert/aidd/pkg/logging"
)

// Runner executes manifest steps in order against a target folder. Steps run
// with the installer's own privileges: the remote trust gate is the only
// barrier before remote code executes here.
type Runner struct {
	// ExtensionJSPath is the scaffold's JS entry point for extension steps
	ExtensionJSPath string
	// Stdout and Stderr receive step output, defaulting to the process's own
	Stdout io.Writer
	Stderr io.Writer
}

func (r *Runner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *Runner) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}

// Run executes the manifest's steps one at a time, stopping at the first
// fatal failure. A failed run can leave folder partially populated; that is
// surfaced to the caller, never rolled back.
func (r *Runner) Run(ctx context.Context, m *Manifest, folder string) error {
	logger := logging.GetLogger("manifest.runner")

	for i, step := range m.Steps {
		logger.Info().
			Int("step", i+1).
			Int("total", len(m.Steps)).
			Str("name", step.Name).
			Msg("Running step")

		err := r.runStep(ctx, step, folder)
		if err == nil {
			continue
		}
		if step.ContinueOnError {
			logger.Warn().Err(err).Str("name", step.Name).Msg("Step failed, continuing")
			continue
		}
		return errors.Wrapf(err, errors.ErrStepExecute,
			"step %q failed, %s may be partially populated", step.Name, folder)
	}

	return nil
}

func (r *Runner) runStep(ctx context.Context, step Step, folder string) error {
	var cmd *exec.Cmd
	switch {
	case step.Run != "":
		cmd = exec.CommandContext(ctx, "sh", "-c", step.Run)
	case step.Extension != "":
		cmd = exec.CommandContext(ctx, "node", r.ExtensionJSPath, step.Extension)
	default:
		return errors.Newf(errors.ErrManifestInvalid,
			"step %q declares neither a command nor an extension function", step.Name)
	}

	cmd.Dir = folder
	cmd.Stdout = r.stdout()
	cmd.Stderr = r.stderr()

	return cmd.Run()
}
