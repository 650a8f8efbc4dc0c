// Package core ties resolution, verification and execution together for the
// end-to-end "create a project from a scaffold" flow.
package core

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/arthur-debert/aidd/pkg/download"
	"github.com/arthur-debert/aidd/pkg/errors"
	"github.com/arthur-debert/aidd/pkg/github"
	"github.com/arthur-debert/aidd/pkg/logging"
	"github.com/arthur-debert/aidd/pkg/manifest"
	"github.com/arthur-debert/aidd/pkg/project"
	"github.com/arthur-debert/aidd/pkg/scaffold"
	"github.com/arthur-debert/aidd/pkg/settings"
)

// CreateOptions configures CreateProject. Settings is required; the I/O
// collaborators default to the real implementations when nil.
type CreateOptions struct {
	Type        string
	Folder      string
	PackageRoot string
	Settings    *settings.Settings

	Confirmer  scaffold.Confirmer
	Downloader scaffold.Downloader
	Releases   scaffold.ReleaseResolver
	Log        scaffold.LogFunc
}

// CreateResult reports a completed create run
type CreateResult struct {
	RunID  string
	Folder string
	Paths  scaffold.ResolvedPaths

	// CleanupHint is the absolute path of the ephemeral download directory
	// when the scaffold was downloaded, "" otherwise. Absolute so it stays
	// valid regardless of later working-directory changes.
	CleanupHint string
}

// CreateProject creates the target folder, resolves the scaffold and runs
// its manifest against the folder.
func CreateProject(ctx context.Context, opts CreateOptions) (*CreateResult, error) {
	runID := uuid.NewString()
	logger := logging.GetLogger("core.create").With().Str("run", runID).Logger()

	if opts.Folder == "" {
		return nil, errors.New(errors.ErrFolderMissing,
			"a target folder is required: aidd create [type] <folder>")
	}

	if err := os.MkdirAll(opts.Folder, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate,
			"failed to create target folder %s", opts.Folder)
	}

	resolver := &scaffold.Resolver{
		Settings:    opts.Settings,
		PackageRoot: opts.PackageRoot,
		Confirmer:   opts.Confirmer,
		Downloader:  opts.Downloader,
		Releases:    opts.Releases,
		Log:         opts.Log,
		ConfigType:  func() string { return project.ScaffoldType(".") },
	}
	if resolver.Confirmer == nil {
		resolver.Confirmer = scaffold.NewPromptConfirmer()
	}
	if resolver.Downloader == nil {
		resolver.Downloader = download.NewFetcher(opts.Settings)
	}
	if resolver.Releases == nil {
		resolver.Releases = github.NewClient(opts.Settings)
	}

	paths, err := resolver.Resolve(ctx, opts.Type, opts.Folder)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Str("manifest", paths.ManifestPath).
		Bool("downloaded", paths.Downloaded).
		Msg("Scaffold resolved")

	// Load parses the whole manifest before the first step runs, so a
	// malformed one never partially mutates the folder.
	m, err := manifest.Load(paths.ManifestPath)
	if err != nil {
		return nil, err
	}

	runner := &manifest.Runner{ExtensionJSPath: paths.ExtensionJSPath}
	if err := runner.Run(ctx, m, opts.Folder); err != nil {
		return nil, err
	}

	result := &CreateResult{RunID: runID, Folder: opts.Folder, Paths: paths}
	if paths.Downloaded {
		hint, err := filepath.Abs(workDirRoot(opts.Folder, opts.Settings))
		if err == nil {
			result.CleanupHint = hint
		}
	}

	logger.Info().Str("folder", opts.Folder).Msg("Project created")
	return result, nil
}

// DisambiguateArgs resolves the two-positional-argument ambiguity of the
// create command: one value is the folder alone, two are type then folder.
// A lone value shaped like a secure or local source URI is a missing-folder
// error rather than a directory named after a mangled URL.
func DisambiguateArgs(args []string) (typ, folder string, err error) {
	switch len(args) {
	case 1:
		if strings.HasPrefix(args[0], "https://") || strings.HasPrefix(args[0], "file://") {
			return "", "", errors.Newf(errors.ErrFolderMissing,
				"%q looks like a scaffold source, add a target folder: aidd create %s <folder>",
				args[0], args[0])
		}
		return "", args[0], nil
	case 2:
		return args[0], args[1], nil
	default:
		return "", "", errors.New(errors.ErrFolderMissing,
			"a target folder is required: aidd create [type] <folder>")
	}
}

// workDirRoot is the top of the scoped download tree for folder, the path
// named by the cleanup hint.
func workDirRoot(folder string, s *settings.Settings) string {
	workDir := filepath.FromSlash(s.Scaffold.WorkDir)
	if first := strings.SplitN(workDir, string(filepath.Separator), 2)[0]; first != "" {
		return filepath.Join(folder, first)
	}
	return filepath.Join(folder, workDir)
}
