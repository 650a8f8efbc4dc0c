// Package scaffold resolves a scaffold identifier to the on-disk locations
// of its three artifacts: the manifest, the optional JS extension entry
// point, and the README.
package scaffold

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/aidd/pkg/errors"
	"github.com/arthur-debert/aidd/pkg/logging"
	"github.com/arthur-debert/aidd/pkg/settings"
)

// ResolvedPaths locates the scaffold artifacts after resolution. Downloaded
// reports whether they live in the ephemeral download directory, which
// governs the later cleanup hint.
type ResolvedPaths struct {
	ExtensionJSPath string
	ManifestPath    string
	ReadmePath      string
	Downloaded      bool
}

// ReleaseResolver turns a bare owner/repo reference into a tarball URL
type ReleaseResolver interface {
	ResolveLatestRelease(ctx context.Context, owner, repo string) (string, error)
}

// Downloader fetches url and extracts it into dest, which the caller has
// already created empty.
type Downloader interface {
	Download(ctx context.Context, url, dest string) error
}

// LogFunc receives user-facing output such as the scaffold README
type LogFunc func(msg string)

// ConfigTypeFunc returns the scaffold type persisted in the project config,
// or "" when none is recorded.
type ConfigTypeFunc func() string

// Resolver composes classification, the path guard, the trust gate, release
// lookup and download into a single resolution entry point. All I/O
// collaborators are injected so the pipeline is testable without a terminal
// or network.
type Resolver struct {
	Settings    *settings.Settings
	PackageRoot string

	Confirmer  Confirmer
	Downloader Downloader
	Releases   ReleaseResolver
	Log        LogFunc
	ConfigType ConfigTypeFunc
}

// Resolve resolves typ (or the configured fallback chain when typ is empty)
// against the target folder and returns the artifact paths.
func (r *Resolver) Resolve(ctx context.Context, typ, folder string) (ResolvedPaths, error) {
	logger := logging.GetLogger("scaffold.resolver")

	effective := r.effectiveType(typ)
	source, err := Classify(effective)
	if err != nil {
		return ResolvedPaths{}, err
	}
	logger.Debug().
		Str("type", effective).
		Str("kind", string(source.Kind)).
		Msg("Classified scaffold source")

	var paths ResolvedPaths
	switch source.Kind {
	case SourceHTTPURI, SourceBareRepo:
		paths, err = r.resolveRemote(ctx, source, folder)
	case SourceFileURI:
		dir := strings.TrimPrefix(source.Value, "file://")
		paths = r.artifactPaths(dir, false)
	case SourceNamed:
		paths, err = r.resolveNamed(source.Value)
	default:
		err = errors.Newf(errors.ErrInternal, "unhandled source kind %q", source.Kind)
	}
	if err != nil {
		return ResolvedPaths{}, err
	}

	// Fail now with an actionable message instead of a generic open error
	// deep inside the runner.
	if _, err := os.Stat(paths.ManifestPath); err != nil {
		return ResolvedPaths{}, errors.Newf(errors.ErrManifestMissing,
			"manifest not found at %s, check that %s contains it",
			paths.ManifestPath, source.Value).
			WithDetail("source", source.Value)
	}

	r.emitReadme(paths.ReadmePath)

	return paths, nil
}

// effectiveType applies the precedence chain: explicit argument, environment
// override, persisted project config, built-in default.
func (r *Resolver) effectiveType(typ string) string {
	if typ != "" {
		return typ
	}
	if r.Settings.TypeOverride != "" {
		return r.Settings.TypeOverride
	}
	if r.ConfigType != nil {
		if persisted := r.ConfigType(); persisted != "" {
			return persisted
		}
	}
	return r.Settings.Scaffold.Type
}

func (r *Resolver) resolveNamed(name string) (ResolvedPaths, error) {
	root := filepath.Join(r.PackageRoot, r.Settings.Scaffold.Dir)
	dir, err := guardNamed(root, name)
	if err != nil {
		return ResolvedPaths{}, err
	}
	return r.artifactPaths(dir, false), nil
}

func (r *Resolver) resolveRemote(ctx context.Context, source Source, folder string) (ResolvedPaths, error) {
	logger := logging.GetLogger("scaffold.resolver")

	prompt := fmt.Sprintf("Download and run scaffold from %s?", source.Value)
	confirmed, err := r.Confirmer.Confirm(prompt)
	if err != nil {
		return ResolvedPaths{}, errors.Wrapf(err, errors.ErrCancelled,
			"confirmation for %s was interrupted", source.Value)
	}
	if !confirmed {
		return ResolvedPaths{}, errors.Newf(errors.ErrCancelled,
			"download of %s was not confirmed", source.Value).
			WithDetail("source", source.Value)
	}

	tarballURL := source.Value
	if source.Kind == SourceBareRepo {
		tarballURL, err = r.Releases.ResolveLatestRelease(ctx, source.Owner, source.Repo)
		if err != nil {
			return ResolvedPaths{}, err
		}
		logger.Debug().Str("tarball", tarballURL).Msg("Resolved latest release")
	}

	workDir := filepath.Join(folder, filepath.FromSlash(r.Settings.Scaffold.WorkDir))
	if err := os.RemoveAll(workDir); err != nil {
		return ResolvedPaths{}, errors.Wrapf(err, errors.ErrDirCreate,
			"failed to clear download directory %s", workDir)
	}
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return ResolvedPaths{}, errors.Wrapf(err, errors.ErrDirCreate,
			"failed to create download directory %s", workDir)
	}

	if err := r.Downloader.Download(ctx, tarballURL, workDir); err != nil {
		return ResolvedPaths{}, err
	}

	return r.artifactPaths(workDir, true), nil
}

func (r *Resolver) artifactPaths(dir string, downloaded bool) ResolvedPaths {
	return ResolvedPaths{
		ExtensionJSPath: filepath.Join(dir, filepath.FromSlash(r.Settings.Scaffold.Extension)),
		ManifestPath:    filepath.Join(dir, r.Settings.Scaffold.Manifest),
		ReadmePath:      filepath.Join(dir, r.Settings.Scaffold.Readme),
		Downloaded:      downloaded,
	}
}

// emitReadme pushes the README through the log callback when one exists.
// Best-effort UX, never an error.
func (r *Resolver) emitReadme(path string) {
	if r.Log == nil {
		return
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return
	}
	r.Log(string(content))
}
