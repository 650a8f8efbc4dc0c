package core

import (
	"path/filepath"

	"github.com/arthur-debert/aidd/pkg/manifest"
	"github.com/arthur-debert/aidd/pkg/settings"
)

// VerifyScaffoldDir statically checks the scaffold in dir without running
// anything: manifest presence, parseability, structure, and the
// zero-steps-without-extension case.
func VerifyScaffoldDir(dir string, s *settings.Settings) manifest.VerifyResult {
	manifestPath := filepath.Join(dir, s.Scaffold.Manifest)
	extensionPath := filepath.Join(dir, filepath.FromSlash(s.Scaffold.Extension))
	return manifest.Verify(manifestPath, extensionPath)
}
