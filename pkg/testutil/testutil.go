// Package testutil provides fixture helpers shared by the aidd test suites.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/aidd/pkg/settings"
)

// DefaultManifest is a minimal valid manifest used by fixtures
const DefaultManifest = `name: fixture
steps:
  - name: touch marker
    run: "true"
`

// TestSettings returns Settings matching the embedded defaults, without
// reading the environment.
func TestSettings() *settings.Settings {
	return &settings.Settings{
		Scaffold: settings.Scaffold{
			Type:      "next-shadcn",
			Dir:       "scaffolds",
			Manifest:  "SCAFFOLD-MANIFEST.yml",
			Extension: "bin/extension.js",
			Readme:    "README.md",
			WorkDir:   ".aidd/scaffold",
		},
		GitHub: settings.GitHub{
			APIURL: "https://api.github.com",
			Hosts: []string{
				"api.github.com",
				"github.com",
				"codeload.github.com",
				"objects.githubusercontent.com",
			},
		},
	}
}

// ScaffoldSpec describes a scaffold fixture to create
type ScaffoldSpec struct {
	Manifest      string // manifest content, DefaultManifest when ""
	NoManifest    bool
	WithExtension bool
	Readme        string // README content, omitted when ""
}

// CreateScaffold writes a scaffold fixture named name under root/scaffolds
// and returns its directory.
func CreateScaffold(t *testing.T, root, name string, spec ScaffoldSpec) string {
	t.Helper()

	dir := filepath.Join(root, "scaffolds", name)
	require.NoError(t, os.MkdirAll(dir, 0755))

	if !spec.NoManifest {
		content := spec.Manifest
		if content == "" {
			content = DefaultManifest
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, "SCAFFOLD-MANIFEST.yml"), []byte(content), 0644))
	}

	if spec.WithExtension {
		binDir := filepath.Join(dir, "bin")
		require.NoError(t, os.MkdirAll(binDir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(binDir, "extension.js"),
			[]byte("module.exports = {};\n"), 0644))
	}

	if spec.Readme != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte(spec.Readme), 0644))
	}

	return dir
}
