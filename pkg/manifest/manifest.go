// Package manifest parses, verifies and executes SCAFFOLD-MANIFEST.yml, the
// ordered list of setup steps shipped with a scaffold.
package manifest

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/aidd/pkg/errors"
)

// FileName is the fixed manifest filename inside a scaffold
const FileName = "SCAFFOLD-MANIFEST.yml"

// Step is one executable instruction. Exactly one of Run or Extension is
// set: Run is a shell-style command, Extension names an exported function of
// the scaffold's JS extension.
type Step struct {
	Name            string `yaml:"name"`
	Run             string `yaml:"run,omitempty"`
	Extension       string `yaml:"extension,omitempty"`
	ContinueOnError bool   `yaml:"continue_on_error,omitempty"`
}

// Manifest is the parsed scaffold manifest
type Manifest struct {
	Name        string `yaml:"name,omitempty"`
	Description string `yaml:"description,omitempty"`
	Steps       []Step `yaml:"steps,omitempty"`
}

// Load reads and parses the manifest at path. Parsing never touches the
// target directory: a malformed manifest fails here, before any step runs.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrManifestMissing, "manifest not found at %s", path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read manifest at %s", path)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestInvalid,
			"manifest at %s is not valid YAML", path)
	}

	// Shape check up front: a bad step must fail here, never mid-run after
	// earlier steps have already mutated the target folder.
	for i, step := range m.Steps {
		if (step.Run == "") == (step.Extension == "") {
			return nil, errors.Newf(errors.ErrManifestInvalid,
				"step %d (%q) in %s must declare exactly one of run or extension",
				i+1, step.Name, path)
		}
	}

	return &m, nil
}
