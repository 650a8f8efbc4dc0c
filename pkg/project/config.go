// Package project manages the per-project configuration persisted at a
// well-known path in the working directory.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	koanfjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/aidd/pkg/errors"
	"github.com/arthur-debert/aidd/pkg/logging"
)

// ConfigFileName is the fixed name of the persisted project config
const ConfigFileName = "aidd.config.json"

// Key under which the preferred scaffold type is persisted
const KeyScaffoldType = "scaffoldType"

// ConfigPath returns the config file path for a project directory
func ConfigPath(dir string) string {
	return filepath.Join(dir, ConfigFileName)
}

// ReadConfig loads the persisted config from dir. A missing or malformed
// file resolves to an empty mapping, never an error: reads are best-effort.
func ReadConfig(dir string) map[string]interface{} {
	logger := logging.GetLogger("project.config")

	path := ConfigPath(dir)
	if _, err := os.Stat(path); err != nil {
		return map[string]interface{}{}
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), koanfjson.Parser()); err != nil {
		logger.Debug().Err(err).Str("path", path).Msg("Ignoring malformed project config")
		return map[string]interface{}{}
	}

	return k.Raw()
}

// WriteConfig merges values into the persisted config at dir: new keys are
// added, existing keys overwritten, untouched keys preserved. The file is
// created on first write. Write failures are not suppressed.
func WriteConfig(dir string, values map[string]interface{}) error {
	merged := ReadConfig(dir)
	for key, value := range values {
		merged[key] = value
	}

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigWrite, "failed to encode project config")
	}
	data = append(data, '\n')

	path := ConfigPath(dir)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "failed to write project config to %s", path)
	}

	return nil
}

// ScaffoldType returns the persisted scaffold type for dir, or "" when none
// is recorded.
func ScaffoldType(dir string) string {
	cfg := ReadConfig(dir)
	if v, ok := cfg[KeyScaffoldType].(string); ok {
		return v
	}
	return ""
}
