// Package settings loads the aidd configuration: embedded defaults layered
// with environment overrides. The environment is read exactly once, here, and
// the resulting value is threaded through the rest of the pipeline.
package settings

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

//go:embed embedded/aidd.toml
var defaultConfig []byte

// Environment variables consumed by aidd.
const (
	EnvScaffoldType = "AIDD_SCAFFOLD_TYPE"
	EnvGitHubToken  = "GITHUB_TOKEN"
)

// Scaffold holds scaffold resolution settings
type Scaffold struct {
	Type      string `koanf:"type"`
	Dir       string `koanf:"dir"`
	Manifest  string `koanf:"manifest"`
	Extension string `koanf:"extension"`
	Readme    string `koanf:"readme"`
	WorkDir   string `koanf:"work_dir"`
}

// GitHub holds hosting-service settings
type GitHub struct {
	APIURL string   `koanf:"api_url"`
	Token  string   `koanf:"token"`
	Hosts  []string `koanf:"hosts"`
}

// Settings is the full aidd configuration, built once per invocation
type Settings struct {
	Scaffold Scaffold `koanf:"scaffold"`
	GitHub   GitHub   `koanf:"github"`

	// TypeOverride is the AIDD_SCAFFOLD_TYPE value, distinct from the
	// built-in default so the resolver can apply its precedence chain.
	TypeOverride string `koanf:"-"`
}

// Load builds Settings from the embedded defaults and the process environment
func Load() (*Settings, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. AIDD_* environment overrides (AIDD_SCAFFOLD_TYPE -> scaffold.type).
	// Empty values are skipped so an unset-but-exported variable does not
	// clobber a default.
	if err := k.Load(env.ProviderWithValue("AIDD_", ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		mapped := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, "AIDD_")), "_", ".")
		return mapped, value
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment overrides: %w", err)
	}

	// 3. Hosting credential, if present
	if token := os.Getenv(EnvGitHubToken); token != "" {
		if err := k.Load(confmap.Provider(map[string]interface{}{
			"github.token": token,
		}, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load credential: %w", err)
		}
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	s.TypeOverride = os.Getenv(EnvScaffoldType)

	return &s, nil
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}
