package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed embedded/manifest.schema.json
var manifestSchema []byte

// VerifyResult collects every problem found in a manifest so they can be
// reported together.
type VerifyResult struct {
	Valid  bool
	Errors []string
}

// Verify statically checks the manifest at manifestPath. extensionJSPath is
// the scaffold's extension entry point: a manifest with zero steps is only
// acceptable when that file exists, since it may legitimately delegate all
// behavior to code.
func Verify(manifestPath, extensionJSPath string) VerifyResult {
	if _, err := os.Stat(manifestPath); err != nil {
		return invalid(fmt.Sprintf("manifest not found at %s", manifestPath))
	}

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return invalid(fmt.Sprintf("failed to read manifest at %s: %v", manifestPath, err))
	}

	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return invalid(fmt.Sprintf("manifest is not valid YAML: %v", err))
	}

	var problems []string
	if err := validateSchema(doc); err != nil {
		problems = append(problems, fmt.Sprintf("manifest structure is invalid: %v", err))
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		problems = append(problems, fmt.Sprintf("manifest does not decode into steps: %v", err))
	} else if len(m.Steps) == 0 {
		if _, err := os.Stat(extensionJSPath); err != nil {
			problems = append(problems,
				"manifest has no steps and no extension entry point exists: this scaffold would do nothing")
		}
	}

	return VerifyResult{Valid: len(problems) == 0, Errors: problems}
}

// validateSchema checks the decoded document against the embedded JSON
// schema. The document round-trips through JSON so YAML-specific types
// normalize to what the validator expects.
func validateSchema(doc interface{}) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("inmemory://manifest.schema.json", bytes.NewReader(manifestSchema)); err != nil {
		return fmt.Errorf("add schema resource: %w", err)
	}
	compiled, err := compiler.Compile("inmemory://manifest.schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("normalize manifest: %w", err)
	}
	var normalized interface{}
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return fmt.Errorf("normalize manifest: %w", err)
	}

	return compiled.Validate(normalized)
}

func invalid(msg string) VerifyResult {
	return VerifyResult{Valid: false, Errors: []string{msg}}
}
