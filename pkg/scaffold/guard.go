package scaffold

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/aidd/pkg/errors"
)

// guardNamed resolves a named scaffold to its directory under root,
// rejecting names that resolve to the root itself or escape it. The checks
// run before any filesystem access.
func guardNamed(root, name string) (string, error) {
	candidate := filepath.Join(root, name)

	rel, err := filepath.Rel(root, candidate)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrPathTraversal,
			"cannot resolve scaffold name %q against %s", name, root)
	}

	if rel == "" || rel == "." {
		return "", errors.Newf(errors.ErrPathTraversal,
			"scaffold name %q points at the scaffolds root itself, not a scaffold", name).
			WithDetail("name", name)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.ErrPathTraversal,
			"scaffold name %q escapes the scaffolds root %s", name, root).
			WithDetail("name", name)
	}
	// Rel never returns an absolute path for inputs under root, guarded anyway.
	if filepath.IsAbs(rel) {
		return "", errors.Newf(errors.ErrPathTraversal,
			"scaffold name %q escapes the scaffolds root %s", name, root).
			WithDetail("name", name)
	}

	return candidate, nil
}
