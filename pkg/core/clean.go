package core

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/aidd/pkg/errors"
	"github.com/arthur-debert/aidd/pkg/logging"
	"github.com/arthur-debert/aidd/pkg/settings"
)

// CleanProject removes the scoped download directory under folder. A failed
// remote run leaves that directory in place for inspection; this is the
// explicit removal path. Returns the absolute path that was removed, and
// succeeds when nothing was there.
func CleanProject(folder string, s *settings.Settings) (string, error) {
	logger := logging.GetLogger("core.clean")

	target, err := filepath.Abs(workDirRoot(folder, s))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess,
			"cannot resolve download directory under %s", folder)
	}

	if err := os.RemoveAll(target); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess,
			"failed to remove %s", target)
	}

	logger.Debug().Str("path", target).Msg("Download directory removed")
	return target, nil
}
