package lockfile

import (
	"fmt"
	"log/slog"

	"github.com/gofrs/flock"
)

// TryAcquire attempts a non-blocking exclusive lock on path. It returns the
// lock and true when acquired, or nil and false when another process already
// holds it. The caller must Release the returned lock when the guarded work
// is finished.
func TryAcquire(path string) (*flock.Flock, bool, error) {
	fl := flock.New(path)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, false, fmt.Errorf("acquire file lock %s: %w", path, err)
	}
	if !locked {
		return nil, false, nil
	}
	return fl, true, nil
}

// Release releases the lock and closes its file descriptor. Safe to call
// with a nil lock. The lock file is intentionally left on disk: removing it
// could invalidate a lock concurrently acquired by another process. Errors
// are logged at debug level; this is best-effort cleanup.
func Release(logger *slog.Logger, fl *flock.Flock) {
	if fl == nil {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}
	// Close calls Unlock internally, so no explicit Unlock is needed.
	if err := fl.Close(); err != nil {
		logger.Debug("release file lock", "path", fl.Path(), "error", err)
	}
}
