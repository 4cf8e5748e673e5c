// Moordesk is a desktop client that keeps the moord backend server running
// for as long as the window is open.
package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/moorlabs/moor"
	"github.com/moorlabs/moor/internal/ui"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	sup := moor.NewSupervisor(moor.WithDataDir(dataDir()))

	// Application-setup hook: make sure the backend is up before the window
	// shows. Failures are advisory — the UI works without a backend, it just
	// renders it as unreachable.
	if err := sup.EnsureStarted(context.Background()); err != nil {
		slog.Warn("backend not started", "error", err)
	}

	ui.New(sup).Run()

	// Application-exit hook. A no-op when the window-close intercept already
	// shut the backend down.
	if err := sup.Shutdown(); err != nil {
		slog.Warn("backend shutdown on exit failed", "error", err)
	}
}

// dataDir returns the per-user directory for the backend's log file and the
// spawn lock, falling back to the system temp directory when the OS reports
// no cache location.
func dataDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), moor.DefaultDataDirName)
	}
	return filepath.Join(base, "moordesk")
}
