// Package moor keeps a single local backend server process moored to a
// desktop application's lifetime.
//
// A Supervisor owns at most one server process. EnsureStarted launches the
// configured server command unless a process is already owned or a server is
// already reachable on the configured endpoint; Shutdown terminates the owned
// process and forgets it. Both operations are idempotent, so a host can call
// them from every lifecycle hook its UI toolkit offers (window close,
// application exit) without coordinating which hook fires first, or whether
// both fire.
//
// # Basic Usage
//
//	sup := moor.NewSupervisor(
//	    moor.WithDataDir(filepath.Join(cacheDir, "moordesk")),
//	)
//
//	// Application-setup hook.
//	if err := sup.EnsureStarted(ctx); err != nil {
//	    slog.Warn("backend not started", "error", err)
//	    // The UI proceeds regardless; the backend simply stays unreachable.
//	}
//
//	// Window-close and application-exit hooks. Safe to call from both.
//	defer sup.Shutdown()
//
// The supervisor is advisory: probe, spawn, and terminate failures are
// logged and returned to the caller, but none of them should abort the host
// application's startup or shutdown.
//
// # Known Limitations
//
// Liveness is inferred from a single TCP connection attempt. If EnsureStarted
// probes while an externally started server is still binding its port, the
// probe reads as unreachable and a duplicate server may be spawned. The spawn
// lock (held per data directory) narrows this window between two clients
// using the same data directory, but does not close it against out-of-band
// servers. Shutdown is best-effort: the handle is cleared even when the
// terminate signal fails, so a server that ignores its process group signals
// may be orphaned.
package moor
