package moor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"github.com/moorlabs/moor/internal/lockfile"
	"github.com/moorlabs/moor/internal/netutil"
	"github.com/moorlabs/moor/internal/process"
)

// spawnLockName is the file inside the data directory that guards the spawn
// decision across desktop client instances sharing that directory.
const spawnLockName = "spawn.lock"

// Compile-time interface satisfaction check.
var _ ServerProcess = (*process.Process)(nil)

// Supervisor guarantees that at most one managed server process exists and
// that it is terminated on application shutdown regardless of which shutdown
// path fires. Construct one with NewSupervisor and pass it (by pointer) into
// the host's lifecycle hooks; there is no hidden package-level instance.
//
// Both operations serialize on an internal mutex, so a shutdown racing with
// a start can never observe or produce a torn handle. The supervisor is safe
// for concurrent use.
type Supervisor struct {
	cfg supervisorConfig

	// launch and probe are seams replaced by tests (see export_test.go).
	// They default to spawning the configured command via internal/process
	// and to the TCP probe in internal/netutil.
	launch func() (ServerProcess, error)
	probe  func(ctx context.Context) bool

	mu        sync.Mutex
	proc      ServerProcess // nil while no server is owned
	spawnLock *flock.Flock  // held for as long as proc is owned
}

// NewSupervisor creates a Supervisor with the given options applied over the
// package defaults. It performs no I/O; the first side effects happen in
// EnsureStarted.
//
// Panics if any option receives an invalid value. See the individual With*
// functions for constraints.
func NewSupervisor(opts ...Option) *Supervisor {
	cfg := defaultSupervisorConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	s := &Supervisor{cfg: cfg}
	s.launch = s.launchServer
	s.probe = func(ctx context.Context) bool {
		return netutil.Probe(ctx, s.cfg.Endpoint, s.cfg.ProbeTimeout)
	}
	return s
}

// Endpoint returns the configured server endpoint (host:port). Hosts that
// want to display backend reachability can probe it themselves; the
// supervisor exposes no status query beyond this address.
func (s *Supervisor) Endpoint() string {
	return s.cfg.Endpoint
}

// EnsureStarted makes sure a backend server is available, spawning one only
// when necessary. It is idempotent: when a process is already owned, when a
// server is already reachable on the endpoint (started earlier or
// out-of-band), or when another client instance holds the spawn lock for the
// same data directory, it logs the reason and returns nil without spawning.
//
// The probe is a single point-in-time TCP connection attempt with no
// retries; a server still binding its port reads as unreachable, which is a
// documented limitation rather than an error.
//
// A spawn failure leaves the supervisor owning nothing (a later call will
// try again) and returns an error matching ErrSpawnFailed. Hosts should log
// it and proceed — the supervisor is advisory, not a startup dependency.
func (s *Supervisor) EnsureStarted(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := Logger()
	if s.proc != nil {
		log.Info("server already under supervision; not spawning", "pid", s.proc.Pid())
		return nil
	}
	if s.probe(ctx) {
		log.Info("server already reachable; not spawning", "endpoint", s.cfg.Endpoint)
		return nil
	}
	log.Info("server unreachable; spawning",
		"endpoint", s.cfg.Endpoint, "binary", s.cfg.ServerBinary)

	if err := os.MkdirAll(s.cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("%w: create data dir: %w", ErrSpawnFailed, err)
	}
	fl, acquired, err := lockfile.TryAcquire(filepath.Join(s.cfg.DataDir, spawnLockName))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSpawnFailed, err)
	}
	if !acquired {
		log.Info("spawn lock held by another client instance; not spawning",
			"dir", s.cfg.DataDir)
		return nil
	}

	proc, err := s.launch()
	if err != nil {
		lockfile.Release(log, fl)
		log.Error("server spawn failed; continuing without a managed server", "error", err)
		return fmt.Errorf("%w: %w", ErrSpawnFailed, err)
	}
	s.proc = proc
	s.spawnLock = fl
	log.Info("server started", "pid", proc.Pid())
	return nil
}

// Shutdown terminates the owned server process, if any. With nothing owned
// it is a no-op, which makes it safe to call from multiple exit hooks in any
// order. The contract is best-effort terminate, then forget: the handle is
// cleared on every path, including terminate failure, so a second call never
// re-signals a process. A terminate failure is logged and returned as an
// error matching ErrTerminateFailed.
func (s *Supervisor) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := Logger()
	if s.proc == nil {
		log.Debug("shutdown requested with no owned server; nothing to do")
		return nil
	}

	pid := s.proc.Pid()
	log.Info("shutting down server", "pid", pid)
	err := s.proc.Terminate()
	if err != nil {
		log.Warn("server terminate failed; process may be orphaned",
			"pid", pid, "error", err)
	} else {
		log.Info("server shut down", "pid", pid)
	}

	// Forget the handle regardless of the terminate outcome. A handle to a
	// process that failed to terminate must not be retried or leaked into an
	// inconsistent state.
	s.proc = nil
	lockfile.Release(log, s.spawnLock)
	s.spawnLock = nil

	if err != nil {
		return fmt.Errorf("%w: pid %d: %w", ErrTerminateFailed, pid, err)
	}
	return nil
}

// launchServer is the default launch seam: it spawns the configured command
// with output redirected into the data directory.
func (s *Supervisor) launchServer() (ServerProcess, error) {
	return process.Start(process.Config{
		Binary:      s.cfg.ServerBinary,
		Args:        s.cfg.ServerArgs,
		DataDir:     s.cfg.DataDir,
		StopTimeout: s.cfg.StopTimeout,
		Logger:      Logger(),
	})
}
