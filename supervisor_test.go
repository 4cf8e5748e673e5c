package moor_test

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/moorlabs/moor"
)

// fakeProcess is a test double for moor.ServerProcess that counts terminate
// signals.
type fakeProcess struct {
	pid          int
	terminations atomic.Int64
	terminateErr error
}

func (f *fakeProcess) Pid() int { return f.pid }

func (f *fakeProcess) Terminate() error {
	f.terminations.Add(1)
	return f.terminateErr
}

// fakeLauncher records spawn attempts and hands out fresh fakeProcess
// handles, or a configured error.
type fakeLauncher struct {
	mu           sync.Mutex
	spawned      []*fakeProcess
	attempts     int
	err          error
	terminateErr error
}

func (l *fakeLauncher) launch() (moor.ServerProcess, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.attempts++
	if l.err != nil {
		return nil, l.err
	}
	p := &fakeProcess{pid: 1000 + len(l.spawned), terminateErr: l.terminateErr}
	l.spawned = append(l.spawned, p)
	return p, nil
}

func (l *fakeLauncher) spawnCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.spawned)
}

func (l *fakeLauncher) attemptCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.attempts
}

func (l *fakeLauncher) processes() []*fakeProcess {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*fakeProcess(nil), l.spawned...)
}

// newTestSupervisor builds a Supervisor with an isolated data directory, a
// stubbed probe result, and the given fake launcher.
func newTestSupervisor(t *testing.T, reachable bool, l *fakeLauncher) *moor.Supervisor {
	t.Helper()
	sup := moor.NewSupervisor(moor.WithDataDir(t.TempDir()))
	sup.SetProbeForTesting(func(context.Context) bool { return reachable })
	sup.SetLaunchForTesting(l.launch)
	return sup
}

func TestEnsureStarted_SpawnsWhenUnreachable(t *testing.T) {
	t.Parallel()

	l := &fakeLauncher{}
	sup := newTestSupervisor(t, false, l)

	if err := sup.EnsureStarted(context.Background()); err != nil {
		t.Fatalf("EnsureStarted: %v", err)
	}
	if got := l.spawnCount(); got != 1 {
		t.Errorf("spawn count = %d, want 1", got)
	}
	if !sup.OwnedForTesting() {
		t.Error("supervisor should own a process after spawning")
	}
}

func TestEnsureStarted_Idempotent(t *testing.T) {
	t.Parallel()

	l := &fakeLauncher{}
	sup := newTestSupervisor(t, false, l)

	for i := 0; i < 2; i++ {
		if err := sup.EnsureStarted(context.Background()); err != nil {
			t.Fatalf("EnsureStarted call %d: %v", i+1, err)
		}
	}
	if got := l.spawnCount(); got != 1 {
		t.Errorf("spawn count after two calls = %d, want 1", got)
	}
}

func TestEnsureStarted_DoesNotSpawnWhenReachable(t *testing.T) {
	t.Parallel()

	l := &fakeLauncher{}
	sup := newTestSupervisor(t, true, l)

	if err := sup.EnsureStarted(context.Background()); err != nil {
		t.Fatalf("EnsureStarted: %v", err)
	}
	if got := l.spawnCount(); got != 0 {
		t.Errorf("spawn count = %d, want 0 when a server is already reachable", got)
	}
	if sup.OwnedForTesting() {
		t.Error("supervisor must not own an externally started server")
	}
}

// TestEnsureStarted_RealProbe exercises the default TCP probe path end to
// end: a bound listener suppresses the spawn, and closing it makes the next
// call spawn.
func TestEnsureStarted_RealProbe(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	l := &fakeLauncher{}
	sup := moor.NewSupervisor(
		moor.WithEndpoint(ln.Addr().String()),
		moor.WithDataDir(t.TempDir()),
	)
	sup.SetLaunchForTesting(l.launch)

	if err := sup.EnsureStarted(context.Background()); err != nil {
		t.Fatalf("EnsureStarted with listener bound: %v", err)
	}
	if got := l.spawnCount(); got != 0 {
		t.Fatalf("spawn count with listener bound = %d, want 0", got)
	}

	if err := ln.Close(); err != nil {
		t.Fatalf("close listener: %v", err)
	}
	if err := sup.EnsureStarted(context.Background()); err != nil {
		t.Fatalf("EnsureStarted after listener closed: %v", err)
	}
	if got := l.spawnCount(); got != 1 {
		t.Errorf("spawn count after listener closed = %d, want 1", got)
	}
}

func TestEnsureStarted_SpawnFailureLeavesIdle(t *testing.T) {
	t.Parallel()

	spawnErr := errors.New("no such binary")
	l := &fakeLauncher{err: spawnErr}
	sup := newTestSupervisor(t, false, l)

	err := sup.EnsureStarted(context.Background())
	if !errors.Is(err, moor.ErrSpawnFailed) {
		t.Fatalf("error = %v, want ErrSpawnFailed", err)
	}
	if !errors.Is(err, spawnErr) {
		t.Errorf("error chain should retain the underlying cause, got %v", err)
	}
	if sup.OwnedForTesting() {
		t.Error("supervisor must own nothing after a spawn failure")
	}

	// The failure is terminal for the call, not for the supervisor: a later
	// call tries to spawn again.
	_ = sup.EnsureStarted(context.Background())
	if got := l.attemptCount(); got != 2 {
		t.Errorf("spawn attempts = %d, want 2", got)
	}
}

func TestEnsureStarted_SpawnLockHeldByOtherInstance(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	l1 := &fakeLauncher{}
	sup1 := moor.NewSupervisor(moor.WithDataDir(dir))
	sup1.SetProbeForTesting(func(context.Context) bool { return false })
	sup1.SetLaunchForTesting(l1.launch)

	if err := sup1.EnsureStarted(context.Background()); err != nil {
		t.Fatalf("first instance EnsureStarted: %v", err)
	}

	// A second client instance sharing the data directory must not spawn a
	// duplicate while the first holds the spawn lock, even though its probe
	// cannot yet see the server.
	l2 := &fakeLauncher{}
	sup2 := moor.NewSupervisor(moor.WithDataDir(dir))
	sup2.SetProbeForTesting(func(context.Context) bool { return false })
	sup2.SetLaunchForTesting(l2.launch)

	if err := sup2.EnsureStarted(context.Background()); err != nil {
		t.Fatalf("second instance EnsureStarted: %v", err)
	}
	if got := l2.spawnCount(); got != 0 {
		t.Errorf("second instance spawn count = %d, want 0 while lock is held", got)
	}

	// After the first instance shuts down, the lock is free again.
	if err := sup1.Shutdown(); err != nil {
		t.Fatalf("first instance Shutdown: %v", err)
	}
	if err := sup2.EnsureStarted(context.Background()); err != nil {
		t.Fatalf("second instance EnsureStarted after release: %v", err)
	}
	if got := l2.spawnCount(); got != 1 {
		t.Errorf("second instance spawn count after release = %d, want 1", got)
	}
}

func TestShutdown_NoopWhenIdle(t *testing.T) {
	t.Parallel()

	sup := newTestSupervisor(t, false, &fakeLauncher{})
	if err := sup.Shutdown(); err != nil {
		t.Fatalf("Shutdown on idle supervisor: %v", err)
	}
}

func TestShutdown_TerminatesOnceAcrossCalls(t *testing.T) {
	t.Parallel()

	l := &fakeLauncher{}
	sup := newTestSupervisor(t, false, l)

	if err := sup.EnsureStarted(context.Background()); err != nil {
		t.Fatalf("EnsureStarted: %v", err)
	}
	if err := sup.Shutdown(); err != nil {
		t.Fatalf("first Shutdown: %v", err)
	}
	if err := sup.Shutdown(); err != nil {
		t.Fatalf("second Shutdown: %v", err)
	}

	procs := l.processes()
	if len(procs) != 1 {
		t.Fatalf("spawned %d processes, want 1", len(procs))
	}
	if got := procs[0].terminations.Load(); got != 1 {
		t.Errorf("terminate calls across both shutdowns = %d, want 1", got)
	}
	if sup.OwnedForTesting() {
		t.Error("supervisor must own nothing after shutdown")
	}
}

func TestShutdown_ClearsStateOnTerminateFailure(t *testing.T) {
	t.Parallel()

	termErr := errors.New("signal not delivered")
	l := &fakeLauncher{terminateErr: termErr}
	sup := newTestSupervisor(t, false, l)

	if err := sup.EnsureStarted(context.Background()); err != nil {
		t.Fatalf("EnsureStarted: %v", err)
	}

	err := sup.Shutdown()
	if !errors.Is(err, moor.ErrTerminateFailed) {
		t.Fatalf("error = %v, want ErrTerminateFailed", err)
	}
	if !errors.Is(err, termErr) {
		t.Errorf("error chain should retain the underlying cause, got %v", err)
	}
	if sup.OwnedForTesting() {
		t.Error("handle must be cleared even when terminate fails")
	}

	// The failed handle must not be re-signalled.
	if err := sup.Shutdown(); err != nil {
		t.Fatalf("second Shutdown: %v", err)
	}
	if got := l.processes()[0].terminations.Load(); got != 1 {
		t.Errorf("terminate calls = %d, want 1", got)
	}
}

// TestLifecycle_EndToEnd walks the full scenario: unreachable endpoint →
// spawn → owned → shutdown → idle → a later start spawns a fresh process.
func TestLifecycle_EndToEnd(t *testing.T) {
	t.Parallel()

	l := &fakeLauncher{}
	sup := newTestSupervisor(t, false, l)
	ctx := context.Background()

	if err := sup.EnsureStarted(ctx); err != nil {
		t.Fatalf("EnsureStarted: %v", err)
	}
	if !sup.OwnedForTesting() {
		t.Fatal("expected supervisor to own the spawned process")
	}

	if err := sup.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if sup.OwnedForTesting() {
		t.Fatal("expected supervisor to be idle after shutdown")
	}
	if got := l.processes()[0].terminations.Load(); got != 1 {
		t.Fatalf("terminate calls = %d, want 1", got)
	}

	if err := sup.EnsureStarted(ctx); err != nil {
		t.Fatalf("EnsureStarted after shutdown: %v", err)
	}
	if got := l.spawnCount(); got != 2 {
		t.Errorf("spawn count = %d, want 2 (fresh process after shutdown)", got)
	}
}

// TestConcurrentEnsureAndShutdown hammers both operations from concurrent
// callers. The invariants: no handle is ever terminated twice, and after a
// final Shutdown every spawned process has received exactly one terminate
// signal with nothing left owned.
func TestConcurrentEnsureAndShutdown(t *testing.T) {
	t.Parallel()

	l := &fakeLauncher{}
	sup := newTestSupervisor(t, false, l)
	ctx := context.Background()

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			for j := 0; j < 25; j++ {
				if err := sup.EnsureStarted(ctx); err != nil {
					return err
				}
			}
			return nil
		})
		g.Go(func() error {
			for j := 0; j < 25; j++ {
				if err := sup.Shutdown(); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent storm: %v", err)
	}

	if err := sup.Shutdown(); err != nil {
		t.Fatalf("final Shutdown: %v", err)
	}
	if sup.OwnedForTesting() {
		t.Error("supervisor must own nothing after the final shutdown")
	}
	for i, p := range l.processes() {
		if got := p.terminations.Load(); got != 1 {
			t.Errorf("process %d terminate calls = %d, want 1", i, got)
		}
	}
}
