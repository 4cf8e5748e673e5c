package moor

import (
	"context"
	"time"
)

// SetLaunchForTesting replaces the spawn seam so tests can hand out fake
// process handles without launching real processes. Exported only for use in
// the moor_test package.
func (s *Supervisor) SetLaunchForTesting(fn func() (ServerProcess, error)) {
	s.launch = fn
}

// SetProbeForTesting replaces the liveness probe seam. Exported only for use
// in the moor_test package.
func (s *Supervisor) SetProbeForTesting(fn func(ctx context.Context) bool) {
	s.probe = fn
}

// OwnedForTesting reports whether the supervisor currently holds a process
// handle, taking the same lock as EnsureStarted and Shutdown.
func (s *Supervisor) OwnedForTesting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.proc != nil
}

// ConfigSnapshot holds a copy of supervisorConfig fields for test assertions.
// Exported only via export_test.go so that the _test package can verify
// option closures actually mutate the config without accessing internals.
type ConfigSnapshot struct {
	Endpoint     string
	ServerBinary string
	ServerArgs   []string
	DataDir      string
	ProbeTimeout time.Duration
	StopTimeout  time.Duration
}

// ApplyOptionsForTesting creates a default supervisorConfig, applies the
// given options, and returns a ConfigSnapshot of the result.
func ApplyOptionsForTesting(opts ...Option) ConfigSnapshot {
	cfg := defaultSupervisorConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return ConfigSnapshot{
		Endpoint:     cfg.Endpoint,
		ServerBinary: cfg.ServerBinary,
		ServerArgs:   cfg.ServerArgs,
		DataDir:      cfg.DataDir,
		ProbeTimeout: cfg.ProbeTimeout,
		StopTimeout:  cfg.StopTimeout,
	}
}
