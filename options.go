package moor

import (
	"fmt"
	"time"
)

// requirePositive panics if v <= 0 with a descriptive message.
func requirePositive(name string, v time.Duration) {
	if v <= 0 {
		panic(fmt.Sprintf("moor: %s must be greater than 0, got %v", name, v))
	}
}

// requireNonEmpty panics if s is empty with a descriptive message.
func requireNonEmpty(name, s string) {
	if s == "" {
		panic(fmt.Sprintf("moor: %s must not be empty", name))
	}
}

// Option configures a Supervisor during construction via NewSupervisor.
// Each With* function returns an Option that sets a specific field.
//
// The With* functions panic on invalid input (empty addresses or paths,
// non-positive durations). Option values are typically compile-time
// constants, so an invalid value indicates a programmer error rather than a
// runtime condition — fail fast during initialization instead of returning
// errors that would be universally fatal anyway.
type Option func(*supervisorConfig)

// WithEndpoint sets the host:port the liveness probe dials. It must match
// the address the launched server binds to; that contract is external and
// not validated.
//
// Default: "127.0.0.1:3000".
//
// Panics if addr is empty.
func WithEndpoint(addr string) Option {
	requireNonEmpty("endpoint", addr)
	return func(c *supervisorConfig) {
		c.Endpoint = addr
	}
}

// WithServerCommand sets the server executable and its fixed launch
// arguments. The binary is resolved via PATH when not an absolute path.
//
// Default: "moord" with the single argument "start".
//
// Panics if binary is empty.
func WithServerCommand(binary string, args ...string) Option {
	requireNonEmpty("server binary", binary)
	return func(c *supervisorConfig) {
		c.ServerBinary = binary
		c.ServerArgs = append([]string(nil), args...)
	}
}

// WithDataDir sets the directory holding the spawn lock and the server's
// log file. Desktop hosts usually point this at a per-user cache location.
// The directory is created on first spawn if it does not exist.
//
// Panics if dir is empty.
func WithDataDir(dir string) Option {
	requireNonEmpty("data directory", dir)
	return func(c *supervisorConfig) {
		c.DataDir = dir
	}
}

// WithProbeTimeout bounds the TCP dial used by the liveness probe.
//
// Default: 1 second.
//
// Panics if d <= 0.
func WithProbeTimeout(d time.Duration) Option {
	requirePositive("probe timeout", d)
	return func(c *supervisorConfig) {
		c.ProbeTimeout = d
	}
}

// WithStopTimeout sets the total budget for the terminate sequence during
// Shutdown, covering the grace period before the kill escalation.
//
// Default: 10 seconds.
//
// Panics if d <= 0.
func WithStopTimeout(d time.Duration) Option {
	requirePositive("stop timeout", d)
	return func(c *supervisorConfig) {
		c.StopTimeout = d
	}
}
