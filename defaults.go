package moor

import "time"

// Default configuration values for NewSupervisor. These constants are
// exported so callers can reference the defaults when building custom
// configurations relative to them (e.g., 2 * DefaultStopTimeout).
const (
	// DefaultEndpoint is the loopback address the backend server is expected
	// to listen on. It must match the port the launched server binds to;
	// that contract is external and not validated here.
	DefaultEndpoint = "127.0.0.1:3000"

	// DefaultServerBinary is the binary name used to locate the backend
	// server in PATH.
	DefaultServerBinary = "moord"

	// DefaultServerArg is the single start directive passed to the server
	// binary. The server inherits the host environment and receives no other
	// configuration.
	DefaultServerArg = "start"

	// DefaultProbeTimeout bounds the TCP dial used for the liveness probe.
	// One second is generous for a loopback connection; a port nobody
	// listens on refuses immediately, so this only guards pathological
	// cases.
	DefaultProbeTimeout = time.Second

	// DefaultStopTimeout is the total time allowed for the terminate
	// sequence before the server is declared unstoppable and forgotten.
	DefaultStopTimeout = 10 * time.Second

	// DefaultDataDirName is the directory name under the system temp
	// directory where the spawn lock and server log files are stored. The
	// full path is computed as filepath.Join(os.TempDir(), DefaultDataDirName).
	DefaultDataDirName = "moor"
)
