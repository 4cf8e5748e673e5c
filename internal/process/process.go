package process

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// DefaultStopTimeout bounds the terminate sequence when the caller does not
// configure one.
const DefaultStopTimeout = 10 * time.Second

// termGracePeriod is the maximum time to wait for the server to exit after
// the terminate signal before escalating to a kill. The actual grace period
// is capped at the overall stop timeout.
const termGracePeriod = 3 * time.Second

// killDrainTimeout is the hard upper bound for waiting on the wait goroutine
// after the kill signal has been sent (or after the process has already
// exited). A killed process should exit almost immediately; this is a safety
// net against cmd.Wait blocking indefinitely on stuck I/O.
const killDrainTimeout = 10 * time.Second

// Sentinel errors returned by Start for invalid configuration. Callers can
// match these with errors.Is through wrapped error chains.
var (
	// ErrEmptyBinary indicates an empty server binary path.
	ErrEmptyBinary = errors.New("binary must not be empty")

	// ErrEmptyDataDir indicates an empty data directory.
	ErrEmptyDataDir = errors.New("data directory must not be empty")
)

// Config describes how to launch the server process.
type Config struct {
	Binary      string        // server executable, resolved via PATH if relative
	Args        []string      // fixed launch arguments (e.g. the start directive)
	DataDir     string        // working directory; also receives <binary>.log
	StopTimeout time.Duration // total budget for Terminate; zero means DefaultStopTimeout
	Logger      *slog.Logger  // optional; defaults to slog.Default()
}

// validate checks that all required Config fields are set and returns an
// error describing the first missing field.
func (c Config) validate() error {
	if c.Binary == "" {
		return ErrEmptyBinary
	}
	if c.DataDir == "" {
		return ErrEmptyDataDir
	}
	return nil
}

// Process is a spawned server process. It is not safe for concurrent use;
// the owning supervisor serializes access, and a Process must not be reused
// after Terminate returns.
type Process struct {
	cmd         *exec.Cmd
	waitDone    <-chan error    // receives the single cmd.Wait result; consumed by Terminate
	exited      <-chan struct{} // closed when the process exits; readable by many goroutines
	logFile     *os.File
	name        string // base name of the binary, for log file naming and messages
	log         *slog.Logger
	stopTimeout time.Duration
}

// Start launches the server described by cfg. The child runs in its own
// process group (see configureSysProcAttr) with its working directory set to
// the data directory and its stdout and stderr redirected to <binary>.log
// there. The server inherits the host environment.
//
// A single goroutine calling cmd.Wait is started here so that exactly one
// Wait call is made per process; its result is consumed by Terminate.
func Start(cfg Config) (*Process, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid process config: %w", err)
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	name := filepath.Base(cfg.Binary)
	logFile, err := os.Create(filepath.Join(cfg.DataDir, name+".log"))
	if err != nil {
		return nil, fmt.Errorf("create %s log file: %w", name, err)
	}

	cmd := exec.Command(cfg.Binary, cfg.Args...)
	cmd.Dir = cfg.DataDir
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	configureSysProcAttr(cmd)

	if err := cmd.Start(); err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("start %s: %w", name, err)
	}
	log.Debug("server process spawned",
		"binary", cfg.Binary, "pid", cmd.Process.Pid, "log", logFile.Name())

	// Two channels are created:
	//   - done (buffered 1): receives the Wait error, consumed once by Terminate.
	//   - exited (unbuffered, closed): broadcast signal readable by any number
	//     of goroutines to detect that the process is gone.
	done := make(chan error, 1)
	exited := make(chan struct{})
	go func() {
		done <- cmd.Wait()
		close(exited)
	}()

	stopTimeout := cfg.StopTimeout
	if stopTimeout <= 0 {
		stopTimeout = DefaultStopTimeout
	}

	return &Process{
		cmd:         cmd,
		waitDone:    done,
		exited:      exited,
		logFile:     logFile,
		name:        name,
		log:         log,
		stopTimeout: stopTimeout,
	}, nil
}

// Pid returns the operating system process ID of the spawned server.
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// Exited returns a channel that is closed when the process exits. It is safe
// to select on from any number of goroutines.
func (p *Process) Exited() <-chan struct{} {
	return p.exited
}

// LogPath returns the path of the file receiving the server's output.
func (p *Process) LogPath() string {
	return p.logFile.Name()
}

// Terminate stops the process: terminate signal to its process group, kill
// escalation after a grace period, bounded wait for the exit status. Exits
// caused by either signal count as success. The log file handle is closed on
// every path, and the Process must not be used again afterwards.
func (p *Process) Terminate() error {
	defer func() {
		_ = p.logFile.Close()
	}()
	return p.stop(p.stopTimeout)
}
