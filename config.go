package moor

import (
	"os"
	"path/filepath"
	"time"
)

// supervisorConfig holds the constant configuration a Supervisor is built
// with. It is assembled once by NewSupervisor and never mutated afterwards.
type supervisorConfig struct {
	Endpoint     string        // host:port the server listens on
	ServerBinary string        // server executable, resolved via PATH if relative
	ServerArgs   []string      // fixed launch arguments (the start directive)
	DataDir      string        // spawn lock and server log files live here
	ProbeTimeout time.Duration // per-attempt timeout for the liveness probe
	StopTimeout  time.Duration // total budget for terminating the server
}

// defaultSupervisorConfig returns a supervisorConfig populated with all
// default values. Both NewSupervisor and test helpers use this to avoid
// duplicating the default field assignments.
func defaultSupervisorConfig() supervisorConfig {
	return supervisorConfig{
		Endpoint:     DefaultEndpoint,
		ServerBinary: DefaultServerBinary,
		ServerArgs:   []string{DefaultServerArg},
		DataDir:      filepath.Join(os.TempDir(), DefaultDataDirName),
		ProbeTimeout: DefaultProbeTimeout,
		StopTimeout:  DefaultStopTimeout,
	}
}
