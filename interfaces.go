package moor

// ServerProcess is the opaque handle a Supervisor holds for the server it
// spawned. The capability set is deliberately narrow — signal it to stop,
// identify it in logs — so supervision logic can be exercised against fakes
// without spawning real processes.
type ServerProcess interface {
	// Pid returns the operating system process ID, used for logging only.
	Pid() int

	// Terminate stops the process. Implementations are best-effort: after
	// Terminate returns, the handle must not be signalled again, whether or
	// not the signal was delivered.
	Terminate() error
}
