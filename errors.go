package moor

import "errors"

// Sentinel errors for error inspection with errors.Is. EnsureStarted and
// Shutdown wrap the underlying cause, so both the sentinel and the original
// error remain matchable through the chain.
var (
	// ErrSpawnFailed marks a failure to launch the server binary (missing
	// executable, permissions, unusable data directory). The supervisor owns
	// nothing afterwards; a later EnsureStarted call will try again.
	ErrSpawnFailed = errors.New("server spawn failed")

	// ErrTerminateFailed marks a failure to deliver or complete the
	// terminate signal during Shutdown. The handle is already cleared when
	// this is returned; the process may be orphaned.
	ErrTerminateFailed = errors.New("server terminate failed")
)
