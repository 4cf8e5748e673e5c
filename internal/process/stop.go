package process

import (
	"fmt"
	"time"
)

// drainDone reads from the done channel with the given timeout as a hard
// upper bound. Under normal conditions cmd.Wait returns almost immediately
// after the process exits, so this timeout should never fire; it exists to
// prevent indefinite blocking if cmd.Wait hangs.
//
// Returns true and the cmd.Wait error if the channel delivered in time, or
// false and a nil error if the timeout elapsed.
func drainDone(done <-chan error, timeout time.Duration) (bool, error) {
	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case err := <-done:
		return true, err
	case <-t.C:
		return false, nil
	}
}

// stop implements the term-then-kill shutdown sequence against the wait
// goroutine started in Start:
//
//  1. Deliver the terminate signal to the process group.
//  2. Schedule the kill escalation after a grace period (canceled if the
//     process exits first).
//  3. Wait for process exit or the total timeout.
//
// Worst-case blocking duration is timeout + killDrainTimeout, when the main
// timeout expires and the post-kill drain also blocks for its full duration.
func (p *Process) stop(timeout time.Duration) error {
	if p.cmd == nil || p.cmd.Process == nil {
		return nil
	}

	if err := signalTerm(p.cmd.Process); err != nil {
		// The process (or its group) is already gone; drain the wait
		// goroutine with a hard upper bound so we never block indefinitely.
		ok, waitErr := drainDone(p.waitDone, killDrainTimeout)
		if !ok {
			return fmt.Errorf("%s: timed out draining process after signal failure", p.name)
		}
		return expectSignalExit(waitErr, p.name)
	}

	// grace is clamped to timeout so the kill always fires while the total
	// timer is still running, giving drainDone a window to collect the exit
	// status rather than hitting the timeout path.
	grace := min(termGracePeriod, timeout)
	killTimer := time.AfterFunc(grace, func() {
		// Killing a process that already exited is a harmless no-op error,
		// intentionally discarded.
		_ = signalKill(p.cmd.Process)
	})
	defer killTimer.Stop()

	totalTimer := time.NewTimer(timeout)
	defer totalTimer.Stop()

	select {
	case err := <-p.waitDone:
		return expectSignalExit(err, p.name)
	case <-totalTimer.C:
		ok, waitErr := drainDone(p.waitDone, killDrainTimeout)
		if !ok {
			return fmt.Errorf("%s: timed out waiting for process to exit after kill", p.name)
		}
		if err := expectSignalExit(waitErr, p.name); err != nil {
			return fmt.Errorf("%s stop timeout: %w", p.name, err)
		}
		return nil
	}
}
