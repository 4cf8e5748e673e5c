package netutil

import (
	"context"
	"net"
	"time"
)

// Probe reports whether something is accepting TCP connections on addr.
// It makes a single point-in-time connection attempt — no retries, no
// backoff — and closes the connection immediately. Every failure mode
// (refused, timeout, unreachable, canceled context) reads as false, because
// the only decision the caller makes is "reachable or not".
func Probe(ctx context.Context, addr string, timeout time.Duration) bool {
	dialer := &net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return false
	}
	_ = conn.Close() // best-effort close of the probe connection
	return true
}
