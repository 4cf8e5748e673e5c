// Package process spawns the backend server binary and terminates it with a
// term-then-kill escalation delivered to the server's process group.
//
// Exactly one cmd.Wait call is made per spawned process: Start launches a
// single wait goroutine whose result Terminate later consumes. The server's
// stdout and stderr are redirected to a log file in the data directory,
// since a desktop host has no console for the child to inherit.
package process
