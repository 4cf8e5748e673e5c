// Package netutil provides the TCP liveness probe used to decide whether a
// backend server is already listening on its endpoint.
package netutil
