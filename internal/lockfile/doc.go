// Package lockfile guards the spawn decision with an advisory file lock, so
// two desktop client instances sharing a data directory do not both launch
// the backend server while neither can yet see it listening.
package lockfile
