// Package server wires and runs the application's HTTP server together
// with its background workers.
//
// It owns the process lifecycle: startup, signal handling, and graceful
// shutdown, in which the HTTP server stops accepting requests before the
// workers are told to finish.
package server
