package server

import "context"

// Server defines the lifecycle of the transport servers managed by this
// package.
type Server interface {
	// RunServer starts serving and blocks until ctx is cancelled, a stop
	// signal arrives or a listener fails. It shuts everything down before
	// returning.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the servers, waiting for in-flight requests
	// until ctx expires.
	Shutdown(ctx context.Context) error
}
