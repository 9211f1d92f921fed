package server

import "context"

// Server is the lifecycle contract of the gateway process.
type Server interface {
	// RunServer serves requests until a stop signal arrives or ctx is done,
	// then shuts down gracefully.
	RunServer(ctx context.Context)

	// Shutdown stops serving and waits for in-flight requests.
	Shutdown(ctx context.Context)
}
