package server

// Server defines the lifecycle contract of the application server.
type Server interface {
	// RunServer serves requests until SIGINT, SIGTERM or SIGQUIT arrives,
	// then shuts down gracefully. It returns the first failure of the
	// transport or of a worker.
	RunServer() error
}
