package httpserver

import "fmt"

// Run maps all handlers and serves until the listener fails or the process
// is stopped.
func (srv *HTTPServer) Run() error {
	if err := srv.mapHandlers(); err != nil {
		return fmt.Errorf("mapping handlers: %w", err)
	}
	return srv.gin.Run(fmt.Sprintf(":%d", srv.port))
}
