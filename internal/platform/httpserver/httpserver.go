package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with a read-header timeout so a stalled client
// cannot hold a connection open indefinitely. Both the api and the metrics
// listener go through here.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
