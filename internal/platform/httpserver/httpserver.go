package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with sane defaults for this project.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		// contact payloads are tiny; headers cap well below the default 1MB
		MaxHeaderBytes: 64 << 10,
	}
}
