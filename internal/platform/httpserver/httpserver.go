package httpserver

import (
	"net/http"
	"time"

	"roster/internal/platform/config"
)

// New builds the API server. The write deadline leaves headroom over the per-request
// timeout so timed-out handlers can still send their 503.
func New(cfg config.Server, handler http.Handler) *http.Server {
	write := 30 * time.Second
	if cfg.RequestTimeout > 0 {
		write = cfg.RequestTimeout + 5*time.Second
	}
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      write,
		IdleTimeout:       60 * time.Second,
	}
}
