package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server sized for the wizard's request profile: the
// slowest requests are page renders fanning out to upstream hydration calls,
// so the write timeout leaves room for several seconds of degraded upstreams
// before the response is cut off.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
