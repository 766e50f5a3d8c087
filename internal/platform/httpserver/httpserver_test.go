package httpserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSetsTimeouts(t *testing.T) {
	handler := http.NewServeMux()
	srv := New(":8080", handler)

	assert.Equal(t, ":8080", srv.Addr)
	assert.Equal(t, http.Handler(handler), srv.Handler)
	assert.Equal(t, 5*time.Second, srv.ReadHeaderTimeout)
	assert.Equal(t, 10*time.Second, srv.ReadTimeout)
	assert.Equal(t, 30*time.Second, srv.WriteTimeout, "writes must outlast a degraded hydration fan-out")
	assert.Equal(t, 60*time.Second, srv.IdleTimeout)
}
