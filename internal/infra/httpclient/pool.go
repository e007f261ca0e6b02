package httpclient

import (
	"net/http"
	"time"
)

// DefaultTimeout matches the source export endpoints' worst observed
// latency with headroom; individual clients may override it.
const DefaultTimeout = 30 * time.Second

// sharedTransport is reused across all pooled clients so repeated fetches
// of the export endpoints reuse connections instead of re-handshaking.
var sharedTransport = &http.Transport{
	MaxIdleConns:        20,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     120 * time.Second,
	DisableKeepAlives:   false,
}

// NewPooledClient creates an http.Client sharing the common connection pool.
func NewPooledClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: sharedTransport,
	}
}
