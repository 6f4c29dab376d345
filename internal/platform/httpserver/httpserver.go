// Package httpserver constructs the listeners both storefront binaries serve
// from, so timeout policy lives in one place.
package httpserver

import (
	"net/http"
	"time"
)

// New returns a server for the given address. ReadHeaderTimeout caps how long
// a client may dribble headers; body timeouts stay unset because the gateway
// proxies slow shop-backend calls inside request handlers.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
