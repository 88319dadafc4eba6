// Package pprofserver exposes the runtime profiles on the local web server for debugging.
package pprofserver

import (
	"net/http"
	"net/http/pprof"
)

// Handle registers the pprof endpoints under /debug/pprof/ on mux. The endpoints are GET only.
func Handle(mux *http.ServeMux) {
	mux.HandleFunc("GET /debug/pprof/", pprof.Index)
	mux.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("GET /debug/pprof/trace", pprof.Trace)
}
