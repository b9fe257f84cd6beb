package pkgrouter

import "net/http"

// Middleware wraps an http.Handler. The router's global stack is
// recover, correlation ID and logging; routes may append their own,
// such as RateLimit on uploads.
type Middleware func(http.Handler) http.Handler

// Chain wraps h so that mws run in the given order. Nil entries are skipped.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] == nil {
			continue
		}
		h = mws[i](h)
	}
	return h
}
