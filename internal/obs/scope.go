// Package obs provides per-request correlation scopes, step telemetry and
// structured event logging. A Scope is created once at the transport boundary
// and passed explicitly down the call chain; there is no ambient global
// request state, so concurrent requests are isolated by construction.
package obs

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader carries the caller-supplied correlation id, if any.
const RequestIDHeader = "X-Request-ID"

// Scope holds the correlation data for one request.
type Scope struct {
	RequestID string
	Method    string
	Path      string
}

// NewScope creates a scope with a fresh correlation id.
func NewScope(method, path string) *Scope {
	return &Scope{
		RequestID: uuid.NewString(),
		Method:    method,
		Path:      path,
	}
}

// ScopeFromRequest builds a scope from an inbound HTTP request, honoring an
// existing X-Request-ID header.
func ScopeFromRequest(r *http.Request) *Scope {
	scope := NewScope(r.Method, r.URL.Path)
	if id := r.Header.Get(RequestIDHeader); id != "" {
		scope.RequestID = id
	}
	return scope
}
