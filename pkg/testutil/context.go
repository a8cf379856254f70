package testutil

import (
	"net/http"

	"supplyledger/pkg/domain"
	"supplyledger/pkg/requestcontext"
)

// WithPrincipal adds an authenticated principal to the request context.
// This simulates what the auth middleware would do for authenticated requests.
// Invalid principals are not added.
func WithPrincipal(req *http.Request, principal string) *http.Request {
	if p, err := domain.ParsePrincipal(principal); err == nil {
		return req.WithContext(requestcontext.WithPrincipal(req.Context(), p))
	}
	return req
}
