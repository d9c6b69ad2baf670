package middleware

import (
	"net/http"

	pnet "libgate/internal/platform/net"
)

// AuthPort is a tiny seam the transport-facing auth implements.
// The core never reads ambient session state; whoever passes this check
// ends up as an operator id on the request context
type AuthPort interface {
	// Parse returns an operator id from the request or an error
	Parse(r *http.Request) (operatorID string, err error)
}

// Auth gates a route group on the port. Nil port means no gating
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			oid, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithOperator(r.Context(), oid)))
		})
	}
}
