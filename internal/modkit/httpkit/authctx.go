package httpkit

import (
	"net/http"

	perrs "libgate/internal/platform/errors"
	pnet "libgate/internal/platform/net"
)

// Operator returns the authenticated operator id from the request context
func Operator(r *http.Request) (string, error) {
	if id := pnet.OperatorID(r.Context()); id != "" {
		return id, nil
	}
	return "", perrs.Unauthorizedf("missing operator context")
}

// MustOperator returns the operator id or panics; handlers behind Auth may rely on it
func MustOperator(r *http.Request) string {
	id, err := Operator(r)
	if err != nil {
		panic(err)
	}
	return id
}
