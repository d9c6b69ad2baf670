package httpkit

import (
	"libgate/internal/platform/net/middleware"
)

// Protected mounts fn inside a group gated by the auth port
// a nil port leaves the group open, which the dev profile uses
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(g Router) {
		g.Use(Auth(p))
		fn(g)
	})
}
