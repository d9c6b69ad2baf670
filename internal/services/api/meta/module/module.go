// Package module wires meta into the API using modkit
package module

import (
	"net/http"
	"time"

	modkit "libgate/internal/modkit"
	"libgate/internal/modkit/httpkit"

	mhttp "libgate/internal/services/api/meta/http"
)

// Module implements the meta API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(http.Handler) http.Handler
	register func(httpkit.Router)
}

// New constructs the meta module
// the PG seam is optional; readiness reports it as skipped when absent
func New(deps modkit.Deps, pg any, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
	}

	d := mhttp.Deps{
		ServiceName: "libgate-api",
		StartedAt:   time.Now().UTC(),
		PG:          pg,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		mhttp.Register(r, d)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Ports returns the module ports (meta exposes none)
func (m *Module) Ports() any { return nil }

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.prefix }
