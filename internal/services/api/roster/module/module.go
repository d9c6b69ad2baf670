// Package module wires roster into the API using modkit
package module

import (
	"net/http"

	modkit "libgate/internal/modkit"
	"libgate/internal/modkit/httpkit"

	rhttp "libgate/internal/services/api/roster/http"
	rrepo "libgate/internal/services/api/roster/repo"
	rsvc "libgate/internal/services/api/roster/service"
)

// Module implements the roster API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(http.Handler) http.Handler
	ports    any
	register func(httpkit.Router)

	svc rsvc.Service
}

// New constructs the roster module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("roster"),
		modkit.WithPrefix("/roster"),
	}, opts...)...)

	svc := rsvc.New(deps.PG, rrepo.NewPG())

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
	}
	m.ports = Ports{Resolver: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		rhttp.Register(r, m.svc)
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

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.prefix }
