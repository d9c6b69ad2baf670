// Package module wires gate into the API using modkit
package module

import (
	"net/http"

	modkit "libgate/internal/modkit"
	"libgate/internal/modkit/httpkit"

	ghttp "libgate/internal/services/api/gate/http"
	grepo "libgate/internal/services/api/gate/repo"
	gsvc "libgate/internal/services/api/gate/service"
	rosterdom "libgate/internal/services/api/roster/domain"
)

// Module implements the gate API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(http.Handler) http.Handler
	register func(httpkit.Router)

	svc gsvc.Service
}

// Ports declares the injected cross module dependencies
type Ports struct {
	Resolver rosterdom.ResolverPort
}

// New constructs the gate module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("gate"),
		modkit.WithPrefix("/gate"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Resolver == nil {
		panic("gate API module requires a roster Resolver port")
	}

	svc := gsvc.New(deps.PG, grepo.NewPG(), injected.Resolver)

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		ghttp.Register(r, m.svc)
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

// Ports returns the module ports (gate exposes none)
func (m *Module) Ports() any { return nil }

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.prefix }
