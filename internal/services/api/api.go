// Package api provides the HTTP API for the application
package api

import (
	"crypto/subtle"

	"libgate/internal/platform/config"
	perrs "libgate/internal/platform/errors"
	"libgate/internal/platform/logger"
	phttp "libgate/internal/platform/net/http"
	"libgate/internal/platform/net/middleware"
	"libgate/internal/platform/store"

	"libgate/internal/modkit"
	"libgate/internal/modkit/httpkit"
	"libgate/internal/modkit/module"
	"libgate/internal/modkit/swaggerkit"

	gatemod "libgate/internal/services/api/gate/module"
	historymod "libgate/internal/services/api/history/module"
	metamod "libgate/internal/services/api/meta/module"
	rostermod "libgate/internal/services/api/roster/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// Roster owns identity resolution; gate consumes it through ports
	roster := rostermod.New(deps)
	resolver := module.MustPortsOf[rostermod.Ports](roster).Resolver

	gate := gatemod.New(deps, modkit.WithPorts(gatemod.Ports{
		Resolver: resolver,
	}))

	history := historymod.New(deps)
	meta := metamod.New(deps, opt.Store.PG)

	auth := authPort(opt.Config)

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		// meta stays open for probes
		module.Register(meta.Name(), meta.Ports())
		meta.MountRoutes(api)

		httpkit.Protected(api, auth, func(g httpkit.Router) {
			for _, m := range []module.Module{roster, gate, history} {
				module.Register(m.Name(), m.Ports())
				m.MountRoutes(g)
			}
		})
	})
}

// authPort builds the bearer auth seam from config.
// An empty AUTH_TOKEN leaves the API open, which only makes sense in dev
func authPort(cfg config.Conf) middleware.AuthPort {
	token := cfg.MayString("AUTH_TOKEN", "")
	if token == "" {
		return nil
	}
	operator := cfg.MayString("AUTH_OPERATOR", "gate-desk")
	return httpkit.NewPortFunc(func(presented string) (string, error) {
		if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			return "", perrs.Unauthorizedf("invalid bearer token")
		}
		return operator, nil
	})
}
