package module

import (
	"libgate/internal/services/api/roster/domain"
)

// Ports exposes roster capabilities to other modules
type Ports struct {
	// Resolver maps identifiers to students; gate punches consume this
	Resolver domain.ResolverPort
}

// Ports returns the module ports for cross wiring
func (m *Module) Ports() any { return m.ports }
