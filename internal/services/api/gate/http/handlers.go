// Package http provides http transport for gate
package http

import (
	stdhttp "net/http"

	"libgate/internal/modkit/httpkit"
	"libgate/internal/services/api/gate/domain"
	svc "libgate/internal/services/api/gate/service"
)

// Register mounts the router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.StatusInput](r, "/status", h.status)
	httpkit.PostJSON[domain.PunchInInput](r, "/punch/in", h.punchIn)
	httpkit.PostJSON[domain.PunchOutInput](r, "/punch/out", h.punchOut)
}

type handlers struct{ svc svc.Service }

// @Summary Presence state for an identifier
// @Tags gate
// @Accept json
// @Produce json
// @Param payload body domain.StatusInput true "Status"
// @Success 200 {object} domain.StatusRow "ok"
// @Failure 404 {object} httpkit.Envelope "unknown identifier"
// @Router /gate/status [post]
func (h *handlers) status(r *stdhttp.Request, in domain.StatusInput) (any, error) {
	return h.svc.Status(r.Context(), in)
}

// @Summary Punch a student in
// @Tags gate
// @Accept json
// @Produce json
// @Param payload body domain.PunchInInput true "Punch in"
// @Success 200 {object} domain.Visit "ok"
// @Failure 409 {object} httpkit.Envelope "already punched in"
// @Router /gate/punch/in [post]
func (h *handlers) punchIn(r *stdhttp.Request, in domain.PunchInInput) (any, error) {
	return h.svc.PunchIn(r.Context(), in)
}

// @Summary Punch a student out
// @Tags gate
// @Accept json
// @Produce json
// @Param payload body domain.PunchOutInput true "Punch out"
// @Success 200 {object} domain.Visit "ok"
// @Failure 409 {object} httpkit.Envelope "no open session"
// @Router /gate/punch/out [post]
func (h *handlers) punchOut(r *stdhttp.Request, in domain.PunchOutInput) (any, error) {
	return h.svc.PunchOut(r.Context(), in)
}
