// Package http provides http transport for history
package http

import (
	stdhttp "net/http"

	"libgate/internal/modkit/httpkit"
	"libgate/internal/services/api/history/domain"
	svc "libgate/internal/services/api/history/service"
)

// Register mounts the router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.Filter](r, "/query", h.query)
	r.Post("/export", httpkit.AttachmentJSON[domain.Filter](h.export))
}

type handlers struct{ svc svc.Service }

// @Summary Query visit history
// @Tags history
// @Accept json
// @Produce json
// @Param payload body domain.Filter true "Filter; zero values disable predicates"
// @Success 200 {array} domain.Row "ok"
// @Router /history/query [post]
func (h *handlers) query(r *stdhttp.Request, f domain.Filter) (any, error) {
	return h.svc.Query(r.Context(), f)
}

// @Summary Download matching visits as xlsx
// @Tags history
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param payload body domain.Filter true "Filter; zero values disable predicates"
// @Success 200 {file} binary "ok"
// @Failure 404 {object} httpkit.Envelope "no visits to export"
// @Router /history/export [post]
func (h *handlers) export(r *stdhttp.Request, f domain.Filter) (string, []byte, error) {
	return h.svc.Export(r.Context(), f)
}
