// Package http provides http transport for roster
package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"libgate/internal/modkit/httpkit"
	perrs "libgate/internal/platform/errors"
	"libgate/internal/services/api/roster/domain"
	svc "libgate/internal/services/api/roster/service"
)

// maxImportBytes caps roster upload size
const maxImportBytes = 10 << 20

// Register mounts the router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.ResolveInput](r, "/resolve", h.resolve)
	httpkit.Get(r, "/students", h.list)
	httpkit.Get(r, "/students/{admission}", h.get)
	r.Post("/import", httpkit.Call(h.importRoster))
	r.Get("/export", httpkit.Attachment(h.export))
}

type handlers struct{ svc svc.Service }

// @Summary Resolve an identifier to a student
// @Tags roster
// @Accept json
// @Produce json
// @Param payload body domain.ResolveInput true "Resolve"
// @Success 200 {object} domain.Student "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /roster/resolve [post]
func (h *handlers) resolve(r *stdhttp.Request, in domain.ResolveInput) (any, error) {
	return h.svc.Resolve(r.Context(), in)
}

// @Summary List the roster
// @Tags roster
// @Produce json
// @Param department query string false "restrict to one department"
// @Success 200 {array} domain.Student "ok"
// @Router /roster/students [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context(), r.URL.Query().Get("department"))
}

// @Summary Fetch one student
// @Tags roster
// @Produce json
// @Param admission path string true "admission number"
// @Success 200 {object} domain.Student "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /roster/students/{admission} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), chi.URLParam(r, "admission"))
}

// @Summary Upload a roster workbook
// @Tags roster
// @Accept mpfd
// @Produce json
// @Param file formData file true "xlsx roster"
// @Success 200 {object} domain.ImportResult "ok"
// @Router /roster/import [post]
func (h *handlers) importRoster(r *stdhttp.Request) (any, error) {
	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		return nil, perrs.InvalidArgf("multipart form: %v", err)
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		return nil, perrs.InvalidArgf("missing file field")
	}
	defer f.Close()
	return h.svc.Import(r.Context(), f)
}

// @Summary Download the roster as xlsx
// @Tags roster
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary "ok"
// @Failure 404 {object} httpkit.Envelope "empty roster"
// @Router /roster/export [get]
func (h *handlers) export(r *stdhttp.Request) (string, []byte, error) {
	b, err := h.svc.Export(r.Context())
	if err != nil {
		return "", nil, err
	}
	return "Roster.xlsx", b, nil
}
