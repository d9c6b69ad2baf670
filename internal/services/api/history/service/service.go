// Package service contains history workflows
package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"libgate/internal/core/sheet"
	"libgate/internal/modkit/repokit"
	perrs "libgate/internal/platform/errors"
	"libgate/internal/services/api/history/domain"
	"libgate/internal/services/api/history/repo"
)

// Service is the public service port
type Service interface{ domain.ServicePort }

// Svc implements the service port
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[repo.Repo]
	repo   repo.Repo
}

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("history.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("history.Service requires a non nil Repo binder")
	}
	return &Svc{db: db, binder: binder, repo: repokit.MustBind(binder, db)}
}

// Query returns visits matching the filter with derived durations.
// An empty filter returns everything
func (s *Svc) Query(ctx context.Context, f domain.Filter) ([]domain.Row, error) {
	rows, err := s.repo.Query(ctx, f)
	if err != nil {
		return nil, perrs.FromPostgres(err, "query history")
	}
	for i := range rows {
		rows[i].DurationMinutes = durationMinutes(rows[i].PunchInTime, rows[i].PunchOutTime)
	}
	return rows, nil
}

// Export runs the same query and renders the rows as a workbook.
// The filename reflects the active filters so downloads are self-describing
func (s *Svc) Export(ctx context.Context, f domain.Filter) (string, []byte, error) {
	rows, err := s.Query(ctx, f)
	if err != nil {
		return "", nil, err
	}

	out := make([]sheet.VisitRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, sheet.VisitRow{
			Name:            r.Name,
			RegisterNumber:  r.RegisterNumber,
			AdmissionNumber: r.AdmissionNumber,
			Department:      r.Department,
			Purpose:         string(r.Purpose),
			PunchIn:         r.PunchInTime,
			PunchOut:        r.PunchOutTime,
			DurationMinutes: r.DurationMinutes,
		})
	}

	b, err := sheet.EncodeVisits("History", out)
	if err != nil {
		if errors.Is(err, sheet.ErrEmpty) {
			return "", nil, perrs.NotFoundf("no visits to export")
		}
		return "", nil, err
	}
	return ExportFilename(f), b, nil
}

// durationMinutes derives whole minutes spent inside, nil while open
func durationMinutes(in time.Time, out *time.Time) *int64 {
	if out == nil {
		return nil
	}
	m := int64(out.Sub(in) / time.Minute)
	if m < 0 {
		m = 0
	}
	return &m
}

// ExportFilename derives a download name from the active filters,
// e.g. History_2024_March_Reading.xlsx
func ExportFilename(f domain.Filter) string {
	parts := []string{"History"}
	if f.Year != 0 {
		parts = append(parts, strconv.Itoa(f.Year))
	}
	if f.Month != 0 {
		parts = append(parts, time.Month(f.Month).String())
	}
	if f.Day != 0 {
		parts = append(parts, strconv.Itoa(f.Day))
	}
	if f.Purpose != "" {
		parts = append(parts, strings.ReplaceAll(f.Purpose, " ", ""))
	}
	if f.From != "" {
		parts = append(parts, "from_"+f.From)
	}
	if f.To != "" {
		parts = append(parts, "to_"+f.To)
	}
	if f.Empty() {
		parts = append(parts, "All")
	}
	return strings.Join(parts, "_") + ".xlsx"
}
