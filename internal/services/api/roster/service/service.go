// Package service contains roster workflows
package service

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"

	"libgate/internal/core/identity"
	"libgate/internal/core/sheet"
	"libgate/internal/modkit/repokit"
	perrs "libgate/internal/platform/errors"
	"libgate/internal/services/api/roster/domain"
	"libgate/internal/services/api/roster/repo"
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
		panic("roster.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("roster.Service requires a non nil Repo binder")
	}
	return &Svc{db: db, binder: binder, repo: repokit.MustBind(binder, db)}
}

// Resolve maps a candidate identifier to exactly one student.
// Matching is exact equality against the stored register or admission
// number after canonicalization; an anomalous multi-match picks the row
// with the lowest admission number so repeat scans stay deterministic
func (s *Svc) Resolve(ctx context.Context, in domain.ResolveInput) (domain.Student, error) {
	id := identity.Normalize(in.Identifier)
	if id == "" {
		return domain.Student{}, perrs.InvalidArgf("identifier is empty after normalization")
	}

	rows, err := s.repo.FindByIdentifier(ctx, id)
	if err != nil {
		return domain.Student{}, perrs.FromPostgres(err, "resolve identifier")
	}
	if len(rows) == 0 {
		return domain.Student{}, perrs.NotFoundf("no student matches identifier %q", id)
	}
	return rows[0], nil
}

// List returns the roster, optionally restricted to one department
func (s *Svc) List(ctx context.Context, department string) ([]domain.Student, error) {
	rows, err := s.repo.List(ctx, department)
	if err != nil {
		return nil, perrs.FromPostgres(err, "list students")
	}
	return rows, nil
}

// Get fetches one student by admission number
func (s *Svc) Get(ctx context.Context, admission string) (domain.Student, error) {
	adm := identity.Normalize(admission)
	if adm == "" {
		return domain.Student{}, perrs.InvalidArgf("admission number is empty")
	}
	st, err := s.repo.GetByAdmission(ctx, adm)
	if err != nil {
		if perrs.IsCode(err, perrs.ErrorCodeNotFound) {
			return domain.Student{}, perrs.NotFoundf("student %q not found", adm)
		}
		return domain.Student{}, perrs.FromPostgres(err, "get student")
	}
	return st, nil
}

// Import reads an uploaded roster workbook and upserts each usable row.
// The whole batch lands in one transaction so a half-read workbook never
// leaves a partial roster behind
func (s *Svc) Import(ctx context.Context, workbook io.Reader) (domain.ImportResult, error) {
	rows, skipped, err := sheet.ParseRoster(workbook)
	if err != nil {
		return domain.ImportResult{}, perrs.InvalidArgf("roster workbook: %v", err)
	}
	if len(rows) == 0 {
		return domain.ImportResult{}, perrs.InvalidArgf("roster workbook has no usable rows")
	}

	res := domain.ImportResult{BatchID: uuid.NewString(), Skipped: skipped}

	err = repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		for _, row := range rows {
			st := domain.Student{
				RegisterNumber:  identity.Normalize(row.RegisterNumber),
				Name:            row.Name,
				AdmissionNumber: identity.Normalize(row.AdmissionNumber),
				Department:      row.Department,
			}
			if st.AdmissionNumber == "" {
				res.Skipped++
				continue
			}
			inserted, err := r.Upsert(ctx, st)
			if err != nil {
				return err
			}
			if inserted {
				res.Inserted++
			} else {
				res.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return domain.ImportResult{}, perrs.FromPostgres(err, "import roster")
	}
	return res, nil
}

// Export renders the full roster as a workbook
func (s *Svc) Export(ctx context.Context) ([]byte, error) {
	students, err := s.repo.List(ctx, "")
	if err != nil {
		return nil, perrs.FromPostgres(err, "export roster")
	}

	rows := make([]sheet.StudentRow, 0, len(students))
	for _, st := range students {
		rows = append(rows, sheet.StudentRow{
			RegisterNumber:  st.RegisterNumber,
			Name:            st.Name,
			AdmissionNumber: st.AdmissionNumber,
			Department:      st.Department,
		})
	}

	b, err := sheet.EncodeRoster("Roster", rows)
	if err != nil {
		if errors.Is(err, sheet.ErrEmpty) {
			return nil, perrs.NotFoundf("no students to export")
		}
		return nil, err
	}
	return b, nil
}
