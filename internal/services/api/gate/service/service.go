// Package service contains gate workflows
package service

import (
	"context"

	"libgate/internal/modkit/repokit"
	perrs "libgate/internal/platform/errors"
	"libgate/internal/services/api/gate/domain"
	"libgate/internal/services/api/gate/repo"
	rosterdom "libgate/internal/services/api/roster/domain"
)

// Service is the public service port
type Service interface{ domain.ServicePort }

// Svc implements the service port
type Svc struct {
	db       repokit.TxRunner
	binder   repokit.Binder[repo.Repo]
	repo     repo.Repo
	resolver rosterdom.ResolverPort
}

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], resolver rosterdom.ResolverPort) *Svc {
	if db == nil {
		panic("gate.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("gate.Service requires a non nil Repo binder")
	}
	if resolver == nil {
		panic("gate.Service requires a non nil roster resolver")
	}
	return &Svc{db: db, binder: binder, repo: repokit.MustBind(binder, db), resolver: resolver}
}

// Status reports whether the student behind the identifier is inside
func (s *Svc) Status(ctx context.Context, in domain.StatusInput) (domain.StatusRow, error) {
	st, err := s.resolver.Resolve(ctx, rosterdom.ResolveInput{Identifier: in.Identifier})
	if err != nil {
		return domain.StatusRow{}, err
	}

	v, open, err := s.repo.OpenVisit(ctx, st.AdmissionNumber)
	if err != nil {
		return domain.StatusRow{}, perrs.FromPostgres(err, "gate status")
	}

	row := domain.StatusRow{
		Status:          domain.StatusOut,
		AdmissionNumber: st.AdmissionNumber,
		Name:            st.Name,
	}
	if open {
		row.Status = domain.StatusIn
		row.OpenVisit = &v
	}
	return row, nil
}

// PunchIn opens a visit. At most one visit per student may be open, so
// the check and insert share a transaction that locks any open row; the
// partial unique index backstops a race that slips past the lock
func (s *Svc) PunchIn(ctx context.Context, in domain.PunchInInput) (domain.Visit, error) {
	if !in.Purpose.Valid() {
		return domain.Visit{}, perrs.InvalidArgf("unknown purpose %q", in.Purpose)
	}

	st, err := s.resolver.Resolve(ctx, rosterdom.ResolveInput{Identifier: in.Identifier})
	if err != nil {
		return domain.Visit{}, err
	}

	var visit domain.Visit
	err = repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)

		if _, open, err := r.OpenVisitForUpdate(ctx, st.AdmissionNumber); err != nil {
			return err
		} else if open {
			return perrs.Conflictf("student %s is already punched in", st.AdmissionNumber)
		}

		v, err := r.InsertVisit(ctx, st.RegisterNumber, st.AdmissionNumber, in.Purpose)
		if err != nil {
			return err
		}
		visit = v
		return nil
	})
	if err != nil {
		if perrs.IsDuplicateKey(err) {
			return domain.Visit{}, perrs.Conflictf("student %s is already punched in", st.AdmissionNumber)
		}
		if perrs.IsCode(err, perrs.ErrorCodeConflict) {
			return domain.Visit{}, err
		}
		return domain.Visit{}, perrs.FromPostgres(err, "punch in")
	}
	return visit, nil
}

// PunchOut closes the open visit and returns it with the punch-out time set
func (s *Svc) PunchOut(ctx context.Context, in domain.PunchOutInput) (domain.Visit, error) {
	st, err := s.resolver.Resolve(ctx, rosterdom.ResolveInput{Identifier: in.Identifier})
	if err != nil {
		return domain.Visit{}, err
	}

	v, err := s.repo.CloseOpenVisit(ctx, st.AdmissionNumber)
	if err != nil {
		if perrs.IsCode(err, perrs.ErrorCodeNotFound) {
			return domain.Visit{}, perrs.Conflictf("student %s has no open session", st.AdmissionNumber)
		}
		return domain.Visit{}, perrs.FromPostgres(err, "punch out")
	}
	return v, nil
}
