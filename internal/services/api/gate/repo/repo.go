// Package repo provides the gate repository implementation
package repo

import (
	"context"

	"libgate/internal/modkit/repokit"
	perrs "libgate/internal/platform/errors"
	"libgate/internal/platform/store"
	pstr "libgate/internal/platform/strings"
	"libgate/internal/services/api/gate/domain"
)

// Repo is the gate persistence surface used by the service layer
type Repo interface {
	// OpenVisit returns the open visit for a student, if any
	OpenVisit(ctx context.Context, admission string) (domain.Visit, bool, error)

	// OpenVisitForUpdate locks the open visit row so concurrent punches
	// for the same student serialize inside the transaction
	OpenVisitForUpdate(ctx context.Context, admission string) (domain.Visit, bool, error)

	// InsertVisit opens a new visit and returns it with id and punch-in time set
	InsertVisit(ctx context.Context, registerNumber, admission string, purpose domain.Purpose) (domain.Visit, error)

	// CloseOpenVisit stamps the punch-out time on the single open visit.
	// Returns perrs.ErrNotFound when the student has no open visit
	CloseOpenVisit(ctx context.Context, admission string) (domain.Visit, error)
}

type (
	// PG is a Postgres implementation of the gate repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// scanVisit maps one row into a domain.Visit
func scanVisit(row store.Row) (domain.Visit, error) {
	var v domain.Visit
	var reg *string
	if err := row.Scan(&v.ID, &reg, &v.AdmissionNumber, &v.Purpose, &v.PunchInTime, &v.PunchOutTime); err != nil {
		return domain.Visit{}, err
	}
	v.RegisterNumber = pstr.Deref(reg)
	return v, nil
}

const visitColumns = `id, register_number, admission_number, purpose, punch_in_time, punch_out_time`

func (r *queries) openVisit(ctx context.Context, admission, suffix string) (domain.Visit, bool, error) {
	sql := `
		SELECT ` + visitColumns + `
		  FROM visits
		 WHERE admission_number = $1 AND punch_out_time IS NULL
	` + suffix
	v, err := store.One(ctx, r.q, scanVisit, sql, admission)
	if err != nil {
		if perrs.IsCode(err, perrs.ErrorCodeNotFound) {
			return domain.Visit{}, false, nil
		}
		return domain.Visit{}, false, err
	}
	return v, true, nil
}

func (r *queries) OpenVisit(ctx context.Context, admission string) (domain.Visit, bool, error) {
	return r.openVisit(ctx, admission, "")
}

func (r *queries) OpenVisitForUpdate(ctx context.Context, admission string) (domain.Visit, bool, error) {
	return r.openVisit(ctx, admission, " FOR UPDATE")
}

func (r *queries) InsertVisit(
	ctx context.Context, registerNumber, admission string, purpose domain.Purpose,
) (domain.Visit, error) {
	const sql = `
		INSERT INTO visits (register_number, admission_number, purpose, punch_in_time)
		VALUES ($1, $2, $3, NOW())
		RETURNING ` + visitColumns
	return store.One(ctx, r.q, scanVisit, sql, pstr.SQLNull(registerNumber), admission, string(purpose))
}

func (r *queries) CloseOpenVisit(ctx context.Context, admission string) (domain.Visit, error) {
	// the inner select pins exactly one row even if the open-visit
	// invariant was ever violated out of band
	const sql = `
		UPDATE visits
		   SET punch_out_time = NOW()
		 WHERE id = (
				SELECT id FROM visits
				 WHERE admission_number = $1 AND punch_out_time IS NULL
				 ORDER BY punch_in_time DESC, id DESC
				 LIMIT 1
		 )
		RETURNING ` + visitColumns
	return store.One(ctx, r.q, scanVisit, sql, admission)
}
