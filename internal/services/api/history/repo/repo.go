// Package repo provides the history repository implementation
package repo

import (
	"context"

	"libgate/internal/modkit/repokit"
	"libgate/internal/platform/store"
	pstr "libgate/internal/platform/strings"
	"libgate/internal/services/api/history/domain"
)

// Repo is the history persistence surface used by the service layer
type Repo interface {
	// Query returns visits matching the filter, punch-in descending with
	// visit id as the tie-break. Durations are not computed here
	Query(ctx context.Context, f domain.Filter) ([]domain.Row, error)
}

type (
	// PG is a Postgres implementation of the history repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func scanRow(row store.Row) (domain.Row, error) {
	var r domain.Row
	var reg *string
	err := row.Scan(
		&r.VisitID, &r.Name, &reg, &r.AdmissionNumber, &r.Department,
		&r.Purpose, &r.PunchInTime, &r.PunchOutTime,
	)
	if err != nil {
		return domain.Row{}, err
	}
	r.RegisterNumber = pstr.Deref(reg)
	return r, nil
}

func (r *queries) Query(ctx context.Context, f domain.Filter) ([]domain.Row, error) {
	// constant SQL; zero-valued args disable their predicate. The left
	// join keeps visits whose roster row was deleted, with blank name
	// and department
	const sql = `
		SELECT v.id,
		       COALESCE(s.name, '') AS name,
		       v.register_number,
		       v.admission_number,
		       COALESCE(s.department, '') AS department,
		       v.purpose,
		       v.punch_in_time,
		       v.punch_out_time
		  FROM visits v
		  LEFT JOIN students s ON s.admission_number = v.admission_number
		 WHERE ($1 = 0  OR EXTRACT(YEAR  FROM v.punch_in_time)::int = $1)
		   AND ($2 = 0  OR EXTRACT(MONTH FROM v.punch_in_time)::int = $2)
		   AND ($3 = 0  OR EXTRACT(DAY   FROM v.punch_in_time)::int = $3)
		   AND ($4 = '' OR v.purpose = $4)
		   AND ($5::date IS NULL OR v.punch_in_time::date >= $5::date)
		   AND ($6::date IS NULL OR v.punch_in_time::date <= $6::date)
		 ORDER BY v.punch_in_time DESC, v.id DESC
	`
	return store.Many(ctx, r.q, scanRow, sql,
		f.Year, f.Month, f.Day, f.Purpose,
		pstr.SQLNull(f.From), pstr.SQLNull(f.To),
	)
}
