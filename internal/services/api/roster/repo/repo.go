// Package repo provides the roster repository implementation
package repo

import (
	"context"

	"libgate/internal/modkit/repokit"
	"libgate/internal/platform/store"
	pstr "libgate/internal/platform/strings"
	"libgate/internal/services/api/roster/domain"
)

// Repo is the roster persistence surface used by the service layer
type Repo interface {
	// FindByIdentifier returns every student whose register or admission
	// number equals the candidate, ordered by admission number ascending
	FindByIdentifier(ctx context.Context, identifier string) ([]domain.Student, error)

	List(ctx context.Context, department string) ([]domain.Student, error)

	GetByAdmission(ctx context.Context, admission string) (domain.Student, error)

	// Upsert inserts or refreshes a roster row keyed on admission number
	// and reports whether the row was freshly inserted
	Upsert(ctx context.Context, s domain.Student) (inserted bool, err error)
}

type (
	// PG is a Postgres implementation of the roster repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// scanStudent maps one row into a domain.Student
func scanStudent(row store.Row) (domain.Student, error) {
	var s domain.Student
	var reg *string
	if err := row.Scan(&reg, &s.Name, &s.AdmissionNumber, &s.Department); err != nil {
		return domain.Student{}, err
	}
	s.RegisterNumber = pstr.Deref(reg)
	return s, nil
}

func (r *queries) FindByIdentifier(ctx context.Context, identifier string) ([]domain.Student, error) {
	const sql = `
		SELECT register_number, name, admission_number, department
		  FROM students
		 WHERE register_number = $1 OR admission_number = $1
		 ORDER BY admission_number ASC
	`
	return store.Many(ctx, r.q, scanStudent, sql, identifier)
}

func (r *queries) List(ctx context.Context, department string) ([]domain.Student, error) {
	// constant SQL; the empty department disables the predicate
	const sql = `
		SELECT register_number, name, admission_number, department
		  FROM students
		 WHERE ($1 = '' OR department = $1)
		 ORDER BY admission_number ASC
	`
	return store.Many(ctx, r.q, scanStudent, sql, department)
}

func (r *queries) GetByAdmission(ctx context.Context, admission string) (domain.Student, error) {
	const sql = `
		SELECT register_number, name, admission_number, department
		  FROM students
		 WHERE admission_number = $1
	`
	return store.One(ctx, r.q, scanStudent, sql, admission)
}

func (r *queries) Upsert(ctx context.Context, s domain.Student) (bool, error) {
	// xmax = 0 only on a freshly inserted tuple
	const sql = `
		INSERT INTO students (register_number, name, admission_number, department)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (admission_number) DO UPDATE
		SET register_number = EXCLUDED.register_number,
		    name            = EXCLUDED.name,
		    department      = EXCLUDED.department
		RETURNING (xmax = 0) AS inserted
	`
	var inserted bool
	err := r.q.QueryRow(ctx, sql, pstr.SQLNull(s.RegisterNumber), s.Name, s.AdmissionNumber, s.Department).
		Scan(&inserted)
	return inserted, err
}
