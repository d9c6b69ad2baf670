//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"libgate/internal/modkit/repokit"
	"libgate/internal/platform/store"
	"libgate/internal/services/api/history/domain"
)

// startPostgres launches a disposable Postgres and returns DSN + stop func
func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mp.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

// schema omits the roster FK so an orphaned visit can be seeded directly
const schema = `
	CREATE TABLE students (
		register_number  TEXT,
		name             TEXT NOT NULL,
		admission_number TEXT PRIMARY KEY,
		department       TEXT NOT NULL
	);

	CREATE TABLE visits (
		id               BIGSERIAL PRIMARY KEY,
		register_number  TEXT,
		admission_number TEXT NOT NULL,
		purpose          TEXT NOT NULL,
		punch_in_time    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		punch_out_time   TIMESTAMPTZ
	);
`

// seed builds a small visit set covering every predicate:
//
//	id 1  40731001 Reading    2024-03-05 09:30 -> 11:05
//	id 2  40731001 Lending    2024-03-05 09:30 -> open   (punch-in ties id 1)
//	id 3  40731002 Book Bank  2024-03-01 08:00 -> 09:00  (lower date bound)
//	id 4  40731002 Book Bank  2024-03-31 18:00 -> open   (upper date bound)
//	id 5  GHOST01  Reading    2023-12-31 23:00 -> open   (no roster row)
const seed = `
	INSERT INTO students (register_number, name, admission_number, department) VALUES
		('RA1', 'Asha', '40731001', 'CSE'),
		(NULL,  'Binu', '40731002', 'ECE');

	INSERT INTO visits (register_number, admission_number, purpose, punch_in_time, punch_out_time) VALUES
		('RA1', '40731001', 'Reading',   '2024-03-05 09:30:00+00', '2024-03-05 11:05:00+00'),
		('RA1', '40731001', 'Lending',   '2024-03-05 09:30:00+00', NULL),
		(NULL,  '40731002', 'Book Bank', '2024-03-01 08:00:00+00', '2024-03-01 09:00:00+00'),
		(NULL,  '40731002', 'Book Bank', '2024-03-31 18:00:00+00', NULL),
		(NULL,  'GHOST01',  'Reading',   '2023-12-31 23:00:00+00', NULL);
`

func setup(t *testing.T) (repokit.TxRunner, func()) {
	t.Helper()

	dsn, stopPG := startPostgres(t)

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	st, err := store.Open(ctx, store.Config{
		PG: store.PGConfig{Enabled: true, URL: dsn, MaxConns: 4},
	}, store.WithLogger(zerolog.New(io.Discard)))
	if err != nil {
		cancel()
		stopPG()
		t.Fatalf("open store: %v", err)
	}
	if _, err := st.PG.Exec(ctx, schema); err != nil {
		cancel()
		stopPG()
		t.Fatalf("create schema: %v", err)
	}
	if _, err := st.PG.Exec(ctx, seed); err != nil {
		cancel()
		stopPG()
		t.Fatalf("seed visits: %v", err)
	}

	return st.PG, func() {
		_ = st.Close(context.Background())
		cancel()
		stopPG()
	}
}

func ids(rows []domain.Row) []int64 {
	out := make([]int64, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.VisitID)
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRepo_Integration_FilterComposition(t *testing.T) {
	db, stop := setup(t)
	defer stop()

	ctx := context.Background()
	r := NewPG().Bind(db)

	cases := []struct {
		name string
		f    domain.Filter
		want []int64
	}{
		// punch-in desc; ids 1 and 2 share a punch-in so id breaks the tie
		{"empty returns everything", domain.Filter{}, []int64{4, 2, 1, 3, 5}},
		{"year month purpose pick one visit", domain.Filter{Year: 2024, Month: 3, Purpose: "Reading"}, []int64{1}},
		{"day alone", domain.Filter{Day: 5}, []int64{2, 1}},
		{"purpose alone", domain.Filter{Purpose: "Book Bank"}, []int64{4, 3}},
		{"year alone", domain.Filter{Year: 2023}, []int64{5}},
		// both bounds land on seeded punch-in dates and must be included
		{"date bounds inclusive", domain.Filter{From: "2024-03-01", To: "2024-03-31"}, []int64{4, 2, 1, 3}},
		{"bounds compose with purpose", domain.Filter{From: "2024-03-02", Purpose: "Book Bank"}, []int64{4}},
		{"no match", domain.Filter{Year: 2022}, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rows, err := r.Query(ctx, c.f)
			if err != nil {
				t.Fatalf("query %+v: %v", c.f, err)
			}
			if got := ids(rows); !equalIDs(got, c.want) {
				t.Fatalf("query %+v returned ids %v, want %v", c.f, got, c.want)
			}
		})
	}
}

func TestRepo_Integration_JoinedAndOrphanRows(t *testing.T) {
	db, stop := setup(t)
	defer stop()

	ctx := context.Background()
	r := NewPG().Bind(db)

	rows, err := r.Query(ctx, domain.Filter{Year: 2024, Month: 3, Day: 5})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("want the two 2024-03-05 visits, got %v", ids(rows))
	}
	closed, open := rows[1], rows[0]
	if closed.Name != "Asha" || closed.Department != "CSE" || closed.RegisterNumber != "RA1" {
		t.Fatalf("joined roster fields = %+v", closed)
	}
	if closed.PunchOutTime == nil || open.PunchOutTime != nil {
		t.Fatalf("punch-out times: closed=%v open=%v", closed.PunchOutTime, open.PunchOutTime)
	}

	// a visit whose roster row is gone still comes back, with blank
	// name and department
	rows, err = r.Query(ctx, domain.Filter{Year: 2023})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("want one 2023 visit, got %v", ids(rows))
	}
	orphan := rows[0]
	if orphan.AdmissionNumber != "GHOST01" || orphan.Name != "" || orphan.Department != "" {
		t.Fatalf("orphan row = %+v", orphan)
	}
	if orphan.Purpose != "Reading" {
		t.Fatalf("orphan purpose = %q", orphan.Purpose)
	}
}
