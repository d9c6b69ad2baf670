//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"libgate/internal/modkit/repokit"
	perrs "libgate/internal/platform/errors"
	"libgate/internal/platform/store"
	"libgate/internal/services/api/gate/domain"
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

const schema = `
	CREATE TABLE students (
		register_number  TEXT,
		name             TEXT NOT NULL,
		admission_number TEXT PRIMARY KEY,
		department       TEXT NOT NULL
	);
	CREATE UNIQUE INDEX students_register_number_key
		ON students (register_number) WHERE register_number IS NOT NULL;

	CREATE TABLE visits (
		id               BIGSERIAL PRIMARY KEY,
		register_number  TEXT,
		admission_number TEXT NOT NULL REFERENCES students (admission_number) ON DELETE CASCADE,
		purpose          TEXT NOT NULL,
		punch_in_time    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		punch_out_time   TIMESTAMPTZ,
		CONSTRAINT visits_out_after_in CHECK (punch_out_time IS NULL OR punch_out_time >= punch_in_time)
	);
	CREATE UNIQUE INDEX visits_one_open_per_student
		ON visits (admission_number) WHERE punch_out_time IS NULL;
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
	if _, err := st.PG.Exec(ctx,
		`INSERT INTO students (register_number, name, admission_number, department)
		 VALUES ('RA1', 'Asha', '40731001', 'CSE')`); err != nil {
		cancel()
		stopPG()
		t.Fatalf("seed roster: %v", err)
	}

	return st.PG, func() {
		_ = st.Close(context.Background())
		cancel()
		stopPG()
	}
}

func TestRepo_Integration_PunchLifecycle(t *testing.T) {
	db, stop := setup(t)
	defer stop()

	ctx := context.Background()
	r := NewPG().Bind(db)

	if _, open, err := r.OpenVisit(ctx, "40731001"); err != nil || open {
		t.Fatalf("fresh student must be out, open=%v err=%v", open, err)
	}

	v, err := r.InsertVisit(ctx, "RA1", "40731001", domain.PurposeReading)
	if err != nil {
		t.Fatalf("insert visit: %v", err)
	}
	if v.ID == 0 || !v.Open() {
		t.Fatalf("visit = %+v", v)
	}

	got, open, err := r.OpenVisit(ctx, "40731001")
	if err != nil || !open {
		t.Fatalf("open visit lookup, open=%v err=%v", open, err)
	}
	if got.ID != v.ID {
		t.Fatalf("open visit id = %d, want %d", got.ID, v.ID)
	}

	closed, err := r.CloseOpenVisit(ctx, "40731001")
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.PunchOutTime == nil || closed.ID != v.ID {
		t.Fatalf("closed = %+v", closed)
	}

	if _, err := r.CloseOpenVisit(ctx, "40731001"); !perrs.IsCode(err, perrs.ErrorCodeNotFound) {
		t.Fatalf("second close must report no open visit, got %v", err)
	}
}

func TestRepo_Integration_PartialUniqueIndexBackstop(t *testing.T) {
	db, stop := setup(t)
	defer stop()

	ctx := context.Background()
	r := NewPG().Bind(db)

	if _, err := r.InsertVisit(ctx, "RA1", "40731001", domain.PurposeReading); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, err := r.InsertVisit(ctx, "RA1", "40731001", domain.PurposeReading)
	if err == nil || !perrs.IsDuplicateKey(err) {
		t.Fatalf("want unique violation on second open visit, got %v", err)
	}
}

func TestRepo_Integration_ConcurrentPunchInSingleWinner(t *testing.T) {
	db, stop := setup(t)
	defer stop()

	ctx := context.Background()
	binder := NewPG()

	// hammer the same student from many goroutines; the lock plus the
	// partial unique index must let exactly one open visit through
	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repokit.WithTx(ctx, db, func(q repokit.Queryer) error {
				r := binder.Bind(q)
				if _, open, err := r.OpenVisitForUpdate(ctx, "40731001"); err != nil {
					return err
				} else if open {
					return perrs.Conflictf("already punched in")
				}
				_, err := r.InsertVisit(ctx, "RA1", "40731001", domain.PurposeReading)
				return err
			})
		}()
	}
	wg.Wait()
	close(errs)

	won := 0
	for err := range errs {
		if err == nil {
			won++
			continue
		}
		if !perrs.IsCode(err, perrs.ErrorCodeConflict) && !perrs.IsDuplicateKey(err) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if won != 1 {
		t.Fatalf("want exactly one winner, got %d", won)
	}

	var open int
	if err := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM visits WHERE admission_number = '40731001' AND punch_out_time IS NULL`,
	).Scan(&open); err != nil {
		t.Fatalf("count: %v", err)
	}
	if open != 1 {
		t.Fatalf("open visits = %d, want 1", open)
	}
}
