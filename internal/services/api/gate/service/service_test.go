package service

import (
	"context"
	"testing"
	"time"

	"libgate/internal/modkit/repokit"
	perrs "libgate/internal/platform/errors"
	"libgate/internal/platform/testkit"
	ptime "libgate/internal/platform/time"
	"libgate/internal/services/api/gate/domain"
	"libgate/internal/services/api/gate/repo"
	rosterdom "libgate/internal/services/api/roster/domain"
)

type fakeTx struct{}

func (fakeTx) Exec(context.Context, string, ...any) (repokit.CommandTag, error) {
	panic("unexpected Exec")
}
func (fakeTx) Query(context.Context, string, ...any) (repokit.Rows, error) {
	panic("unexpected Query")
}
func (fakeTx) QueryRow(context.Context, string, ...any) repokit.Row {
	panic("unexpected QueryRow")
}
func (f fakeTx) Tx(ctx context.Context, fn func(q repokit.Queryer) error) error { return fn(f) }

// fakeRepo keeps visits in memory; open visits are those without a punch-out
type fakeRepo struct {
	visits []domain.Visit
	nextID int64
}

func (f *fakeRepo) open(admission string) (int, bool) {
	for i := range f.visits {
		if f.visits[i].AdmissionNumber == admission && f.visits[i].PunchOutTime == nil {
			return i, true
		}
	}
	return 0, false
}

func (f *fakeRepo) OpenVisit(_ context.Context, admission string) (domain.Visit, bool, error) {
	if i, ok := f.open(admission); ok {
		return f.visits[i], true, nil
	}
	return domain.Visit{}, false, nil
}

func (f *fakeRepo) OpenVisitForUpdate(ctx context.Context, admission string) (domain.Visit, bool, error) {
	return f.OpenVisit(ctx, admission)
}

func (f *fakeRepo) InsertVisit(
	_ context.Context, reg, admission string, purpose domain.Purpose,
) (domain.Visit, error) {
	f.nextID++
	v := domain.Visit{
		ID:              f.nextID,
		RegisterNumber:  reg,
		AdmissionNumber: admission,
		Purpose:         purpose,
		PunchInTime:     time.Now().UTC(),
	}
	f.visits = append(f.visits, v)
	return v, nil
}

func (f *fakeRepo) CloseOpenVisit(_ context.Context, admission string) (domain.Visit, error) {
	i, ok := f.open(admission)
	if !ok {
		return domain.Visit{}, perrs.ErrNotFound
	}
	f.visits[i].PunchOutTime = ptime.Ptr(time.Now().UTC())
	return f.visits[i], nil
}

// fakeResolver knows a single student
type fakeResolver struct{ st rosterdom.Student }

func (f fakeResolver) Resolve(_ context.Context, in rosterdom.ResolveInput) (rosterdom.Student, error) {
	if in.Identifier == f.st.RegisterNumber || in.Identifier == f.st.AdmissionNumber {
		return f.st, nil
	}
	return rosterdom.Student{}, perrs.NotFoundf("no student matches identifier %q", in.Identifier)
}

func newSvc(f *fakeRepo) *Svc {
	res := fakeResolver{st: rosterdom.Student{
		RegisterNumber:  "RA1",
		Name:            "Asha",
		AdmissionNumber: "40731001",
		Department:      "CSE",
	}}
	return New(fakeTx{}, repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return f }), res)
}

func TestNew_RequiresDependencies(t *testing.T) {
	binder := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return &fakeRepo{} })

	testkit.MustPanic(t, func() { New(nil, binder, fakeResolver{}) })
	testkit.MustPanic(t, func() { New(fakeTx{}, nil, fakeResolver{}) })
	testkit.MustPanic(t, func() { New(fakeTx{}, binder, nil) })
}

func TestStatus_OutThenIn(t *testing.T) {
	f := &fakeRepo{}
	s := newSvc(f)
	ctx := context.Background()

	row, err := s.Status(ctx, domain.StatusInput{Identifier: "RA1"})
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if row.Status != domain.StatusOut || row.OpenVisit != nil {
		t.Fatalf("want OUT with no open visit, got %+v", row)
	}

	if _, err := s.PunchIn(ctx, domain.PunchInInput{Identifier: "RA1", Purpose: domain.PurposeReading}); err != nil {
		t.Fatalf("punch in: %v", err)
	}

	row, err = s.Status(ctx, domain.StatusInput{Identifier: "40731001"})
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if row.Status != domain.StatusIn || row.OpenVisit == nil {
		t.Fatalf("want IN with open visit, got %+v", row)
	}
	if row.Name != "Asha" {
		t.Fatalf("status row name = %q", row.Name)
	}
}

func TestPunchIn_OpensVisit(t *testing.T) {
	f := &fakeRepo{}
	s := newSvc(f)

	v, err := s.PunchIn(context.Background(), domain.PunchInInput{Identifier: "RA1", Purpose: domain.PurposeLending})
	if err != nil {
		t.Fatalf("punch in: %v", err)
	}
	if v.ID == 0 || !v.Open() {
		t.Fatalf("visit = %+v", v)
	}
	if v.AdmissionNumber != "40731001" || v.Purpose != domain.PurposeLending {
		t.Fatalf("visit = %+v", v)
	}
}

func TestPunchIn_RejectsSecondOpenVisit(t *testing.T) {
	f := &fakeRepo{}
	s := newSvc(f)
	ctx := context.Background()

	if _, err := s.PunchIn(ctx, domain.PunchInInput{Identifier: "RA1", Purpose: domain.PurposeReading}); err != nil {
		t.Fatalf("first punch in: %v", err)
	}
	_, err := s.PunchIn(ctx, domain.PunchInInput{Identifier: "RA1", Purpose: domain.PurposeReading})
	if !perrs.IsCode(err, perrs.ErrorCodeConflict) {
		t.Fatalf("want conflict, got %v", err)
	}
	if len(f.visits) != 1 {
		t.Fatalf("second punch in must not insert, have %d visits", len(f.visits))
	}
}

func TestPunchIn_UnknownPurpose(t *testing.T) {
	s := newSvc(&fakeRepo{})

	_, err := s.PunchIn(context.Background(), domain.PunchInInput{Identifier: "RA1", Purpose: "Loitering"})
	if !perrs.IsCode(err, perrs.ErrorCodeInvalidArgument) {
		t.Fatalf("want invalid argument, got %v", err)
	}
}

func TestPunchIn_UnknownIdentifierPropagatesNotFound(t *testing.T) {
	s := newSvc(&fakeRepo{})

	_, err := s.PunchIn(context.Background(), domain.PunchInInput{Identifier: "GHOST", Purpose: domain.PurposeReading})
	if !perrs.IsCode(err, perrs.ErrorCodeNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestPunchOut_ClosesVisit(t *testing.T) {
	f := &fakeRepo{}
	s := newSvc(f)
	ctx := context.Background()

	if _, err := s.PunchIn(ctx, domain.PunchInInput{Identifier: "RA1", Purpose: domain.PurposeReading}); err != nil {
		t.Fatalf("punch in: %v", err)
	}
	v, err := s.PunchOut(ctx, domain.PunchOutInput{Identifier: "RA1"})
	if err != nil {
		t.Fatalf("punch out: %v", err)
	}
	if v.PunchOutTime == nil {
		t.Fatal("punch out time must be set")
	}
	if _, open := f.open("40731001"); open {
		t.Fatal("visit must be closed")
	}
}

func TestPunchOut_NoOpenSession(t *testing.T) {
	s := newSvc(&fakeRepo{})

	_, err := s.PunchOut(context.Background(), domain.PunchOutInput{Identifier: "RA1"})
	if !perrs.IsCode(err, perrs.ErrorCodeConflict) {
		t.Fatalf("want conflict, got %v", err)
	}
}

func TestPunchCycle_AllowedAgainAfterOut(t *testing.T) {
	f := &fakeRepo{}
	s := newSvc(f)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := s.PunchIn(ctx, domain.PunchInInput{Identifier: "RA1", Purpose: domain.PurposeReading}); err != nil {
			t.Fatalf("cycle %d punch in: %v", i, err)
		}
		if _, err := s.PunchOut(ctx, domain.PunchOutInput{Identifier: "RA1"}); err != nil {
			t.Fatalf("cycle %d punch out: %v", i, err)
		}
	}
	if len(f.visits) != 3 {
		t.Fatalf("want 3 closed visits, have %d", len(f.visits))
	}
}
