package errors

import (
	stderrs "errors"
	"net/http"
	"testing"
)

func TestCodeOf(t *testing.T) {
	if got := CodeOf(NotFoundf("nope")); got != ErrorCodeNotFound {
		t.Fatalf("code = %v", got)
	}
	if got := CodeOf(stderrs.New("plain")); got != ErrorCodeUnknown {
		t.Fatalf("plain error code = %v, want unknown", got)
	}
	if got := CodeOf(nil); got != ErrorCodeUnknown {
		t.Fatalf("nil error code = %v, want unknown", got)
	}
}

func TestWrapKeepsCauseAndCode(t *testing.T) {
	cause := stderrs.New("boom")
	err := Wrap(cause, ErrorCodeDB, "query failed")

	if !stderrs.Is(err, cause) {
		t.Fatal("wrapped error must unwrap to cause")
	}
	if CodeOf(err) != ErrorCodeDB {
		t.Fatalf("code = %v", CodeOf(err))
	}
	if Root(err) != cause {
		t.Fatalf("root = %v", Root(err))
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{NotFoundf("x"), http.StatusNotFound},
		{Conflictf("x"), http.StatusConflict},
		{DuplicateKeyf("x"), http.StatusConflict},
		{InvalidArgf("x"), http.StatusUnprocessableEntity},
		{Validationf("x"), http.StatusBadRequest},
		{JSONErrf("x"), http.StatusBadRequest},
		{Unauthorizedf("x"), http.StatusUnauthorized},
		{DBf("x"), http.StatusInternalServerError},
		{Internalf("x"), http.StatusInternalServerError},
		{stderrs.New("plain"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatus(c.err); got != c.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestWithField(t *testing.T) {
	err := WithField(Validationf("must be one of Reading Lending"), "purpose")
	e, ok := As(err)
	if !ok {
		t.Fatalf("want project error, got %T", err)
	}
	if e.Field() != "purpose" {
		t.Fatalf("field = %q", e.Field())
	}
	if CodeOf(err) != ErrorCodeValidation {
		t.Fatalf("code changed to %v", CodeOf(err))
	}
}

func TestWireFrom(t *testing.T) {
	w := WireFrom(Conflictf("already punched in"))
	if w.Code != ErrorCodeConflict || w.Message != "already punched in" {
		t.Fatalf("wire = %+v", w)
	}
}

func TestIsCode(t *testing.T) {
	err := Wrap(NotFoundf("inner"), ErrorCodeDB, "outer")
	// the outermost code wins
	if !IsCode(err, ErrorCodeDB) {
		t.Fatalf("outer code not reported: %v", err)
	}
}
