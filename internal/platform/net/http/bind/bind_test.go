package bind

import (
	"net/http/httptest"
	"strings"
	"testing"

	perr "libgate/internal/platform/errors"
)

type punchBody struct {
	Identifier string `json:"identifier" validate:"required,min=1,max=64"`
	Purpose    string `json:"purpose"    validate:"required,oneof='Reading' 'Lending' 'Book Bank'"`
}

func TestParseJSON_OK(t *testing.T) {
	r := httptest.NewRequest("POST", "/punch/in",
		strings.NewReader(`{"identifier":"RA1","purpose":"Book Bank"}`))

	got, err := ParseJSON[punchBody](r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Identifier != "RA1" || got.Purpose != "Book Bank" {
		t.Fatalf("got %+v", got)
	}
}

func TestParseJSON_EmptyBodyPost(t *testing.T) {
	r := httptest.NewRequest("POST", "/punch/in", strings.NewReader(""))

	_, err := ParseJSON[punchBody](r)
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("want json error, got %v", err)
	}
}

func TestParseJSON_EmptyBodyGetTolerated(t *testing.T) {
	r := httptest.NewRequest("GET", "/students", strings.NewReader(""))

	got, err := ParseJSON[punchBody](r)
	if err != nil {
		t.Fatalf("empty GET body must bind zero value, got %v", err)
	}
	if got != (punchBody{}) {
		t.Fatalf("got %+v", got)
	}
}

func TestParseJSON_UnknownFieldRejected(t *testing.T) {
	r := httptest.NewRequest("POST", "/punch/in",
		strings.NewReader(`{"identifier":"RA1","purpose":"Reading","extra":true}`))

	_, err := ParseJSON[punchBody](r)
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("want json error, got %v", err)
	}
}

func TestParseJSON_TrailingDataRejected(t *testing.T) {
	r := httptest.NewRequest("POST", "/punch/in",
		strings.NewReader(`{"identifier":"RA1","purpose":"Reading"}{"again":1}`))

	_, err := ParseJSON[punchBody](r)
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("want json error, got %v", err)
	}
}

func TestParseJSON_ValidationUsesJSONNames(t *testing.T) {
	r := httptest.NewRequest("POST", "/punch/in",
		strings.NewReader(`{"identifier":"RA1","purpose":"Loitering"}`))

	_, err := ParseJSON[punchBody](r)
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
	e, ok := perr.As(err)
	if !ok {
		t.Fatalf("want project error, got %T", err)
	}
	if e.Field() != "purpose" {
		t.Fatalf("field = %q, want purpose", e.Field())
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	err := Validate(&punchBody{Purpose: "Reading"})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
}
