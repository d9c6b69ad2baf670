package httpkit

import (
	"net/http/httptest"
	"testing"

	perrs "libgate/internal/platform/errors"
	pnet "libgate/internal/platform/net"
)

func TestPort_ParseBearer(t *testing.T) {
	p := NewPortFunc(func(token string) (string, error) {
		if token == "secret" {
			return "gate-desk", nil
		}
		return "", perrs.Unauthorizedf("bad token")
	})

	r := httptest.NewRequest("POST", "/gate/status", nil)
	r.Header.Set("Authorization", "Bearer secret")

	oid, err := p.Parse(r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if oid != "gate-desk" {
		t.Fatalf("operator = %q", oid)
	}
}

func TestPort_CaseInsensitiveScheme(t *testing.T) {
	p := NewPortFunc(func(string) (string, error) { return "op", nil })

	r := httptest.NewRequest("POST", "/", nil)
	r.Header.Set("Authorization", "bearer tok")

	if _, err := p.Parse(r); err != nil {
		t.Fatalf("lowercase scheme rejected: %v", err)
	}
}

func TestPort_Rejections(t *testing.T) {
	p := NewPortFunc(func(string) (string, error) { return "", perrs.Unauthorizedf("nope") })

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic Zm9vOmJhcg=="},
		{"empty token", "Bearer "},
		{"parser rejects", "Bearer whatever"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/", nil)
			if c.header != "" {
				r.Header.Set("Authorization", c.header)
			}
			_, err := p.Parse(r)
			if !perrs.IsCode(err, perrs.ErrorCodeUnauthorized) {
				t.Fatalf("want unauthorized, got %v", err)
			}
		})
	}
}

func TestOperator_FromContext(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)

	if _, err := Operator(r); !perrs.IsCode(err, perrs.ErrorCodeUnauthorized) {
		t.Fatalf("bare request must be unauthorized, got %v", err)
	}

	r = r.WithContext(pnet.WithOperator(r.Context(), "gate-desk"))
	oid, err := Operator(r)
	if err != nil {
		t.Fatalf("operator: %v", err)
	}
	if oid != "gate-desk" {
		t.Fatalf("operator = %q", oid)
	}
}
