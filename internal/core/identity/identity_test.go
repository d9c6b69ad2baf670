package identity

import (
	"testing"
)

// Test table covers each stage and combined pipelines.
func TestNormalize_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "identity ascii",
			in:   "RA2112704010021",
			out:  "RA2112704010021",
		},
		{
			name: "empty",
			in:   "",
			out:  "",
		},
		{
			name: "utf8 repair drops invalid bytes",
			in:   string([]byte{0xff, 'R', 'A', '1', 0x80, '2', '3'}),
			out:  "RA123",
		},
		{
			name: "lowercase is uppercased",
			in:   "ra2112704010021",
			out:  "RA2112704010021",
		},
		{
			name: "remove zero-widths",
			in:   "RA​123‍45", // ZERO WIDTH SPACE + ZERO WIDTH JOINER
			out:  "RA12345",
		},
		{
			name: "width fold fullwidth digits",
			in:   "ＲＡ２１１２７", // scanned fullwidth forms
			out:  "RA21127",
		},
		{
			name: "strip combining marks",
			in:   "RA12é34", // stray combining acute from a bad scan
			out:  "RA12E34",
		},
		{
			name: "inner and outer whitespace stripped",
			in:   "  RA 2112\t7040 ",
			out:  "RA21127040",
		},
		{
			name: "tabs and newlines stripped",
			in:   "40731\n066",
			out:  "40731066",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.out {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.out)
			}
		})
	}
}

func TestValid(t *testing.T) {
	if Valid("") {
		t.Fatal("empty identifier must not be valid")
	}
	if Valid(" ​ \t") {
		t.Fatal("whitespace only identifier must not be valid")
	}
	if !Valid(" ra123 ") {
		t.Fatal("normalizable identifier must be valid")
	}
}
