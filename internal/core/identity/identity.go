// Package identity provides a deterministic normalizer for gate identifiers
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKC normalization
// 3 Width fold fullwidth to ASCII
// 4 Remove zero-width and format chars
// 5 Remove combining marks
// 6 Uppercase
// 7 Strip all whitespace
//
// Scanned cards and manual entry produce the same identifier in wildly
// different byte forms; both must resolve to the same student row
package identity

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// order matters and mirrors the documented pipeline
		return transform.Chain(
			norm.NFKC,
			width.Fold,                         // map fullwidth forms to ASCII
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			runes.Remove(runes.In(unicode.Mn)), // strip combining marks
		)
	},
}

// Normalize returns the canonical form of a candidate identifier
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	// 1 repair UTF-8 drop invalid bytes
	s = strings.ToValidUTF8(s, "")

	// 2-5 transform via pooled chain then reset and return it
	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	// 6 uppercase, identifiers are stored uppercase
	ns = strings.ToUpper(ns)

	// 7 identifiers carry no inner whitespace
	return stripSpaces(ns)
}

// Valid reports whether the normalized identifier is usable for a lookup
func Valid(s string) bool { return Normalize(s) != "" }

// stripSpaces removes every whitespace rune
func stripSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
