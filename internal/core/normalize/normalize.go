// Package normalize folds free text into transcript form: the shape a
// speech-to-text engine emits and the shape every lexicon entry must have
// Pipeline order
// 1 Sanitize control bytes and repair UTF-8
// 2 Unicode NFKD decomposition
// 3 Case folding
// 4 Remove combining marks and format chars (accents, zero-widths)
// 5 Width fold fullwidth to ASCII, recompose NFC
// 6 Drop apostrophes, turn other punctuation and symbols into spaces
// 7 Collapse whitespace to single spaces and trim
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalizer is concurrency safe when used with the pool below
type Normalizer struct{}

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKD,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Mn)),
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
			norm.NFC,
		)
	},
}

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Normalize returns the transcript form of s
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = Sanitize(s)
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	ns = stripPunct(ns)
	return collapseSpaces(ns)
}

// IsTranscript reports whether s is already in transcript form
func (n *Normalizer) IsTranscript(s string) bool {
	return s != "" && n.Normalize(s) == s
}

// stripPunct removes apostrophes ("i'm" -> "im") and maps other punctuation
// and symbols to a space ("st. louis" -> "st  louis")
func stripPunct(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\'' || r == '’':
			continue
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// collapseSpaces converts every whitespace run to one ASCII space and trims the edges
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
