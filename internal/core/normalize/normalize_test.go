package normalize

import "testing"

func TestNormalize_Table(t *testing.T) {
	n := New()

	tests := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "identity transcript",
			in:   "new york",
			out:  "new york",
		},
		{
			name: "utf8 repair drops invalid bytes",
			in:   string([]byte{0xff, 'f', 'o', 'o', 0x80, ' ', 'b', 'a', 'r'}),
			out:  "foo bar",
		},
		{
			name: "case fold",
			in:   "San Francisco",
			out:  "san francisco",
		},
		{
			name: "remove zero-widths",
			in:   "ma\u200bry",
			out:  "mary",
		},
		{
			name: "strip precomposed accent",
			in:   "José",
			out:  "jose",
		},
		{
			name: "strip combining accent",
			in:   "cafe\u0301",
			out:  "cafe",
		},
		{
			name: "width fold fullwidth",
			in:   "ＭＩＡＭＩ",
			out:  "miami",
		},
		{
			name: "period becomes space",
			in:   "St. Louis",
			out:  "st louis",
		},
		{
			name: "apostrophe dropped",
			in:   "I'm O’Brien",
			out:  "im obrien",
		},
		{
			name: "digits survive",
			in:   "5th Avenue",
			out:  "5th avenue",
		},
		{
			name: "collapse whitespace",
			in:   "  lake\t\tshore \n drive ",
			out:  "lake shore drive",
		},
		{
			name: "empty",
			in:   "",
			out:  "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := n.Normalize(tc.in); got != tc.out {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.out)
			}
		})
	}
}

func TestIsTranscript(t *testing.T) {
	n := New()
	if !n.IsTranscript("gmail dot com") {
		t.Fatalf("expected transcript form")
	}
	if n.IsTranscript("gmail.com") {
		t.Fatalf("punctuation should not be transcript form")
	}
	if n.IsTranscript("") {
		t.Fatalf("empty is not a transcript")
	}
}

func TestSanitize_DropsControls(t *testing.T) {
	in := "a\x00b\x7fc\u0085d\te"
	if got := Sanitize(in); got != "abcd\te" {
		t.Fatalf("Sanitize = %q", got)
	}
	if got := Sanitize("clean"); got != "clean" {
		t.Fatalf("fast path changed input: %q", got)
	}
}
