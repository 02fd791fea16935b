package spoken

import (
	"strconv"
	"strings"
	"testing"
)

func TestNumber_Examples(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "zero"},
		{7, "seven"},
		{20, "two zero"},
		{100, "one zero zero"},
		{415, "four one five"},
		{2025, "two zero two five"},
	}
	for _, c := range cases {
		if got := Number(c.in); got != c.want {
			t.Fatalf("Number(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNumber_TokenCountAndRoundTrip(t *testing.T) {
	for _, n := range []int{1, 9, 10, 28, 200, 999, 1000, 9999, 123456789} {
		s := Number(n)
		toks := strings.Split(s, " ")
		if len(toks) != len(strconv.Itoa(n)) {
			t.Fatalf("Number(%d) has %d tokens, want %d", n, len(toks), len(strconv.Itoa(n)))
		}
		for _, tok := range toks {
			if !IsDigitWord(tok) {
				t.Fatalf("Number(%d) token %q is not a digit word", n, tok)
			}
		}
		back, ok := ParseDigits(s)
		if !ok || back != strconv.Itoa(n) {
			t.Fatalf("round trip %d -> %q -> %q (ok=%v)", n, s, back, ok)
		}
	}
}

func TestNumber_NeverMagnitudeWords(t *testing.T) {
	for n := 0; n < 3000; n += 7 {
		s := Number(n)
		for _, bad := range []string{"twenty", "hundred", "thousand", "teen"} {
			if strings.Contains(s, bad) {
				t.Fatalf("Number(%d) = %q contains %q", n, s, bad)
			}
		}
	}
}

func TestDigits_KeepsLeadingZeros(t *testing.T) {
	if got := Digits("0042"); got != "zero zero four two" {
		t.Fatalf("Digits(0042) = %q", got)
	}
	if got := Digits(""); got != "" {
		t.Fatalf("Digits(\"\") = %q", got)
	}
}

func TestParseDigits_Rejects(t *testing.T) {
	if _, ok := ParseDigits("four twenty"); ok {
		t.Fatalf("expected reject for non digit word")
	}
	if _, ok := ParseDigits("   "); ok {
		t.Fatalf("expected reject for empty input")
	}
}
