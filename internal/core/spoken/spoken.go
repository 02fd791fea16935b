// Package spoken renders numbers the way a speech-to-text engine transcribes them
// Numbers are always read one digit at a time; there is no "twenty" or "hundred"
package spoken

import (
	"strconv"
	"strings"
)

var digitWords = [10]string{
	"zero", "one", "two", "three", "four",
	"five", "six", "seven", "eight", "nine",
}

var wordDigits = func() map[string]byte {
	m := make(map[string]byte, len(digitWords))
	for i, w := range digitWords {
		m[w] = byte('0' + i)
	}
	return m
}()

// Number spells n digit by digit, e.g. 415 -> "four one five"
func Number(n int) string {
	return Digits(strconv.Itoa(n))
}

// Digits spells a digit string; non-digit bytes are skipped
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 6)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(digitWords[c-'0'])
	}
	return b.String()
}

// ParseDigits maps space separated digit words back to their digit string
// ok is false when any token is not a digit word
func ParseDigits(words string) (string, bool) {
	fields := strings.Fields(words)
	if len(fields) == 0 {
		return "", false
	}
	out := make([]byte, 0, len(fields))
	for _, f := range fields {
		d, ok := wordDigits[f]
		if !ok {
			return "", false
		}
		out = append(out, d)
	}
	return string(out), true
}

// IsDigitWord reports whether w is one of zero..nine
func IsDigitWord(w string) bool {
	_, ok := wordDigits[w]
	return ok
}
