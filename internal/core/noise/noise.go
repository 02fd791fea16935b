// Package noise swaps single words for spoken fillers the way a recogniser
// hears hesitations, keeping span offsets consistent with the chosen policy
package noise

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"sttsynth/internal/core/entity"
	"sttsynth/internal/core/rng"
)

// Policy decides what happens to spans when a word is replaced
type Policy string

const (
	// PolicyProtect only replaces words outside every span and shifts later spans
	PolicyProtect Policy = "protect"
	// PolicyDrop replaces any word, removes spans it touched and shifts later spans
	PolicyDrop Policy = "drop"
	// PolicyLegacy replaces any word and leaves spans untouched
	PolicyLegacy Policy = "legacy"
)

// DefaultProbability is the chance a record receives one filler
const DefaultProbability = 0.1

// DefaultFillers is used when no pack is supplied
var DefaultFillers = []string{"um", "uh", "like", "you know"}

// ParsePolicy maps a name to a Policy; empty means protect
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyProtect:
		return PolicyProtect, nil
	case PolicyDrop:
		return PolicyDrop, nil
	case PolicyLegacy:
		return PolicyLegacy, nil
	}
	return "", fmt.Errorf("noise: unknown policy %q", s)
}

// Options configures an Injector
type Options struct {
	Probability float64
	Fillers     []string
	Policy      Policy
}

// Injector applies filler noise to generated text
type Injector struct {
	p       float64
	fillers []string
	policy  Policy
}

// New validates opts and returns an Injector
func New(opts Options) (*Injector, error) {
	if opts.Probability < 0 || opts.Probability > 1 {
		return nil, fmt.Errorf("noise: probability %v outside [0,1]", opts.Probability)
	}
	fillers := opts.Fillers
	if len(fillers) == 0 {
		fillers = DefaultFillers
	}
	for _, f := range fillers {
		if f == "" || f != strings.Join(strings.Fields(f), " ") {
			return nil, fmt.Errorf("noise: filler %q must be non-empty and single spaced", f)
		}
	}
	pol, err := ParsePolicy(string(opts.Policy))
	if err != nil {
		return nil, err
	}
	return &Injector{p: opts.Probability, fillers: fillers, policy: pol}, nil
}

// Policy returns the configured span policy
func (in *Injector) Policy() Policy { return in.policy }

// Probability returns the per-record noise chance
func (in *Injector) Probability() float64 { return in.p }

type word struct {
	text  string
	start int // rune offset in the single spaced text
	end   int
}

// Apply maybe replaces one word of text and returns the new text and spans
// Input spans are not modified. Text with two words or fewer is never touched
func (in *Injector) Apply(r rng.Source, text string, spans []entity.Span) (string, []entity.Span) {
	if !rng.Chance(r, in.p) {
		return text, spans
	}
	fields := strings.Fields(text)
	if len(fields) <= 2 {
		return text, spans
	}

	words := make([]word, len(fields))
	pos := 0
	for i, f := range fields {
		n := utf8.RuneCountInString(f)
		words[i] = word{text: f, start: pos, end: pos + n}
		pos += n + 1
	}

	var target int
	switch in.policy {
	case PolicyProtect:
		eligible := make([]int, 0, len(words))
		for i, w := range words {
			if !touches(w, spans) {
				eligible = append(eligible, i)
			}
		}
		if len(eligible) == 0 {
			return text, spans
		}
		target = eligible[r.IntN(len(eligible))]
	default:
		target = r.IntN(len(words))
	}
	filler := rng.Pick(r, in.fillers)

	old := words[target]
	fields[target] = filler
	out := strings.Join(fields, " ")

	if in.policy == PolicyLegacy {
		return out, spans
	}

	delta := utf8.RuneCountInString(filler) - (old.end - old.start)
	shifted := make([]entity.Span, 0, len(spans))
	for _, s := range spans {
		switch {
		case s.Start < old.end && old.start < s.End:
			// only reachable under drop
			continue
		case s.Start >= old.end:
			s.Start += delta
			s.End += delta
		}
		shifted = append(shifted, s)
	}
	return out, shifted
}

func touches(w word, spans []entity.Span) bool {
	for _, s := range spans {
		if s.Start < w.end && w.start < s.End {
			return true
		}
	}
	return false
}
