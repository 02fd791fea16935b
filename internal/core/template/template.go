// Package template fills placeholder templates with generated entity values
// and records where each value landed
package template

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"sttsynth/internal/core/entity"
	"sttsynth/internal/core/rng"
)

// Placeholder is one {tag} occurrence; Start and End are byte offsets into Raw
type Placeholder struct {
	Tag   string
	Start int
	End   int
}

// Template is a parsed template string
type Template struct {
	Raw          string
	Placeholders []Placeholder // in text order
}

// Has reports whether the template contains {tag}
func (t Template) Has(tag string) bool {
	for _, p := range t.Placeholders {
		if p.Tag == tag {
			return true
		}
	}
	return false
}

// Tags lists placeholder tags in text order
func (t Template) Tags() []string {
	out := make([]string, len(t.Placeholders))
	for i, p := range t.Placeholders {
		out[i] = p.Tag
	}
	return out
}

// Parse scans raw for {tag} tokens; tags are lowercase letters and underscores
// A tag may appear at most once and braces must balance
func Parse(raw string) (Template, error) {
	t := Template{Raw: raw}
	seen := map[string]bool{}
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '}':
			return Template{}, fmt.Errorf("template %q: stray '}' at %d", raw, i)
		case '{':
			j := strings.IndexByte(raw[i+1:], '}')
			if j < 0 {
				return Template{}, fmt.Errorf("template %q: unclosed '{' at %d", raw, i)
			}
			tag := raw[i+1 : i+1+j]
			if !validTag(tag) {
				return Template{}, fmt.Errorf("template %q: bad placeholder %q", raw, tag)
			}
			if seen[tag] {
				return Template{}, fmt.Errorf("template %q: placeholder {%s} repeated", raw, tag)
			}
			seen[tag] = true
			end := i + 1 + j + 1
			t.Placeholders = append(t.Placeholders, Placeholder{Tag: tag, Start: i, End: end})
			i = end - 1
		}
	}
	return t, nil
}

func validTag(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && c != '_' {
			return false
		}
	}
	return true
}

// Engine owns the compiled templates and the ordered generator registry
type Engine struct {
	kinds     []entity.Kind
	templates []Template
}

// NewEngine compiles raws against kinds
// Every placeholder must name a kind; templates must be single spaced
func NewEngine(kinds []entity.Kind, raws []string) (*Engine, error) {
	if len(raws) == 0 {
		return nil, fmt.Errorf("template: no templates")
	}
	known := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		if k.Gen == nil {
			return nil, fmt.Errorf("template: kind %q has no generator", k.Tag)
		}
		if known[k.Tag] {
			return nil, fmt.Errorf("template: kind %q registered twice", k.Tag)
		}
		known[k.Tag] = true
	}

	e := &Engine{kinds: kinds, templates: make([]Template, 0, len(raws))}
	for _, raw := range raws {
		if raw != strings.Join(strings.Fields(raw), " ") {
			return nil, fmt.Errorf("template %q: must be single spaced and trimmed", raw)
		}
		t, err := Parse(raw)
		if err != nil {
			return nil, err
		}
		for _, p := range t.Placeholders {
			if !known[p.Tag] {
				return nil, fmt.Errorf("template %q: unknown placeholder {%s}", raw, p.Tag)
			}
		}
		e.templates = append(e.templates, t)
	}
	return e, nil
}

// Templates returns the compiled templates
func (e *Engine) Templates() []Template { return e.templates }

// Pick draws one template uniformly
func (e *Engine) Pick(r rng.Source) Template {
	return rng.Pick(r, e.templates)
}

// Fill generates one value per placeholder and returns the text with spans
// sorted by start. Values are drawn in registry order so a seed maps to a fixed
// stream; the text is then laid out left to right so offsets never drift
func (e *Engine) Fill(r rng.Source, t Template) (string, []entity.Span) {
	type drawn struct {
		label entity.Label
		value entity.Value
	}
	values := make(map[string]drawn, len(t.Placeholders))
	for _, k := range e.kinds {
		if !t.Has(k.Tag) {
			continue
		}
		values[k.Tag] = drawn{label: k.Label, value: k.Gen(r)}
	}

	var b strings.Builder
	b.Grow(len(t.Raw) * 3)
	spans := make([]entity.Span, 0, len(t.Placeholders))
	pos, chars := 0, 0
	for _, p := range t.Placeholders {
		lit := t.Raw[pos:p.Start]
		b.WriteString(lit)
		chars += utf8.RuneCountInString(lit)

		d := values[p.Tag]
		n := utf8.RuneCountInString(d.value.Spoken)
		spans = append(spans, entity.Span{
			Start:     chars,
			End:       chars + n,
			Label:     d.label,
			Canonical: d.value.Canonical,
		})
		b.WriteString(d.value.Spoken)
		chars += n
		pos = p.End
	}
	b.WriteString(t.Raw[pos:])

	sort.SliceStable(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	return b.String(), spans
}

// Generate picks a template and fills it
func (e *Engine) Generate(r rng.Source) (string, []entity.Span) {
	return e.Fill(r, e.Pick(r))
}

// Slice returns the characters of text covered by s
func Slice(text string, s entity.Span) string {
	rs := []rune(text)
	if s.Start < 0 || s.End > len(rs) || s.Start > s.End {
		return ""
	}
	return string(rs[s.Start:s.End])
}
