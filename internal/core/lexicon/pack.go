// Package lexicon loads the word pools and templates the generator draws from
// The default pack is embedded; an alternate YAML file with the same shape can
// replace it at runtime
package lexicon

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"sttsynth/internal/core/normalize"

	"gopkg.in/yaml.v3"
)

//go:embed pack.yaml
var embedded []byte

// Version is the only pack layout this loader understands
const Version = 1

type rawGroup struct {
	Group string   `yaml:"group"`
	Texts []string `yaml:"texts"`
}

type rawPack struct {
	Version      int        `yaml:"version"`
	Fillers      []string   `yaml:"fillers"`
	Months       []string   `yaml:"months"`
	FirstNames   []string   `yaml:"first_names"`
	LastNames    []string   `yaml:"last_names"`
	Cities       []string   `yaml:"cities"`
	Locations    []string   `yaml:"locations"`
	EmailDomains []string   `yaml:"email_domains"`
	Templates    []rawGroup `yaml:"templates"`
}

// Pack is a validated lexicon; every pool is non-empty and in transcript form
type Pack struct {
	Version      int
	Fillers      []string
	Months       []string
	FirstNames   []string
	LastNames    []string
	Cities       []string
	Locations    []string
	EmailDomains []string

	// Templates keep file order; groups are flattened
	Templates []string
	// Groups maps each template index to its group name
	Groups []string
}

// Load returns the embedded default pack
func Load() (*Pack, error) {
	return Parse(embedded)
}

// LoadFile reads and validates a pack from disk
func LoadFile(path string) (*Pack, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lexicon: read %s: %w", path, err)
	}
	p, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("lexicon: %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes YAML bytes into a validated Pack
func Parse(b []byte) (*Pack, error) {
	var rp rawPack
	if err := yaml.Unmarshal(b, &rp); err != nil {
		return nil, fmt.Errorf("lexicon: parse pack: %w", err)
	}
	if rp.Version != Version {
		return nil, fmt.Errorf("lexicon: unsupported pack version %d (want %d)", rp.Version, Version)
	}

	n := normalize.New()
	p := &Pack{Version: rp.Version}

	pools := []struct {
		name string
		in   []string
		out  *[]string
	}{
		{"fillers", rp.Fillers, &p.Fillers},
		{"months", rp.Months, &p.Months},
		{"first_names", rp.FirstNames, &p.FirstNames},
		{"last_names", rp.LastNames, &p.LastNames},
		{"cities", rp.Cities, &p.Cities},
		{"locations", rp.Locations, &p.Locations},
		{"email_domains", rp.EmailDomains, &p.EmailDomains},
	}
	for _, pl := range pools {
		xs := fold(n, pl.in)
		if len(xs) == 0 {
			return nil, fmt.Errorf("lexicon: pool %q is empty", pl.name)
		}
		*pl.out = xs
	}

	for _, d := range p.EmailDomains {
		if !strings.Contains(d, " dot ") {
			return nil, fmt.Errorf("lexicon: email domain %q is not spoken as \"<provider> dot <tld>\"", d)
		}
	}
	for _, f := range p.FirstNames {
		if strings.ContainsAny(f, "0123456789") {
			return nil, fmt.Errorf("lexicon: first name %q contains digits", f)
		}
	}

	for _, g := range rp.Templates {
		for _, t := range g.Texts {
			t = strings.Join(strings.Fields(t), " ")
			if t == "" {
				continue
			}
			for _, w := range strings.Fields(t) {
				if strings.HasPrefix(w, "{") && strings.HasSuffix(w, "}") {
					continue
				}
				if !n.IsTranscript(w) {
					return nil, fmt.Errorf("lexicon: template %q: word %q is not in transcript form", t, w)
				}
			}
			p.Templates = append(p.Templates, t)
			p.Groups = append(p.Groups, g.Group)
		}
	}
	if len(p.Templates) == 0 {
		return nil, fmt.Errorf("lexicon: no templates")
	}

	return p, nil
}

// fold normalizes entries, dropping empties and duplicates while keeping order
func fold(n *normalize.Normalizer, in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = n.Normalize(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
