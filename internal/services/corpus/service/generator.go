// Package service builds corpus records and runs them through the sinks
package service

import (
	"sttsynth/internal/core/entity"
	"sttsynth/internal/core/lexicon"
	"sttsynth/internal/core/noise"
	"sttsynth/internal/core/rng"
	"sttsynth/internal/core/template"
	perr "sttsynth/internal/platform/errors"
	"sttsynth/internal/services/corpus/domain"
)

// GeneratorConfig tunes record generation
type GeneratorConfig struct {
	// Noise configures filler injection; empty fillers fall back to the pack's
	Noise noise.Options
	// EmitCanonical keeps canonical values on spans
	EmitCanonical bool
}

// Generator turns one PRNG stream into records
type Generator struct {
	pack      *lexicon.Pack
	kinds     []entity.Kind
	engine    *template.Engine
	noise     *noise.Injector
	canonical bool
}

// NewGenerator compiles the pack's templates against the entity registry
func NewGenerator(p *lexicon.Pack, cfg GeneratorConfig) (*Generator, error) {
	if p == nil {
		return nil, perr.Configf("corpus: nil lexicon pack")
	}
	kinds := entity.New(p).Registry()
	eng, err := template.NewEngine(kinds, p.Templates)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeConfig, "compile templates")
	}
	nopts := cfg.Noise
	if len(nopts.Fillers) == 0 {
		nopts.Fillers = p.Fillers
	}
	inj, err := noise.New(nopts)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeConfig, "noise options")
	}
	return &Generator{
		pack:      p,
		kinds:     kinds,
		engine:    eng,
		noise:     inj,
		canonical: cfg.EmitCanonical,
	}, nil
}

// Example generates the record with id index: template, values, then noise
func (g *Generator) Example(r rng.Source, index int) domain.Record {
	text, spans := g.engine.Generate(r)
	text, spans = g.noise.Apply(r, text, spans)

	ents := make([]domain.EntitySpan, 0, len(spans))
	for _, s := range spans {
		e := domain.EntitySpan{Start: s.Start, End: s.End, Label: string(s.Label)}
		if g.canonical {
			e.Canonical = s.Canonical
		}
		ents = append(ents, e)
	}
	return domain.Record{ID: domain.RecordID(index), Text: text, Entities: ents}
}

// Assemble generates count records with ids startID through startID+count-1
func (g *Generator) Assemble(r rng.Source, count, startID int) []domain.Record {
	if count <= 0 {
		return []domain.Record{}
	}
	out := make([]domain.Record, 0, count)
	for i := range count {
		out = append(out, g.Example(r, startID+i))
	}
	return out
}

// Labels lists the registry in draw order
func (g *Generator) Labels() []domain.LabelInfo {
	out := make([]domain.LabelInfo, 0, len(g.kinds))
	for _, k := range g.kinds {
		out = append(out, domain.LabelInfo{Label: string(k.Label), Tag: k.Tag})
	}
	return out
}

// NoisePolicy returns the active noise policy
func (g *Generator) NoisePolicy() noise.Policy { return g.noise.Policy() }

// NoiseProbability returns the active noise probability
func (g *Generator) NoiseProbability() float64 { return g.noise.Probability() }

// Pack returns the lexicon the generator draws from
func (g *Generator) Pack() *lexicon.Pack { return g.pack }

// TemplateCount returns the number of compiled templates
func (g *Generator) TemplateCount() int { return len(g.engine.Templates()) }

// withhold strips labels in place, leaving a non-nil empty slice
func withhold(recs []domain.Record) {
	for i := range recs {
		recs[i].Entities = []domain.EntitySpan{}
	}
}
