package service

import (
	"context"

	"sttsynth/internal/core/rng"
	"sttsynth/internal/platform/net/http/bind"
	"sttsynth/internal/services/corpus/domain"
)

// DefaultPreviewCount is used when a preview asks for zero records
const DefaultPreviewCount = 5

// Previewer implements domain.PreviewPort over a shared Generator
// Each call seeds its own PRNG so concurrent requests never share state
type Previewer struct {
	gen *Generator
}

// NewPreviewer returns a Previewer over gen
func NewPreviewer(gen *Generator) *Previewer { return &Previewer{gen: gen} }

// Preview renders in.Count records from in.Seed
func (p *Previewer) Preview(_ context.Context, in domain.PreviewInput) ([]domain.Record, error) {
	if err := bind.Struct(in); err != nil {
		return nil, err
	}
	n := in.Count
	if n == 0 {
		n = DefaultPreviewCount
	}
	recs := p.gen.Assemble(rng.New(in.Seed), n, in.StartID)
	if in.Split.Withheld() {
		withhold(recs)
	}
	return recs, nil
}

// Labels lists the entity labels in registry order
func (p *Previewer) Labels() []domain.LabelInfo { return p.gen.Labels() }
