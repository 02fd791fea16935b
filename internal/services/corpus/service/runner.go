package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"sttsynth/internal/core/rng"
	"sttsynth/internal/core/version"
	perr "sttsynth/internal/platform/errors"
	"sttsynth/internal/platform/logger"
	"sttsynth/internal/platform/net/http/bind"
	"sttsynth/internal/services/corpus/domain"
)

// Runner implements domain.RunnerPort
type Runner struct {
	gen   *Generator
	sinks []domain.SinkPort

	newID func() string
	now   func() time.Time
	build version.BuildInfo
}

// RunnerOption tunes a Runner
type RunnerOption func(*Runner)

// WithRunID fixes how run ids are minted
func WithRunID(fn func() string) RunnerOption { return func(r *Runner) { r.newID = fn } }

// WithClock fixes the manifest timestamp source
func WithClock(fn func() time.Time) RunnerOption { return func(r *Runner) { r.now = fn } }

// WithBuild sets the build stamp recorded in the manifest
func WithBuild(b version.BuildInfo) RunnerOption { return func(r *Runner) { r.build = b } }

// NewRunner wires gen to sinks; sinks run in the given order
func NewRunner(gen *Generator, sinks []domain.SinkPort, opts ...RunnerOption) *Runner {
	r := &Runner{
		gen:   gen,
		sinks: sinks,
		newID: uuid.NewString,
		now:   func() time.Time { return time.Now().UTC() },
		build: version.Info(""),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run seeds one PRNG, generates each split in order and writes it to every sink
func (s *Runner) Run(ctx context.Context, in domain.RunInput) (domain.Manifest, error) {
	if err := bind.Struct(in); err != nil {
		return domain.Manifest{}, err
	}
	seen := make(map[domain.Split]bool, len(in.Splits))
	for _, sp := range in.Splits {
		if seen[sp.Split] {
			return domain.Manifest{}, perr.InvalidArgf("split %q requested twice", sp.Split)
		}
		seen[sp.Split] = true
	}

	runID := s.newID()
	ctx = logger.WithRun(ctx, runID)
	log := logger.C(ctx)

	m := domain.Manifest{
		RunID:            runID,
		Seed:             in.Seed,
		NoisePolicy:      string(s.gen.NoisePolicy()),
		NoiseProbability: s.gen.NoiseProbability(),
		EmitCanonical:    s.gen.canonical,
		PackVersion:      s.gen.Pack().Version,
		Templates:        s.gen.TemplateCount(),
		Build:            s.build,
		CreatedAt:        s.now(),
		Sinks:            make([]string, 0, len(s.sinks)),
	}
	for _, sink := range s.sinks {
		m.Sinks = append(m.Sinks, sink.Name())
	}
	log.Info().
		Uint64("seed", in.Seed).
		Str("noise_policy", m.NoisePolicy).
		Strs("sinks", m.Sinks).
		Msg("corpus run started")

	for _, sink := range s.sinks {
		ss, ok := sink.(domain.SchemaSink)
		if !ok {
			continue
		}
		if err := ss.EnsureSchema(ctx); err != nil {
			return m, perr.Wrapf(err, perr.CodeOf(err), "sink %s: schema", sink.Name())
		}
	}

	r := rng.New(in.Seed)
	sampled := false
	for _, sp := range in.Splits {
		recs := s.gen.Assemble(r, sp.Count, sp.StartID)
		if !sampled && len(recs) > 0 {
			sampled = true
			log.Info().
				Str("split", string(sp.Split)).
				Str("id", recs[0].ID).
				Str("text", recs[0].Text).
				Interface("entities", recs[0].Entities).
				Msg("sample record")
		}
		spans := 0
		for _, rec := range recs {
			spans += len(rec.Entities)
		}
		if sp.Split.Withheld() {
			withhold(recs)
		}

		b := domain.Batch{RunID: runID, Split: sp.Split, Records: recs}
		for _, sink := range s.sinks {
			if err := ctx.Err(); err != nil {
				return m, perr.Wrap(err, perr.ErrorCodeUnavailable, "run cancelled")
			}
			if err := sink.WriteSplit(ctx, b); err != nil {
				return m, perr.Wrapf(err, perr.CodeOf(err), "sink %s: split %s", sink.Name(), sp.Split)
			}
		}
		m.Splits = append(m.Splits, domain.SplitSummary{
			Split: sp.Split, Count: len(recs), StartID: sp.StartID, Spans: spans,
		})
		log.Info().
			Str("split", string(sp.Split)).
			Int("records", len(recs)).
			Int("spans", spans).
			Bool("withheld", sp.Split.Withheld()).
			Msg("split written")
	}

	for _, sink := range s.sinks {
		ms, ok := sink.(domain.ManifestSink)
		if !ok {
			continue
		}
		if err := ms.WriteManifest(ctx, m); err != nil {
			return m, perr.Wrapf(err, perr.CodeOf(err), "sink %s: manifest", sink.Name())
		}
	}
	log.Info().Int("splits", len(m.Splits)).Msg("corpus run finished")
	return m, nil
}
