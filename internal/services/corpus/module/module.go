// Package module wires the corpus generator, its sinks and its routes
package module

import (
	"net/http"

	"sttsynth/internal/adapters/sink/jsonl"
	"sttsynth/internal/core/lexicon"
	"sttsynth/internal/core/noise"
	"sttsynth/internal/core/version"
	"sttsynth/internal/modkit"
	"sttsynth/internal/modkit/httpkit"
	perr "sttsynth/internal/platform/errors"
	str "sttsynth/internal/platform/strings"
	"sttsynth/internal/services/corpus/domain"
	corpushttp "sttsynth/internal/services/corpus/http"
	"sttsynth/internal/services/corpus/repo"
	"sttsynth/internal/services/corpus/service"
)

// Ports exposed by the corpus module
type Ports struct {
	Runner  domain.RunnerPort
	Preview domain.PreviewPort
}

// Module implements modkit.Module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	opts  Options
	sinks []domain.SinkPort
	ports Ports
}

// New loads the pack, builds the generator and the configured sinks
func New(deps modkit.Deps, o Options, opts ...modkit.Option) (*Module, error) {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("corpus"),
		modkit.WithPrefix("/corpus"),
	}, opts...)...)

	pack, err := loadPack(o.PackPath)
	if err != nil {
		return nil, err
	}
	pol, err := noise.ParsePolicy(o.NoisePolicy)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeConfig, "noise policy")
	}
	gen, err := service.NewGenerator(pack, service.GeneratorConfig{
		Noise:         noise.Options{Probability: o.NoiseProbability, Policy: pol},
		EmitCanonical: o.EmitCanonical,
	})
	if err != nil {
		return nil, err
	}

	sinks, err := buildSinks(deps, o)
	if err != nil {
		return nil, err
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		opts:      o,
		sinks:     sinks,
	}
	prev := service.NewPreviewer(gen)
	m.ports = Ports{
		Runner:  service.NewRunner(gen, sinks, service.WithBuild(version.Info("sttsynth-gen"))),
		Preview: prev,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		corpushttp.Register(r, prev)
		if external != nil {
			external(r)
		}
	}
	return m, nil
}

func loadPack(path string) (*lexicon.Pack, error) {
	var (
		p   *lexicon.Pack
		err error
	)
	if path == "" {
		p, err = lexicon.Load()
	} else {
		p, err = lexicon.LoadFile(path)
	}
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeConfig, "load lexicon pack")
	}
	return p, nil
}

func buildSinks(deps modkit.Deps, o Options) ([]domain.SinkPort, error) {
	var sinks []domain.SinkPort
	if o.OutDir != "" {
		s, err := jsonl.New(o.OutDir)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s)
	}
	if o.PGSink {
		if deps.PG == nil {
			return nil, perr.Configf("corpus: postgres sink enabled without a postgres store")
		}
		sinks = append(sinks, repo.NewPG(deps.PG, o.BatchSize))
	}
	if o.CHSink {
		if deps.CH == nil {
			return nil, perr.Configf("corpus: clickhouse sink enabled without a clickhouse store")
		}
		sinks = append(sinks, repo.NewCH(deps.CH))
	}
	return sinks, nil
}

// RunInput returns the run request described by the options
func (m *Module) RunInput() domain.RunInput {
	return domain.RunInput{Seed: m.opts.Seed, Splits: m.opts.Splits}
}

// Sinks returns the configured sink names in write order
func (m *Module) Sinks() []string {
	out := make([]string, 0, len(m.sinks))
	for _, s := range m.sinks {
		out = append(out, s.Name())
	}
	return out
}

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(str.MustPrefix(m.prefix), func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		m.register(rr)
	})
}

// Name implements modkit.Module
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

var _ modkit.Module = (*Module)(nil)
