package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"sttsynth/internal/modkit"
	"sttsynth/internal/modkit/module"
	"sttsynth/internal/platform/config"
	perr "sttsynth/internal/platform/errors"
	"sttsynth/internal/platform/logger"
	"sttsynth/internal/platform/store"

	corpusdom "sttsynth/internal/services/corpus/domain"
	corpusmod "sttsynth/internal/services/corpus/module"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l := logger.Get()
	if err := run(ctx, os.Args[1:], config.New()); err != nil {
		stop()
		l.Fatal().Err(err).Int("code", int(perr.CodeOf(err))).Msg("corpus generation failed")
	}
}

// run parses flags over the CORE_CORPUS_* defaults, opens the requested
// stores and writes one corpus
func run(ctx context.Context, args []string, root config.Conf) error {
	o := corpusmod.FromConfig(root)

	fs := flag.NewFlagSet("sttsynth-gen", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&o.OutDir, "out", o.OutDir, "output directory for <split>.jsonl and manifest.json")
	fs.Uint64Var(&o.Seed, "seed", o.Seed, "PRNG seed")
	fs.IntVar(&o.Splits[0].Count, "train", o.Splits[0].Count, "training records")
	fs.IntVar(&o.Splits[0].StartID, "train-start", o.Splits[0].StartID, "first training id")
	fs.IntVar(&o.Splits[1].Count, "dev", o.Splits[1].Count, "dev records")
	fs.IntVar(&o.Splits[1].StartID, "dev-start", o.Splits[1].StartID, "first dev id")
	fs.IntVar(&o.Splits[2].Count, "test", o.Splits[2].Count, "test records (labels withheld)")
	fs.IntVar(&o.Splits[2].StartID, "test-start", o.Splits[2].StartID, "first test id")
	fs.Float64Var(&o.NoiseProbability, "noise", o.NoiseProbability, "filler noise probability per record")
	fs.StringVar(&o.NoisePolicy, "noise-policy", o.NoisePolicy, "span policy under noise: protect, drop or legacy")
	fs.StringVar(&o.PackPath, "pack", o.PackPath, "alternate lexicon pack (yaml)")
	fs.BoolVar(&o.PGSink, "pg", o.PGSink, "also write records to postgres (SERVICE_PGSQL_*)")
	fs.BoolVar(&o.CHSink, "ch", o.CHSink, "also write spans to clickhouse (SERVICE_CLICKHOUSE_*)")
	fs.BoolVar(&o.EmitCanonical, "canonical", o.EmitCanonical, "emit canonical values on spans")
	if err := fs.Parse(args); err != nil {
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "flags")
	}

	l := logger.Named("gen")

	var st *store.Store
	if o.PGSink || o.CHSink {
		var err error
		st, err = store.Open(ctx, store.FromConfig(root, o.PGSink, o.CHSink, "gen"), store.WithLogger(*l))
		if err != nil {
			return perr.Wrap(err, perr.ErrorCodeUnavailable, "open store")
		}
		defer func() {
			if err := st.Close(context.Background()); err != nil {
				l.Error().Err(err).Msg("failed to close store")
			}
		}()
	}

	cm, err := corpusmod.New(modkit.FromStore(root, *l, st), o)
	if err != nil {
		return err
	}
	module.Register(cm.Name(), cm.Ports())

	runner := module.MustPortsOf[corpusdom.RunnerPort](cm)
	m, err := runner.Run(ctx, cm.RunInput())
	if err != nil {
		return err
	}
	for _, s := range m.Splits {
		l.Info().Str("split", string(s.Split)).Int("records", s.Count).Msg("generated")
	}
	l.Info().Str("run_id", m.RunID).Str("out", o.OutDir).Strs("sinks", m.Sinks).Msg("data generation complete")
	return nil
}
