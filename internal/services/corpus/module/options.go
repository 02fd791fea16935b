package module

import (
	"sttsynth/internal/core/noise"
	"sttsynth/internal/platform/config"
	"sttsynth/internal/services/corpus/domain"
)

// Options configures the corpus module
type Options struct {
	Seed             uint64
	NoiseProbability float64
	NoisePolicy      string
	EmitCanonical    bool

	// PackPath loads an alternate lexicon pack; empty uses the embedded one
	PackPath string

	// OutDir enables the JSONL sink; empty disables it
	OutDir string

	// PGSink and CHSink need the matching backend in Deps
	PGSink    bool
	CHSink    bool
	BatchSize int

	Splits []domain.SplitSpec
}

// FromConfig reads CORE_CORPUS_*
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_CORPUS_")
	def := domain.DefaultSplits()
	return Options{
		Seed:             c.MayUint64("SEED", 42),
		NoiseProbability: c.MayFloat64("NOISE_PROB", noise.DefaultProbability),
		NoisePolicy: c.MayEnum("NOISE_POLICY", string(noise.PolicyProtect),
			string(noise.PolicyProtect), string(noise.PolicyDrop), string(noise.PolicyLegacy)),
		EmitCanonical: c.MayBool("EMIT_CANONICAL", false),
		PackPath:      c.MayString("PACK", ""),
		OutDir:        c.MayString("OUT_DIR", "data"),
		PGSink:        c.MayBool("PG_SINK", false),
		CHSink:        c.MayBool("CH_SINK", false),
		BatchSize:     c.MayInt("BATCH_SIZE", 500),
		Splits: []domain.SplitSpec{
			{Split: domain.SplitTrain, Count: c.MayInt("TRAIN_COUNT", def[0].Count), StartID: c.MayInt("TRAIN_START", def[0].StartID)},
			{Split: domain.SplitDev, Count: c.MayInt("DEV_COUNT", def[1].Count), StartID: c.MayInt("DEV_START", def[1].StartID)},
			{Split: domain.SplitTest, Count: c.MayInt("TEST_COUNT", def[2].Count), StartID: c.MayInt("TEST_START", def[2].StartID)},
		},
	}
}
