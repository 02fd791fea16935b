package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	kit "sttsynth/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]string{
		"trace":   "trace",
		"debug":   "debug",
		"info":    "info",
		"warn":    "warn",
		"warning": "warn",
		"error":   "error",
		"fatal":   "fatal",
		"panic":   "panic",
		"":        "info",
		" loud ":  "info",
	}
	for in, want := range cases {
		if got := strings.ToLower(parseLevel(in).String()); got != want {
			t.Fatalf("parseLevel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInit_NamedAndContextFields(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{
		Level:        "info",
		Format:       "console",
		Service:      "sttsynth-gen",
		Writer:       &buf,
		WithCaller:   true,
		SampleEvery:  2,
		StaticFields: map[string]string{"build": "test"},
	})

	// resample to N=1 so every line lands
	rv := Get().Sample(&zerolog.BasicSampler{N: 1})
	rv.Info().Msg("root-msg")

	nv := Named("corpus").Sample(&zerolog.BasicSampler{N: 1})
	nv.Info().Msg("named-msg")

	ctx := WithRun(WithRequest(context.Background(), "req-123"), "run-abc")
	cv := C(ctx).Sample(&zerolog.BasicSampler{N: 1})
	cv.Info().Msg("ctx-msg")

	out := buf.String()
	for _, want := range []string{
		"root-msg", "named-msg", "ctx-msg",
		"component=", "corpus",
		"request_id=", "req-123",
		"run_id=", "run-abc",
		"build=", "service=", "sttsynth-gen",
	} {
		kit.MustContain(t, out, want)
	}
}

func TestWithRun_EmptyIsNoop(t *testing.T) {
	ctx := context.Background()
	if WithRun(ctx, "") != ctx || WithRequest(ctx, "") != ctx {
		t.Fatalf("empty ids must not wrap ctx")
	}
	if RunID(WithRun(ctx, "r1")) != "r1" {
		t.Fatalf("RunID lost")
	}
	if RunID(ctx) != "" {
		t.Fatalf("RunID on bare ctx")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_SERVICE", "svc-b")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" || opt.Service != "svc-b" {
		t.Fatalf("FromEnv = %+v", opt)
	}
	if !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("FromEnv caller/sample = %+v", opt)
	}
}
