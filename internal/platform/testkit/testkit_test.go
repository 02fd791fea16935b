package testkit

import (
	"os"
	"path/filepath"
	"testing"
)

var seamFn = func() string { return "real" }

func TestMustPanic(t *testing.T) {
	MustPanic(t, func() { panic("boom") })
}

func TestMustContain(t *testing.T) {
	MustContain(t, "utt_0000 utt_0001", "utt_0001")
}

func TestReadLines(t *testing.T) {
	p := filepath.Join(t.TempDir(), "x.jsonl")
	if err := os.WriteFile(p, []byte("{\"a\":1}\n{\"a\":2}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	lines := ReadLines(t, p)
	if len(lines) != 2 || lines[1] != `{"a":2}` {
		t.Fatalf("lines = %q", lines)
	}
}

func TestSwap_Restores(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Swap(t, &seamFn, func() string { return "fake" })
		if seamFn() != "fake" {
			t.Fatalf("swap did not take effect")
		}
	})
	if seamFn() != "real" {
		t.Fatalf("swap not restored")
	}
}
