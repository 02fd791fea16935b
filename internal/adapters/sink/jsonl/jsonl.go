// Package jsonl writes corpus splits as newline delimited JSON files
package jsonl

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	perr "sttsynth/internal/platform/errors"
	"sttsynth/internal/services/corpus/domain"
)

// ManifestFile is the run manifest written next to the splits
const ManifestFile = "manifest.json"

// Sink writes <dir>/<split>.jsonl, one record per line
// Files are written to a .part sibling and renamed once complete
type Sink struct {
	dir string
}

// New creates dir if needed and returns a sink rooted there
func New(dir string) (*Sink, error) {
	if dir == "" {
		return nil, perr.InvalidArgf("jsonl: output dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeIO, "create %s", dir)
	}
	return &Sink{dir: dir}, nil
}

// Name implements domain.SinkPort
func (s *Sink) Name() string { return "jsonl" }

// Path returns the file a split is written to
func (s *Sink) Path(split domain.Split) string {
	return filepath.Join(s.dir, string(split)+".jsonl")
}

// WriteSplit implements domain.SinkPort
func (s *Sink) WriteSplit(ctx context.Context, b domain.Batch) error {
	return writeAtomic(s.Path(b.Split), func(w *bufio.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		for _, r := range b.Records {
			if err := ctx.Err(); err != nil {
				return err
			}
			if r.Entities == nil {
				r.Entities = []domain.EntitySpan{}
			}
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteManifest implements domain.ManifestSink
func (s *Sink) WriteManifest(_ context.Context, m domain.Manifest) error {
	return writeAtomic(filepath.Join(s.dir, ManifestFile), func(w *bufio.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	})
}

func writeAtomic(path string, fill func(*bufio.Writer) error) error {
	tmp := path + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "create %s", tmp)
	}
	w := bufio.NewWriter(f)
	if err := fill(w); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return perr.Wrapf(err, perr.ErrorCodeIO, "write %s", path)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return perr.Wrapf(err, perr.ErrorCodeIO, "flush %s", path)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return perr.Wrapf(err, perr.ErrorCodeIO, "close %s", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "rename %s", tmp)
	}
	return nil
}
