// Package repo holds the database sinks for corpus runs
package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	perr "sttsynth/internal/platform/errors"
	"sttsynth/internal/platform/store"
	"sttsynth/internal/services/corpus/domain"
)

// DefaultBatchSize bounds the rows of one INSERT statement
const DefaultBatchSize = 500

const pgSchema = `
CREATE TABLE IF NOT EXISTS corpus_runs (
	run_id      text PRIMARY KEY,
	seed        numeric(20,0) NOT NULL,
	manifest    jsonb NOT NULL,
	created_at  timestamptz NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS corpus_records (
	run_id      text NOT NULL,
	split       text NOT NULL,
	record_id   text NOT NULL,
	text        text NOT NULL,
	entities    jsonb NOT NULL,
	PRIMARY KEY (run_id, record_id)
);
CREATE INDEX IF NOT EXISTS corpus_records_split_idx ON corpus_records (run_id, split);`

// PG writes records into corpus_records and manifests into corpus_runs
type PG struct {
	db        store.TxRunner
	batchSize int
}

// NewPG returns a postgres sink; batchSize <= 0 means DefaultBatchSize
func NewPG(db store.TxRunner, batchSize int) *PG {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &PG{db: db, batchSize: batchSize}
}

// Name implements domain.SinkPort
func (s *PG) Name() string { return "postgres" }

// EnsureSchema implements domain.SchemaSink
func (s *PG) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, pgSchema); err != nil {
		return perr.FromPostgres(err, "ensure corpus schema")
	}
	return nil
}

// WriteSplit inserts the batch in one transaction, chunked by batch size
func (s *PG) WriteSplit(ctx context.Context, b domain.Batch) error {
	if len(b.Records) == 0 {
		return nil
	}
	err := s.db.Tx(ctx, func(q store.RowQuerier) error {
		for lo := 0; lo < len(b.Records); lo += s.batchSize {
			hi := min(lo+s.batchSize, len(b.Records))
			sql, args, err := insertRecords(b, b.Records[lo:hi])
			if err != nil {
				return err
			}
			if _, err := q.Exec(ctx, sql, args...); err != nil {
				return err
			}
		}
		return nil
	})
	if err == nil {
		return nil
	}
	if _, ok := perr.As(err); ok {
		return err
	}
	return perr.FromPostgres(err, fmt.Sprintf("insert %s records", b.Split))
}

// WriteManifest implements domain.ManifestSink
func (s *PG) WriteManifest(ctx context.Context, m domain.Manifest) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "encode manifest")
	}
	_, err = s.db.Exec(ctx,
		`INSERT INTO corpus_runs (run_id, seed, manifest, created_at) VALUES ($1, $2::numeric, $3::jsonb, $4)`,
		m.RunID, strconv.FormatUint(m.Seed, 10), string(raw), m.CreatedAt,
	)
	return perr.FromPostgres(err, "insert corpus run")
}

func insertRecords(b domain.Batch, recs []domain.Record) (string, []any, error) {
	const cols = 5
	var sb strings.Builder
	sb.WriteString(`INSERT INTO corpus_records (run_id, split, record_id, text, entities) VALUES `)
	args := make([]any, 0, len(recs)*cols)
	for i, r := range recs {
		ents := r.Entities
		if ents == nil {
			ents = []domain.EntitySpan{}
		}
		raw, err := json.Marshal(ents)
		if err != nil {
			return "", nil, perr.Wrapf(err, perr.ErrorCodeJSON, "encode entities of %s", r.ID)
		}
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*cols + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d::jsonb)", base, base+1, base+2, base+3, base+4)
		args = append(args, b.RunID, string(b.Split), r.ID, r.Text, string(raw))
	}
	return sb.String(), args, nil
}
