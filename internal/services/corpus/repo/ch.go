package repo

import (
	"context"

	"sttsynth/internal/core/entity"
	"sttsynth/internal/core/template"
	perr "sttsynth/internal/platform/errors"
	"sttsynth/internal/platform/store"
	"sttsynth/internal/services/corpus/domain"
)

// SpansTable is the clickhouse table holding one row per span
const SpansTable = "corpus_spans"

const chSchema = `
CREATE TABLE IF NOT EXISTS corpus_spans (
	run_id     String,
	split      LowCardinality(String),
	record_id  String,
	span_index UInt16,
	span_start UInt32,
	span_end   UInt32,
	label      LowCardinality(String),
	value      String
) ENGINE = MergeTree
ORDER BY (run_id, split, record_id, span_index)`

// CH flattens spans into corpus_spans for label statistics
type CH struct {
	ch store.Clickhouse
}

// NewCH returns a clickhouse span sink
func NewCH(ch store.Clickhouse) *CH { return &CH{ch: ch} }

// Name implements domain.SinkPort
func (s *CH) Name() string { return "clickhouse" }

// EnsureSchema implements domain.SchemaSink
func (s *CH) EnsureSchema(ctx context.Context) error {
	if err := s.ch.Exec(ctx, chSchema); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "ensure corpus_spans")
	}
	return nil
}

// WriteSplit inserts every span of the batch; withheld splits carry none
func (s *CH) WriteSplit(ctx context.Context, b domain.Batch) error {
	rows := make([][]any, 0, len(b.Records))
	for _, r := range b.Records {
		for i, e := range r.Entities {
			sp := entity.Span{Start: e.Start, End: e.End}
			rows = append(rows, []any{
				b.RunID, string(b.Split), r.ID, uint16(i),
				uint32(e.Start), uint32(e.End), e.Label, template.Slice(r.Text, sp),
			})
		}
	}
	if len(rows) == 0 {
		return nil
	}
	if err := s.ch.Insert(ctx, SpansTable, rows); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "insert %s spans", b.Split)
	}
	return nil
}
