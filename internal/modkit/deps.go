// Package modkit provides module wiring and core deps
package modkit

import (
	"sttsynth/internal/platform/config"
	"sttsynth/internal/platform/logger"
	"sttsynth/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// PG and CH are nil when the backend is switched off
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  store.TxRunner
	CH  store.Clickhouse
}

// FromStore copies the open backends of st into deps
func FromStore(cfg config.Conf, log logger.Logger, st *store.Store) Deps {
	d := Deps{Log: log, Cfg: cfg}
	if st != nil {
		d.PG, d.CH = st.PG, st.CH
	}
	return d
}
