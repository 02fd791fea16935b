package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"sttsynth/internal/platform/config"
	"sttsynth/internal/platform/logger"
	phttp "sttsynth/internal/platform/net/http"
	"sttsynth/internal/platform/store"

	"sttsynth/internal/services/api"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	l := logger.Get()

	// stores are optional here and only back /v1/meta/ready
	var st *store.Store
	pgOn, chOn := apiCfg.MayBool("READY_PG", false), apiCfg.MayBool("READY_CH", false)
	if pgOn || chOn {
		var err error
		st, err = store.Open(ctx, store.FromConfig(root, pgOn, chOn, "api"), store.WithLogger(*l))
		if err != nil {
			stop()
			l.Fatal().Err(err).Msg("store open failed")
		}
		defer func() {
			if err := st.Close(context.Background()); err != nil {
				l.Warn().Err(err).Msg("store close")
			}
		}()
	}

	// http server (reads CORE_API_PORT, CORE_API_READ_TIMEOUT, CORE_API_SHUTDOWN_GRACE)
	srv := phttp.NewServer(apiCfg)

	if err := api.Mount(srv.Router(), api.Options{Root: root, Config: apiCfg, Store: st, Logger: l}); err != nil {
		stop()
		l.Fatal().Err(err).Msg("api mount failed")
	}

	if err := srv.Run(ctx); err != nil {
		stop()
		l.Fatal().Err(err).Msg("http server stopped")
	}
}
