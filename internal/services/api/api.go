// Package api provides the HTTP API for the application
package api

import (
	"sttsynth/internal/platform/config"
	"sttsynth/internal/platform/logger"
	phttp "sttsynth/internal/platform/net/http"
	"sttsynth/internal/platform/net/middleware"
	"sttsynth/internal/platform/store"

	"sttsynth/internal/modkit"
	"sttsynth/internal/modkit/httpkit"
	"sttsynth/internal/modkit/module"

	metamod "sttsynth/internal/services/api/meta/module"
	corpusmod "sttsynth/internal/services/corpus/module"
)

// Options are the API options
type Options struct {
	// Root is the unprefixed view; module options read CORE_CORPUS_* from it
	Root config.Conf
	// Config is the CORE_API_ view
	Config config.Conf
	// Store is optional and only feeds readiness checks
	Store  *store.Store
	Logger *logger.Logger
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) error {
	var log logger.Logger
	if opt.Logger != nil {
		log = *opt.Logger
	}
	deps := modkit.FromStore(opt.Root, log, opt.Store)

	// previews never persist, so the run sinks are switched off here
	co := corpusmod.FromConfig(opt.Root)
	co.OutDir = ""
	co.PGSink, co.CHSink = false, false
	corpus, err := corpusmod.New(deps, co)
	if err != nil {
		return err
	}

	mods := []module.Module{
		metamod.New(deps),
		corpus,
	}

	r.Use(middleware.Heartbeat("/healthz"))

	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: opt.Config.MayCSV("CORS_ORIGINS", nil),
		Timeout:     opt.Config.MayDuration("REQUEST_TIMEOUT", 0),
		SlowLog:     opt.Config.MayDuration("SLOW_LOG", 0),
	})
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
	return nil
}
