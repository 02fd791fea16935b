package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"sttsynth/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	// CORSOrigins are allowed origins; empty allows any
	CORSOrigins []string
	// Timeout bounds each request; zero means 30s
	Timeout time.Duration
	// SlowLog marks requests at or above this duration; zero disables
	SlowLog time.Duration
}

// CommonStack returns the baseline middleware for the versioned API
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	stack := middleware.Defaults()
	return append(stack,
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.SlowLog}),
		middleware.RecoverJSON,
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	)
}
