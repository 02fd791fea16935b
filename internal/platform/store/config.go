package store

import (
	"time"

	"sttsynth/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	AppName     string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// boot knobs; zero means the opener defaults
	ConnectRetries int
	PingTimeout    time.Duration
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled    bool
	URL        string
	ClientName string
	ClientTag  string
}

// FromConfig reads SERVICE_PGSQL_* and SERVICE_CLICKHOUSE_* for the backends
// that are switched on; URLs are required for enabled backends
func FromConfig(root config.Conf, pgOn, chOn bool, role string) Config {
	var cfg Config
	if pgOn {
		pc := root.Prefix("SERVICE_PGSQL_")
		cfg.PG = PGConfig{
			Enabled:        true,
			URL:            pc.MustString("DBURL"),
			AppName:        role,
			MaxConns:       int32(pc.MayInt("MAX_CONNS", 4)),
			SlowQueryMs:    pc.MayInt("SLOW_MS", 500),
			LogSQL:         pc.MayBool("LOG_SQL", false),
			ConnectRetries: pc.MayInt("CONNECT_RETRIES", 0),
			PingTimeout:    pc.MayDuration("PING_TIMEOUT", 0),
		}
	}
	if chOn {
		cc := root.Prefix("SERVICE_CLICKHOUSE_")
		cfg.CH = CHConfig{
			Enabled:    true,
			URL:        cc.MustString("DBURL"),
			ClientName: "sttsynth",
			ClientTag:  role,
		}
	}
	return cfg
}
