// Package version reports the build stamp carried into run manifests
package version

// BuildInfo identifies the binary that produced a corpus
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build stamp for service
// Set with -ldflags "-X 'sttsynth/internal/core/version.version=v0.1.0'
// -X 'sttsynth/internal/core/version.commit=abcd' -X 'sttsynth/internal/core/version.date=2026-10-01'"
func Info(service string) BuildInfo {
	if service == "" {
		service = "sttsynth"
	}
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
