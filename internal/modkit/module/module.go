// Package module defines the minimal contract for a modkit module
package module

import (
	phttp "sttsynth/internal/platform/net/http"
)

// Module is what the API composes: routes, ports and a name
// kept apart from modkit so a module can export its own ports type
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
