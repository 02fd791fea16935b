// Package http serves corpus previews
package http

import (
	stdhttp "net/http"

	"sttsynth/internal/modkit/httpkit"
	"sttsynth/internal/services/corpus/domain"
)

// Register mounts the corpus endpoints on r
func Register(r httpkit.Router, p domain.PreviewPort) {
	h := &handlers{p: p}
	httpkit.PostJSON(r, "/preview", h.preview)
	httpkit.Get(r, "/labels", h.labels)
}

type handlers struct{ p domain.PreviewPort }

// PreviewOutput is the preview response data
type PreviewOutput struct {
	Seed    uint64          `json:"seed"`
	Split   domain.Split    `json:"split,omitempty"`
	Records []domain.Record `json:"records"`
}

func (h *handlers) preview(r *stdhttp.Request, in domain.PreviewInput) (any, error) {
	recs, err := h.p.Preview(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return PreviewOutput{Seed: in.Seed, Split: in.Split, Records: recs}, nil
}

func (h *handlers) labels(*stdhttp.Request) (any, error) {
	return h.p.Labels(), nil
}
