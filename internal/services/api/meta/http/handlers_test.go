package http

import (
	stdctx "context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	phttp "sttsynth/internal/platform/net/http"
)

type pinger struct{ err error }

func (p pinger) Ping(stdctx.Context) error { return p.err }

func serve(t *testing.T, d Deps, path string) []byte {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	Register(r, d)
	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, path, nil))
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("%s status %d", path, rr.Code)
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return env.Data
}

func TestReady_SkipsDisabledStores(t *testing.T) {
	var out ReadyResponse
	_ = json.Unmarshal(serve(t, Deps{ServiceName: "x"}, "/ready"), &out)
	if out.Status != "ok" || len(out.Checks) != 2 {
		t.Fatalf("ready %+v", out)
	}
	for _, c := range out.Checks {
		if c.Status != "skipped" {
			t.Fatalf("check %+v", c)
		}
	}
}

func TestReady_FailingPing(t *testing.T) {
	var out ReadyResponse
	d := Deps{PG: pinger{}, CH: pinger{err: errors.New("down")}}
	_ = json.Unmarshal(serve(t, d, "/ready"), &out)
	if out.Status != "fail" {
		t.Fatalf("status %q", out.Status)
	}
	if out.Checks[0].Status != "ok" || out.Checks[1].Status != "fail" || out.Checks[1].Error != "down" {
		t.Fatalf("checks %+v", out.Checks)
	}
}

func TestReady_UnknownSeam(t *testing.T) {
	var out ReadyResponse
	_ = json.Unmarshal(serve(t, Deps{PG: struct{}{}}, "/ready"), &out)
	if out.Checks[0].Status != "unknown" || out.Status != "ok" {
		t.Fatalf("ready %+v", out)
	}
}

func TestService_Uptime(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := Deps{
		ServiceName: "sttsynth-api",
		StartedAt:   start,
		Now:         func() time.Time { return start.Add(90 * time.Second) },
	}
	var out ServiceResponse
	_ = json.Unmarshal(serve(t, d, "/service"), &out)
	if out.Name != "sttsynth-api" || out.Uptime != 90 {
		t.Fatalf("service %+v", out)
	}

	var h HealthResponse
	_ = json.Unmarshal(serve(t, d, "/health"), &h)
	if !h.OK || h.Started != "2026-01-01T00:00:00Z" {
		t.Fatalf("health %+v", h)
	}
}

func TestVersion_NamesService(t *testing.T) {
	var out map[string]any
	_ = json.Unmarshal(serve(t, Deps{ServiceName: "sttsynth-api"}, "/version"), &out)
	if out["service"] != "sttsynth-api" || out["version"] == "" {
		t.Fatalf("version %+v", out)
	}
}
