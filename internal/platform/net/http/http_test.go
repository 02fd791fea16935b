package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	perr "sttsynth/internal/platform/errors"
	phttp "sttsynth/internal/platform/net/http"
)

type echoIn struct {
	Name  string `json:"name" validate:"required"`
	Count int    `json:"count" validate:"min=1,max=5"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) phttp.Envelope {
	t.Helper()
	var env phttp.Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v body=%s", err, rr.Body.String())
	}
	return env
}

func TestHandle_OKEnvelope(t *testing.T) {
	h := phttp.Handle(func(r *http.Request) phttp.Response { return phttp.OK(map[string]int{"n": 1}) })
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	env := decode(t, rr)
	if env.StatusCode != 200 || env.Status != "OK" || env.Error != "" {
		t.Fatalf("unexpected envelope %+v", env)
	}
	if got := rr.Header().Get("Content-Type"); !strings.HasPrefix(got, "application/json") {
		t.Fatalf("content type %q", got)
	}
}

func TestHandle_ErrorMapsCode(t *testing.T) {
	h := phttp.Handle(func(r *http.Request) phttp.Response {
		return phttp.Error(perr.NotFoundf("no such split %q", "x"))
	})
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status %d", rr.Code)
	}
	env := decode(t, rr)
	if env.Code != perr.ErrorCodeNotFound || !strings.Contains(env.Error, "no such split") {
		t.Fatalf("unexpected envelope %+v", env)
	}
}

func TestHandle_NoContent(t *testing.T) {
	h := phttp.Handle(func(r *http.Request) phttp.Response { return phttp.Response{Status: http.StatusNoContent} })
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusNoContent || rr.Body.Len() != 0 {
		t.Fatalf("expected empty 204 got %d %q", rr.Code, rr.Body.String())
	}
}

func TestJSONHandler_ValidatesBody(t *testing.T) {
	h := phttp.JSONHandler(func(r *http.Request, in echoIn) (any, error) {
		return in, nil
	})

	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","count":9}`)))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
	if env := decode(t, rr); env.Field != "count" {
		t.Fatalf("expected field count got %q", env.Field)
	}

	rr = httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","count":2}`)))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCall_PassesThroughResponse(t *testing.T) {
	h := phttp.Call(func(r *http.Request) (any, error) {
		return phttp.Response{Status: http.StatusAccepted, Body: "queued"}, nil
	})
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusAccepted {
		t.Fatalf("expected 202 got %d", rr.Code)
	}
}

func TestAdaptChi_RoutesAndGroups(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	r.Route("/v1", func(v phttp.Router) {
		v.Get("/ping", phttp.Call(func(*http.Request) (any, error) { return "pong", nil }))
		v.Group(func(g phttp.Router) {
			g.Post("/echo", phttp.JSONHandler(func(_ *http.Request, in echoIn) (any, error) { return in.Name, nil }))
		})
	})

	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	if rr.Code != http.StatusOK || decode(t, rr).Data != "pong" {
		t.Fatalf("ping failed: %d %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/echo", strings.NewReader(`{"name":"z","count":1}`)))
	if rr.Code != http.StatusOK || decode(t, rr).Data != "z" {
		t.Fatalf("echo failed: %d %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/echo", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", rr.Code)
	}
}
