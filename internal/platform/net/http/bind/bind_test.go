package bind

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "sttsynth/internal/platform/errors"
)

type previewIn struct {
	Seed  uint64 `json:"seed"`
	Count int    `json:"count" validate:"min=1,max=50"`
	Split string `json:"split" validate:"omitempty,oneof=train dev test"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestParseJSON_Success(t *testing.T) {
	got, err := ParseJSON[previewIn](post(`{"seed":42,"count":3,"split":"dev"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Seed != 42 || got.Count != 3 || got.Split != "dev" {
		t.Fatalf("got %+v", got)
	}
}

func TestParseJSON_Errors(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		code  perr.ErrorCode
		field string
	}{
		{"invalid json", `{`, perr.ErrorCodeJSON, ""},
		{"unknown field", `{"count":1,"bogus":true}`, perr.ErrorCodeJSON, ""},
		{"trailing data", `{"count":1} {}`, perr.ErrorCodeJSON, ""},
		{"empty body validates zero value", ``, perr.ErrorCodeValidation, "count"},
		{"max", `{"count":51}`, perr.ErrorCodeValidation, "count"},
		{"oneof", `{"count":1,"split":"holdout"}`, perr.ErrorCodeValidation, "split"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseJSON[previewIn](post(tc.body))
			if perr.CodeOf(err) != tc.code {
				t.Fatalf("code = %v (%v), want %v", perr.CodeOf(err), err, tc.code)
			}
			if tc.field != "" {
				e, _ := perr.As(err)
				if e.Field() != tc.field {
					t.Fatalf("field = %q, want %q", e.Field(), tc.field)
				}
			}
		})
	}
}

func TestParseJSON_MaxBytes(t *testing.T) {
	_, err := ParseJSON[previewIn](post(`{"count":1,"split":"train"}`), JSONOptions{MaxBytes: 8})
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("truncated body should fail decode: %v", err)
	}
}

func TestStruct_ShortMessages(t *testing.T) {
	err := Struct(previewIn{Count: 0})
	if err == nil || !strings.Contains(err.Error(), "count must be at least 1") {
		t.Fatalf("message = %v", err)
	}
	err = Struct(previewIn{Count: 1, Split: "x"})
	if err == nil || !strings.Contains(err.Error(), "split must be one of [train dev test]") {
		t.Fatalf("message = %v", err)
	}
	if Struct(previewIn{Count: 5}) != nil {
		t.Fatalf("valid struct rejected")
	}
}

func TestStruct_NotAStruct(t *testing.T) {
	if !perr.IsCode(Struct(42), perr.ErrorCodeValidation) {
		t.Fatalf("non-struct should map to validation error")
	}
}

func TestValidationFieldAndMessage_Foreign(t *testing.T) {
	if f, m := ValidationFieldAndMessage(nil); f != "" || m != "" {
		t.Fatalf("nil -> %q %q", f, m)
	}
	if _, m := ValidationFieldAndMessage(perr.NotFoundf("x")); m != "x" {
		t.Fatalf("foreign message = %q", m)
	}
}
