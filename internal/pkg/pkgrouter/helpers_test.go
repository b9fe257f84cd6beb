package pkgrouter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func TestNormalizeCID(t *testing.T) {
	if got := normalizeCID("  abc  "); got != "abc" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
	if got := normalizeCID("\n"); got != "" {
		t.Fatalf("expected empty for newline, got %q", got)
	}
	long := strings.Repeat("a", 200)
	if got := normalizeCID(long); len(got) != 128 {
		t.Fatalf("expected length 128, got %d", len(got))
	}
}

func TestMaskHeaders(t *testing.T) {
	headers := http.Header{}
	headers.Set("Authorization", "secret")
	headers.Set("X-Trace", "ok")

	masked := maskHeaders(headers)
	if got := masked.Get("Authorization"); got != "***" {
		t.Fatalf("expected masked authorization, got %q", got)
	}
	if got := masked.Get("X-Trace"); got != "ok" {
		t.Fatalf("expected X-Trace to stay, got %q", got)
	}
	if got := headers.Get("Authorization"); got != "secret" {
		t.Fatalf("expected original headers unchanged, got %q", got)
	}
}

func TestMaskData(t *testing.T) {
	input := map[string]any{
		"password": "secret",
		"profile": map[string]any{
			"access_token": "token",
		},
		"items": []any{
			map[string]any{
				"refresh_token": "rt",
			},
		},
	}

	masked := maskData(input).(map[string]any)
	if masked["password"] != "***" {
		t.Fatalf("expected masked password")
	}
	if masked["profile"].(map[string]any)["access_token"] != "***" {
		t.Fatalf("expected masked access_token")
	}
	items := masked["items"].([]any)
	if items[0].(map[string]any)["refresh_token"] != "***" {
		t.Fatalf("expected masked refresh_token")
	}
}

func TestParseAndMaskBodyJSON(t *testing.T) {
	body := []byte(`{"password":"secret","name":"bob"}`)
	parsed := parseAndMaskBody("application/json", body)

	m, ok := parsed.(map[string]any)
	if !ok {
		encoded, _ := json.Marshal(parsed)
		t.Fatalf("expected map, got %s", string(encoded))
	}
	if m["password"] != "***" {
		t.Fatalf("expected masked password")
	}
	if m["name"] != "bob" {
		t.Fatalf("expected name to remain")
	}
}

func TestParseAndMaskBodyForm(t *testing.T) {
	body := []byte("password=secret&name=bob")
	parsed := parseAndMaskBody("application/x-www-form-urlencoded", body)

	m, ok := parsed.(map[string]any)
	if !ok {
		t.Fatalf("expected map, got %T", parsed)
	}
	if m["password"] != "***" {
		t.Fatalf("expected masked password")
	}
	if m["name"] != "bob" {
		t.Fatalf("expected name to remain")
	}
}

func TestParseAndMaskBodyBinary(t *testing.T) {
	body := []byte{0xff, 0xfe, 0xfd}
	parsed := parseAndMaskBody("text/plain", body)
	if !reflect.DeepEqual(parsed, "<binary body omitted>") {
		t.Fatalf("expected binary body omission, got %v", parsed)
	}
}

func TestMaskDataHidesUploadPayloads(t *testing.T) {
	masked := maskData(map[string]any{
		"contents": "data:text/csv;base64,eCx5CjEsMgo=",
		"store":    `{"columns":["x"]}`,
		"x":        "x",
	}).(map[string]any)

	if masked["contents"] != "***" || masked["store"] != "***" {
		t.Fatalf("expected upload payloads masked, got %v", masked)
	}
	if masked["x"] != "x" {
		t.Fatalf("expected selection to remain")
	}
}

func TestIsMultipart(t *testing.T) {
	if !isMultipart("multipart/form-data; boundary=abc") {
		t.Fatalf("expected multipart detection")
	}
	if isMultipart("application/json") {
		t.Fatalf("did not expect json to be multipart")
	}
}

func TestPeekRequestBodySkipsLargeBody(t *testing.T) {
	payload := strings.Repeat("x", 2*maxLoggedBodyBytes)
	r, err := http.NewRequest(http.MethodPost, "/api/upload", strings.NewReader(payload))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	r.Header.Set("Content-Type", "application/json")

	if got := peekRequestBody(r); got != "<large body omitted>" {
		t.Fatalf("expected large body marker, got %v", got)
	}

	rest, err := io.ReadAll(r.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(rest) != payload {
		t.Fatalf("handler saw %d bytes, want %d", len(rest), len(payload))
	}
}

func TestPeekRequestBodyKeepsSmallBody(t *testing.T) {
	r, err := http.NewRequest(http.MethodPost, "/api/chart", strings.NewReader(`{"x":"a","store":"big"}`))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	r.Header.Set("Content-Type", "application/json")

	got, ok := peekRequestBody(r).(map[string]any)
	if !ok || got["x"] != "a" || got["store"] != "***" {
		t.Fatalf("unexpected logged body: %#v", got)
	}

	rest, err := io.ReadAll(r.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(rest) != `{"x":"a","store":"big"}` {
		t.Fatalf("body not replayed: %q", rest)
	}
}

func TestMiddlewareLoggingPreservesBodyLimit(t *testing.T) {
	var tooLarge bool
	h := middlewareLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1024))
		var mbe *http.MaxBytesError
		tooLarge = errors.As(err, &mbe)
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader(strings.Repeat("y", 4*maxLoggedBodyBytes)))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if !tooLarge {
		t.Fatal("expected handler body limit to trip")
	}
}
