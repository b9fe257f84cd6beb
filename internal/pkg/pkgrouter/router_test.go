package pkgrouter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shandysiswandi/goviz/internal/pkg/pkgerror"
)

type pngPayload struct{}

func (pngPayload) ContentType() string { return "image/png" }
func (pngPayload) Bytes() []byte       { return []byte{0x89, 'P', 'N', 'G'} }

func TestRouterWritesBinaryPayload(t *testing.T) {
	ro := NewRouter(nil)
	ro.POST("/img", func(context.Context, *http.Request) (any, error) {
		return pngPayload{}, nil
	})

	rec := httptest.NewRecorder()
	ro.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/img", strings.NewReader("{}")))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "image/png" {
		t.Fatalf("unexpected content type: %q", got)
	}
	if got := rec.Body.String(); got != "\x89PNG" {
		t.Fatalf("unexpected body: %q", got)
	}
}

func TestRouterMapsPkgError(t *testing.T) {
	ro := NewRouter(nil)
	ro.POST("/fail", func(context.Context, *http.Request) (any, error) {
		return nil, pkgerror.WrapBusiness(errors.New("nope"), "bad file", pkgerror.CodeUnsupportedFormat)
	})

	rec := httptest.NewRecorder()
	ro.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/fail", nil))

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"message":"bad file"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRouterHealth(t *testing.T) {
	ro := NewRouter(nil)

	rec := httptest.NewRecorder()
	ro.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}
