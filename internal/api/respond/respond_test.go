package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestServe(t *testing.T) {
	body := Body{
		ContentType: ContentTypeJSON,
		Data:        []byte(`{"ok":true}`),
		ETag:        `W/"abc"`,
		TTL:         time.Minute,
		FromCache:   true,
	}

	tests := []struct {
		name        string
		ifNoneMatch string
		status      int
		wantBody    string
	}{
		{"fresh request", "", http.StatusOK, `{"ok":true}`},
		{"stale etag", `W/"old"`, http.StatusOK, `{"ok":true}`},
		{"matching etag", `W/"abc"`, http.StatusNotModified, ""},
		{"etag in list", `W/"old", W/"abc"`, http.StatusNotModified, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.ifNoneMatch != "" {
				req.Header.Set("If-None-Match", tt.ifNoneMatch)
			}
			rec := httptest.NewRecorder()
			Serve(rec, req, body)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
			if rec.Header().Get("ETag") != `W/"abc"` {
				t.Errorf("ETag = %q", rec.Header().Get("ETag"))
			}
		})
	}
}

func TestServe_CacheHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	Serve(rec, httptest.NewRequest(http.MethodGet, "/", nil), Body{
		ContentType: ContentTypeCSV,
		Data:        []byte("name\n"),
		ETag:        `W/"x"`,
		TTL:         time.Minute,
	})

	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=60, stale-while-revalidate=30" {
		t.Errorf("Cache-Control = %q", got)
	}
	if rec.Header().Get("X-Cache") != "MISS" {
		t.Errorf("X-Cache = %q, want MISS", rec.Header().Get("X-Cache"))
	}
	if rec.Header().Get("Content-Type") != ContentTypeCSV {
		t.Errorf("Content-Type = %q", rec.Header().Get("Content-Type"))
	}
}

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusNotFound, "NOT_FOUND", "missing", "")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
	if rec.Header().Get("Cache-Control") != "no-store" {
		t.Errorf("Cache-Control = %q", rec.Header().Get("Cache-Control"))
	}
	var body ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "NOT_FOUND" || body.Error.Message != "missing" || body.Error.Detail != "" {
		t.Errorf("body = %+v", body)
	}
}
