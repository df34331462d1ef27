// Package respond writes career API responses: cacheable bodies carrying
// ETag and Cache-Control headers, conditional 304s, plain JSON documents and
// the error envelope.
package respond

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/albapepper/scoracle-careers/internal/cache"
)

// Content types served by the API.
const (
	ContentTypeJSON = "application/json"
	ContentTypeCSV  = "text/csv; charset=utf-8"
)

// ErrorResponse is the body of every 4xx/5xx response.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries a machine-readable code and a human message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// Body is an encoded response plus what the client needs to revalidate it.
type Body struct {
	ContentType string
	Data        []byte
	ETag        string
	TTL         time.Duration
	FromCache   bool
}

// Serve writes b, or an empty 304 when If-None-Match already names b.ETag.
func Serve(w http.ResponseWriter, r *http.Request, b Body) {
	w.Header().Set("ETag", b.ETag)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), b.ETag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	h := w.Header()
	h.Set("Content-Type", b.ContentType)
	h.Set("Vary", "Accept-Encoding")
	h.Set("X-Cache", cacheStatus(b.FromCache))
	maxAge := int(b.TTL.Seconds())
	h.Set("Cache-Control", fmt.Sprintf("public, max-age=%d, stale-while-revalidate=%d", maxAge, maxAge/2))
	w.WriteHeader(http.StatusOK)
	w.Write(b.Data)
}

// JSON encodes v as an uncached document.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Error writes the error envelope. detail is omitted when empty.
func Error(w http.ResponseWriter, status int, code, message, detail string) {
	w.Header().Set("Cache-Control", "no-store")
	JSON(w, status, ErrorResponse{Error: ErrorBody{Code: code, Message: message, Detail: detail}})
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
