// Package respond writes the API's JSON responses: cacheable renders with
// ETags, detail payloads mapped to their HTTP status, one-off renders that
// must never be stored, and the shared error envelope.
package respond

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/albapepper/pokeview/internal/detail"
)

// X-Cache values.
const (
	CacheHit    = "HIT"
	CacheMiss   = "MISS"
	CacheBypass = "BYPASS"
)

// ErrorResponse is the error envelope for every non-payload failure.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Detail  string `json:"detail,omitempty"`
	} `json:"error"`
}

// Localized marks a response as rendered for lang. The body depends on the
// Accept-Language header and the client cookie, so both go into Vary.
func Localized(w http.ResponseWriter, lang string) {
	w.Header().Set("Content-Language", lang)
	w.Header().Add("Vary", "Accept-Language")
	w.Header().Add("Vary", "Cookie")
}

// WriteJSON writes an encoded render that is (or was) in the server cache.
func WriteJSON(w http.ResponseWriter, data []byte, etag string, ttl time.Duration, cacheHit bool) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("ETag", etag)
	w.Header().Add("Vary", "Accept-Encoding")
	maxAge := int(ttl.Seconds())
	w.Header().Set("Cache-Control",
		fmt.Sprintf("private, max-age=%d, stale-while-revalidate=%d", maxAge, maxAge/2))
	if cacheHit {
		w.Header().Set("X-Cache", CacheHit)
	} else {
		w.Header().Set("X-Cache", CacheMiss)
	}
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// WriteNotModified answers a conditional request whose ETag still matches.
func WriteNotModified(w http.ResponseWriter, etag string) {
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusNotModified)
}

// WriteUncached writes a render that is only valid for this request, such
// as a page with unresolved cards. Neither the server nor the client may
// reuse it.
func WriteUncached(w http.ResponseWriter, status int, v any) {
	w.Header().Set("X-Cache", CacheBypass)
	w.Header().Set("Cache-Control", "no-store")
	writeBody(w, status, v)
}

// PayloadStatus maps a detail payload to its HTTP status: 404 for an unknown
// key, 502 for any other failed entity fetch, 200 otherwise.
func PayloadStatus(p detail.Payload) int {
	if p.State != detail.StateFailed {
		return http.StatusOK
	}
	if p.Failure != nil && p.Failure.Kind == detail.FailureNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

// WritePayload writes a failed or degraded detail payload uncached.
// Complete payloads go through the cache instead.
func WritePayload(w http.ResponseWriter, p detail.Payload) {
	WriteUncached(w, PayloadStatus(p), p)
}

// WriteError sends the error envelope.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteErrorDetail(w, status, code, message, "")
}

// WriteErrorDetail sends the error envelope with the offending value.
func WriteErrorDetail(w http.ResponseWriter, status int, code, message, detail string) {
	resp := ErrorResponse{}
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Detail = detail
	w.Header().Set("Cache-Control", "no-store")
	writeBody(w, status, resp)
}

// WriteJSONObject writes per-client or volatile data, such as preferences
// and health probes, that clients must revalidate.
func WriteJSONObject(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Cache-Control", "no-cache")
	writeBody(w, status, v)
}

func writeBody(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
