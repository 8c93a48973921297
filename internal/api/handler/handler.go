// Package handler provides HTTP handlers for all API endpoints.
// Rendered payloads are marshaled once and served from the TTL cache with
// ETags; failures never leak upstream error text to clients.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/albapepper/pokeview/internal/api/respond"
	"github.com/albapepper/pokeview/internal/cache"
	"github.com/albapepper/pokeview/internal/catalog"
	"github.com/albapepper/pokeview/internal/config"
	"github.com/albapepper/pokeview/internal/detail"
	"github.com/albapepper/pokeview/internal/prefs"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	assembler *detail.Assembler
	catalog   *catalog.Service
	prefs     prefs.Store
	cache     *cache.Cache
	cfg       *config.Config
	logger    *slog.Logger
}

// Deps groups the handler dependencies.
type Deps struct {
	Assembler *detail.Assembler
	Catalog   *catalog.Service
	Prefs     prefs.Store
	Cache     *cache.Cache
	Config    *config.Config
	Logger    *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(d Deps) *Handler {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Cache == nil {
		d.Cache = cache.New(false)
	}
	if d.Config == nil {
		d.Config = &config.Config{}
	}
	return &Handler{
		assembler: d.Assembler,
		catalog:   d.Catalog,
		prefs:     d.Prefs,
		cache:     d.Cache,
		cfg:       d.Config,
		logger:    d.Logger,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status, and available optimizations.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Pokeview API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"optimizations": []string{
			"rate_limited_upstream",
			"parallel_sub_fetches",
			"gzip_compression",
			"in_memory_cache",
			"etag_support",
		},
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (active keys, expired keys).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckStore verifies the preference store is reachable.
// @Summary Preference store health check
// @Description Pings the configured preference backend (memory, file, redis or postgres).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/store [get]
func (h *Handler) HealthCheckStore(w http.ResponseWriter, r *http.Request) {
	if err := h.prefs.Ping(r.Context()); err != nil {
		h.logger.Warn("preference store health check failed", "error", err)
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"store":     h.cfg.PreferenceStore,
			"error":     "Preference store check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"store":     h.cfg.PreferenceStore,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// serveCached answers from the cache when possible, including 304s.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration) bool {
	data, etag, ok := h.cache.Get(key)
	if !ok {
		return false
	}
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return true
	}
	respond.WriteJSON(w, data, etag, ttl, true)
	return true
}

// writeCached marshals v, stores it under key and writes it.
func (h *Handler) writeCached(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("failed to encode response", "key", key, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Failed to encode response")
		return
	}
	etag := h.cache.Set(key, data, ttl)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, ttl, false)
}
