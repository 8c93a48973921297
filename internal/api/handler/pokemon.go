package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/pokeview/internal/api/respond"
	"github.com/albapepper/pokeview/internal/cache"
	"github.com/albapepper/pokeview/internal/catalog"
	"github.com/albapepper/pokeview/internal/detail"
	"github.com/albapepper/pokeview/internal/pokeapi"
)

// GetPokemonDetail returns the assembled detail payload.
// Optional sections (weaknesses, species data, evolution, translation)
// degrade to empty values; only a failed entity fetch fails the request.
// Only complete payloads are cached, so a degraded section is retried on
// the next request.
// @Summary Get Pokémon detail
// @Description Returns the localized detail payload: types, weaknesses, stats, abilities, measurements, gender, description and evolution line. A failed entity fetch returns the failed payload with 404 or 502.
// @Tags pokemon
// @Produce json
// @Param key path string true "Name or national dex id"
// @Param lang query string false "UI language" Enums(en, id)
// @Success 200 {object} detail.Payload
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} detail.Payload
// @Failure 502 {object} detail.Payload
// @Router /api/v1/pokemon/{key} [get]
func (h *Handler) GetPokemonDetail(w http.ResponseWriter, r *http.Request) {
	key := pokeapi.NormalizeKey(chi.URLParam(r, "key"))
	if key == "" {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_KEY", "A name or id is required")
		return
	}

	lang := h.language(r)
	respond.Localized(w, lang)

	cacheKey := fmt.Sprintf("detail:%s:%s", key, lang)
	ttl := cache.TTLDetail
	if h.serveCached(w, r, cacheKey, ttl) {
		return
	}

	payload := h.assembler.Assemble(r.Context(), key, lang)
	if payload.State == detail.StateFailed || payload.Degraded || r.Context().Err() != nil {
		respond.WritePayload(w, payload)
		return
	}

	h.writeCached(w, r, cacheKey, ttl, payload)
}

// ListPokemon returns one page of entity cards.
// @Summary List Pokémon
// @Description Returns one page of cards (name, id, sprite). A card whose record cannot be fetched is still listed with a null id and an empty sprite; such a page is not cached.
// @Tags pokemon
// @Produce json
// @Param limit query int false "Page size (1-100)" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} catalog.Page
// @Failure 400 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/v1/pokemon [get]
func (h *Handler) ListPokemon(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit", catalog.DefaultLimit)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be an integer")
		return
	}
	offset, err := intQuery(r, "offset", 0)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_OFFSET", "offset must be an integer")
		return
	}
	limit, offset = catalog.ClampPaging(limit, offset)

	cacheKey := fmt.Sprintf("list:%d:%d", limit, offset)
	ttl := cache.TTLList
	if h.serveCached(w, r, cacheKey, ttl) {
		return
	}

	page, err := h.catalog.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Warn("failed to list pokemon", "limit", limit, "offset", offset, "error", err)
		respond.WriteError(w, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "Failed to fetch data")
		return
	}
	if page.Partial {
		respond.WriteUncached(w, http.StatusOK, page)
		return
	}
	h.writeCached(w, r, cacheKey, ttl, page)
}

// GetSummary returns the dashboard counters.
// @Summary Get summary counters
// @Description Returns the total Pokémon count and the type count. Either is null when its upstream fetch failed.
// @Tags pokemon
// @Produce json
// @Success 200 {object} catalog.Summary
// @Router /api/v1/summary [get]
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	cacheKey := "summary"
	ttl := cache.TTLList
	if h.serveCached(w, r, cacheKey, ttl) {
		return
	}

	sum := h.catalog.Summary(r.Context())
	if sum.TotalPokemon == nil || sum.TypeCount == nil {
		respond.WriteUncached(w, http.StatusOK, sum)
		return
	}
	h.writeCached(w, r, cacheKey, ttl, sum)
}

// ListTypes returns the type names with localized labels.
// @Summary List types
// @Description Returns every type with its label in the requested language.
// @Tags pokemon
// @Produce json
// @Param lang query string false "UI language" Enums(en, id)
// @Success 200 {array} catalog.TypeEntry
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/v1/types [get]
func (h *Handler) ListTypes(w http.ResponseWriter, r *http.Request) {
	lang := h.language(r)
	w.Header().Set("Content-Language", lang)

	cacheKey := "types:" + lang
	ttl := cache.TTLList
	if h.serveCached(w, r, cacheKey, ttl) {
		return
	}

	types, err := h.catalog.Types(r.Context(), lang)
	if err != nil {
		h.logger.Warn("failed to list types", "error", err)
		respond.WriteError(w, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "Failed to fetch data")
		return
	}
	h.writeCached(w, r, cacheKey, ttl, types)
}

func intQuery(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
