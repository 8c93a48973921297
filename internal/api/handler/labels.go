package handler

import (
	"net/http"

	"github.com/albapepper/pokeview/internal/cache"
	"github.com/albapepper/pokeview/internal/i18n"
)

// LabelsResponse is the UI chrome label table for one language.
type LabelsResponse struct {
	Language  string            `json:"language"`
	Languages []string          `json:"languages"`
	Labels    map[string]string `json:"labels"`
}

// GetLabels returns the static label table.
// @Summary Get UI labels
// @Description Returns every UI label in the resolved language, with English fallbacks filled in.
// @Tags i18n
// @Produce json
// @Param lang query string false "UI language" Enums(en, id)
// @Success 200 {object} LabelsResponse
// @Router /api/v1/labels [get]
func (h *Handler) GetLabels(w http.ResponseWriter, r *http.Request) {
	lang := h.language(r)
	w.Header().Set("Content-Language", lang)

	cacheKey := "labels:" + lang
	ttl := cache.TTLTranslation
	if h.serveCached(w, r, cacheKey, ttl) {
		return
	}
	h.writeCached(w, r, cacheKey, ttl, LabelsResponse{
		Language:  lang,
		Languages: i18n.Languages(),
		Labels:    i18n.Table(lang),
	})
}
