package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/albapepper/pokeview/internal/api/respond"
	"github.com/albapepper/pokeview/internal/i18n"
	"github.com/albapepper/pokeview/internal/prefs"
)

// ClientCookie carries the anonymous client id preferences are stored under.
const ClientCookie = "pokeview_client"

const clientCookieMaxAge = 365 * 24 * time.Hour

// PreferencesResponse is the body of the preference endpoints.
type PreferencesResponse struct {
	ClientID string `json:"client_id"`
	Theme    string `json:"theme"`
	Language string `json:"lang"`
}

// PreferencesUpdate is the PUT body; absent fields are left unchanged.
type PreferencesUpdate struct {
	Theme    *string `json:"theme"`
	Language *string `json:"lang"`
}

// GetPreferences returns the caller's stored preferences.
// @Summary Get preferences
// @Description Returns the theme and language stored for the client cookie, issuing a new client id when absent. Unset values fall back to light and the negotiated language.
// @Tags preferences
// @Produce json
// @Success 200 {object} PreferencesResponse
// @Router /api/v1/preferences [get]
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	id := h.ensureClientID(w, r)
	m := prefs.NewManager(r.Context(), h.prefs, id, h.negotiatedLanguage(r), h.logger)
	writePreferences(w, id, m.Current())
}

// UpdatePreferences changes the caller's theme and/or language.
// @Summary Update preferences
// @Description Sets theme (light, dark) and/or lang (en, id) for the client cookie.
// @Tags preferences
// @Accept json
// @Produce json
// @Param body body PreferencesUpdate true "Fields to change"
// @Success 200 {object} PreferencesResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /api/v1/preferences [put]
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var body PreferencesUpdate
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&body); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Body must be a JSON object")
		return
	}
	if body.Theme != nil && !prefs.ValidTheme(*body.Theme) {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_THEME", "theme must be light or dark")
		return
	}
	if body.Language != nil && i18n.Normalize(*body.Language) == "" {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_LANGUAGE", "Unsupported language", *body.Language)
		return
	}

	id := h.ensureClientID(w, r)
	m := prefs.NewManager(r.Context(), h.prefs, id, h.negotiatedLanguage(r), h.logger)
	err := m.Update(r.Context(), func(p *prefs.Preferences) {
		if body.Theme != nil {
			p.Theme = *body.Theme
		}
		if body.Language != nil {
			p.Language = i18n.Normalize(*body.Language)
		}
	})
	if err != nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Failed to save preferences")
		return
	}
	writePreferences(w, id, m.Current())
}

func writePreferences(w http.ResponseWriter, id string, p prefs.Preferences) {
	respond.WriteJSONObject(w, http.StatusOK, PreferencesResponse{
		ClientID: id,
		Theme:    p.Theme,
		Language: p.Language,
	})
}

// clientID returns the caller's client id when the cookie carries a valid one.
func clientID(r *http.Request) (string, bool) {
	c, err := r.Cookie(ClientCookie)
	if err != nil {
		return "", false
	}
	id, err := uuid.Parse(c.Value)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

func (h *Handler) ensureClientID(w http.ResponseWriter, r *http.Request) string {
	if id, ok := clientID(r); ok {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     ClientCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(clientCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// language picks the request language: explicit query, stored preference,
// Accept-Language, configured default, English.
func (h *Handler) language(r *http.Request) string {
	if l := i18n.Normalize(r.URL.Query().Get("lang")); l != "" {
		return l
	}
	if id, ok := clientID(r); ok {
		p, err := h.prefs.Load(r.Context(), id)
		switch {
		case err == nil:
			if l := i18n.Normalize(p.Language); l != "" {
				return l
			}
		case !errors.Is(err, prefs.ErrNotFound):
			h.logger.Debug("stored preferences unavailable", "client_id", id, "error", err)
		}
	}
	return h.negotiatedLanguage(r)
}

func (h *Handler) negotiatedLanguage(r *http.Request) string {
	return i18n.Resolve(i18n.Negotiate(r.Header.Get("Accept-Language")), h.cfg.DefaultLanguage)
}
