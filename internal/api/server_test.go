package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/pokeview/internal/api"
	"github.com/albapepper/pokeview/internal/api/handler"
	"github.com/albapepper/pokeview/internal/cache"
	"github.com/albapepper/pokeview/internal/catalog"
	"github.com/albapepper/pokeview/internal/config"
	"github.com/albapepper/pokeview/internal/detail"
	"github.com/albapepper/pokeview/internal/pokeapi"
	"github.com/albapepper/pokeview/internal/prefs"
	"github.com/albapepper/pokeview/internal/translate"
)

var upstreamDocs = map[string]string{
	"/pokemon/pikachu": `{
		"id": 25, "name": "pikachu", "height": 4, "weight": 60,
		"types": [{"slot": 1, "type": {"name": "electric", "url": "BASE/type/13"}}],
		"stats": [{"base_stat": 35, "stat": {"name": "hp"}}],
		"abilities": [{"ability": {"name": "static"}, "is_hidden": false}, {"ability": {"name": "lightning-rod"}, "is_hidden": true}],
		"moves": [{"move": {"name": "thunder-shock"}}],
		"sprites": {"front_default": "front.png", "other": {"official-artwork": {"front_default": "art.png"}}},
		"species": {"name": "pikachu", "url": "BASE/pokemon-species/25"}
	}`,
	"/type/13": `{"id": 13, "name": "electric", "damage_relations": {"double_damage_from": [{"name": "ground"}]}}`,
	"/pokemon-species/25": `{
		"id": 25, "name": "pikachu", "gender_rate": 4,
		"flavor_text_entries": [{"flavor_text": "It stores electricity.", "language": {"name": "en"}}],
		"genera": [{"genus": "Mouse Pokémon", "language": {"name": "en"}}]
	}`,
	"/pokemon": `{"count": 2, "results": [{"name": "pikachu"}, {"name": "missingno"}]}`,
	"/type":    `{"count": 2, "results": [{"name": "electric"}, {"name": "ground"}]}`,
}

// newUpstream serves upstreamDocs. flaky maps a path to how many of its
// first requests answer 503 before the document is served.
func newUpstream(t *testing.T, flaky map[string]int) *httptest.Server {
	t.Helper()
	var (
		mu  sync.Mutex
		srv *httptest.Server
	)
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/pokemon/broken" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		mu.Lock()
		failing := flaky[r.URL.Path] > 0
		if failing {
			flaky[r.URL.Path]--
		}
		mu.Unlock()
		if failing {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		doc, ok := upstreamDocs[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(strings.ReplaceAll(doc, "BASE", srv.URL)))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	return buildRouter(t, newUpstream(t, nil), nil)
}

func buildRouter(t *testing.T, up *httptest.Server, tr translate.Translator) http.Handler {
	t.Helper()
	appCache := cache.New(true)
	t.Cleanup(appCache.Close)
	client := pokeapi.NewClient(pokeapi.Options{BaseURL: up.URL, Cache: appCache})

	cfg := &config.Config{
		CORSAllowOrigins: []string{"http://localhost:5173"},
		PreferenceStore:  config.StoreMemory,
	}
	deps := handler.Deps{
		Assembler: detail.NewAssembler(client, detail.NewLocalizer(tr, time.Second, nil), 4, nil),
		Catalog:   catalog.NewService(client, 4, nil),
		Prefs:     prefs.NewMemoryStore(),
		Cache:     appCache,
	}
	return api.NewRouter(deps, cfg, nil)
}

func do(t *testing.T, h http.Handler, method, target, body string, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, m := range mutate {
		m(req)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Process-Time"))

	rec = do(t, h, http.MethodGet, "/health/store", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"store":"memory"`)
}

func TestGetPokemonDetail(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/pokemon/Pikachu?lang=en", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, "en", rec.Header().Get("Content-Language"))
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	p := decode[detail.Payload](t, rec)
	assert.Equal(t, detail.StateLoaded, p.State)
	require.NotNil(t, p.Detail)
	assert.Equal(t, 25, p.Detail.ID)
	assert.Equal(t, "pikachu", p.Detail.Name)
	require.Len(t, p.Detail.Types, 1)
	assert.Equal(t, "electric", p.Detail.Types[0].Name)
	assert.Equal(t, "ground", p.Detail.Weaknesses[0].Name)
	assert.Equal(t, "Lightning-rod (hidden)", p.Detail.Abilities[1].Display)
	assert.Empty(t, p.Detail.Evolution)

	rec = do(t, h, http.MethodGet, "/api/v1/pokemon/pikachu?lang=en", "")
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))

	rec = do(t, h, http.MethodGet, "/api/v1/pokemon/pikachu?lang=en", "", func(r *http.Request) {
		r.Header.Set("If-None-Match", etag)
	})
	assert.Equal(t, http.StatusNotModified, rec.Code)
}

func TestGetPokemonDetail_AcceptLanguage(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/pokemon/pikachu", "", func(r *http.Request) {
		r.Header.Set("Accept-Language", "id-ID,id;q=0.9,en;q=0.8")
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "id", rec.Header().Get("Content-Language"))
	p := decode[detail.Payload](t, rec)
	assert.Equal(t, "Listrik", p.Detail.Types[0].Label)
}

func TestGetPokemonDetail_Failures(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/pokemon/missingno", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	p := decode[detail.Payload](t, rec)
	assert.Equal(t, detail.StateFailed, p.State)
	assert.Nil(t, p.Detail)
	assert.Equal(t, detail.FailureNotFound, p.Failure.Kind)

	rec = do(t, h, http.MethodGet, "/api/v1/pokemon/broken", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	p = decode[detail.Payload](t, rec)
	assert.Equal(t, detail.FailureUnavailable, p.Failure.Kind)
	assert.Equal(t, "Failed to load detail.", p.Failure.Message)
}

func TestGetPokemonDetail_TranslationRecovers(t *testing.T) {
	var calls atomic.Int32
	tr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"translatedText": "Ia menyimpan listrik."}`))
	}))
	t.Cleanup(tr.Close)
	h := buildRouter(t, newUpstream(t, nil), translate.NewClient(tr.URL, "", time.Second, nil, nil))

	rec := do(t, h, http.MethodGet, "/api/v1/pokemon/pikachu?lang=id", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "BYPASS", rec.Header().Get("X-Cache"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Empty(t, rec.Header().Get("ETag"))
	p := decode[detail.Payload](t, rec)
	assert.False(t, p.Detail.Description.Translated)
	assert.Equal(t, "It stores electricity.", p.Detail.Description.Text)

	rec = do(t, h, http.MethodGet, "/api/v1/pokemon/pikachu?lang=id", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	p = decode[detail.Payload](t, rec)
	assert.True(t, p.Detail.Description.Translated)
	assert.Equal(t, "Ia menyimpan listrik. (terjemahan otomatis)", p.Detail.Description.Text)

	rec = do(t, h, http.MethodGet, "/api/v1/pokemon/pikachu?lang=id", "")
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.EqualValues(t, 2, calls.Load())
}

func TestGetPokemonDetail_TypeRelationsRecover(t *testing.T) {
	h := buildRouter(t, newUpstream(t, map[string]int{"/type/13": 1}), nil)

	rec := do(t, h, http.MethodGet, "/api/v1/pokemon/pikachu?lang=en", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "BYPASS", rec.Header().Get("X-Cache"))
	p := decode[detail.Payload](t, rec)
	assert.Equal(t, detail.StateLoaded, p.State)
	assert.Empty(t, p.Detail.Weaknesses)

	rec = do(t, h, http.MethodGet, "/api/v1/pokemon/pikachu?lang=en", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	p = decode[detail.Payload](t, rec)
	require.Len(t, p.Detail.Weaknesses, 1)
	assert.Equal(t, "ground", p.Detail.Weaknesses[0].Name)

	rec = do(t, h, http.MethodGet, "/api/v1/pokemon/pikachu?lang=en", "")
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
}

func TestListPokemon(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/pokemon?limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[catalog.Page](t, rec)
	require.Len(t, page.Items, 2)
	require.NotNil(t, page.Items[0].ID)
	assert.Equal(t, 25, *page.Items[0].ID)
	assert.Equal(t, "front.png", page.Items[0].Sprite)
	assert.Nil(t, page.Items[1].ID)
	assert.Equal(t, "BYPASS", rec.Header().Get("X-Cache"))

	// a page with an unresolved card is assembled again
	rec = do(t, h, http.MethodGet, "/api/v1/pokemon?limit=2", "")
	assert.Equal(t, "BYPASS", rec.Header().Get("X-Cache"))

	rec = do(t, h, http.MethodGet, "/api/v1/pokemon?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_LIMIT")
}

func TestSummaryAndTypes(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	sum := decode[catalog.Summary](t, rec)
	require.NotNil(t, sum.TotalPokemon)
	assert.Equal(t, 2, *sum.TotalPokemon)
	require.NotNil(t, sum.TypeCount)
	assert.Equal(t, 2, *sum.TypeCount)

	rec = do(t, h, http.MethodGet, "/api/v1/types?lang=id", "")
	require.Equal(t, http.StatusOK, rec.Code)
	types := decode[[]catalog.TypeEntry](t, rec)
	assert.Equal(t, []catalog.TypeEntry{{Name: "electric", Label: "Listrik"}, {Name: "ground", Label: "Tanah"}}, types)
}

func TestGetLabels(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/labels?lang=id", "")
	require.Equal(t, http.StatusOK, rec.Code)
	labels := decode[handler.LabelsResponse](t, rec)
	assert.Equal(t, "id", labels.Language)
	assert.Equal(t, "Memuat...", labels.Labels["loading"])
	assert.ElementsMatch(t, []string{"en", "id"}, labels.Languages)
}

func TestPreferences(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/preferences", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, handler.ClientCookie, cookie.Name)

	got := decode[handler.PreferencesResponse](t, rec)
	assert.Equal(t, cookie.Value, got.ClientID)
	assert.Equal(t, prefs.ThemeLight, got.Theme)
	assert.Equal(t, "en", got.Language)

	withCookie := func(r *http.Request) { r.AddCookie(cookie) }

	rec = do(t, h, http.MethodPut, "/api/v1/preferences", `{"lang": "id-ID", "theme": "dark"}`, withCookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got = decode[handler.PreferencesResponse](t, rec)
	assert.Equal(t, prefs.ThemeDark, got.Theme)
	assert.Equal(t, "id", got.Language)
	assert.Empty(t, rec.Result().Cookies(), "existing client id is reused")

	// the stored language now drives requests without ?lang
	rec = do(t, h, http.MethodGet, "/api/v1/pokemon/pikachu", "", withCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "id", rec.Header().Get("Content-Language"))

	rec = do(t, h, http.MethodGet, "/api/v1/preferences", "", withCookie)
	got = decode[handler.PreferencesResponse](t, rec)
	assert.Equal(t, prefs.ThemeDark, got.Theme)
	assert.Equal(t, "id", got.Language)
}

func TestPreferences_Invalid(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodPut, "/api/v1/preferences", `{"theme": "sepia"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_THEME")

	rec = do(t, h, http.MethodPut, "/api/v1/preferences", `{"lang": "fr"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_LANGUAGE")

	rec = do(t, h, http.MethodPut, "/api/v1/preferences", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRateLimit(t *testing.T) {
	limited := api.RateLimitMiddleware(2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	codes := make([]int, 0, 3)
	for range 3 {
		rec := do(t, limited, http.MethodGet, "/", "")
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}
