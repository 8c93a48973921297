package translate_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/pokeview/internal/cache"
	"github.com/albapepper/pokeview/internal/translate"
)

func TestClient_Translate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "A mouse.", body["q"])
		assert.Equal(t, "en", body["source"])
		assert.Equal(t, "id", body["target"])
		assert.Equal(t, "text", body["format"])
		assert.Equal(t, "secret", body["api_key"])
		w.Write([]byte(`{"translatedText": "Seekor tikus."}`))
	}))
	defer srv.Close()

	c := translate.NewClient(srv.URL, "secret", time.Second, nil, nil)
	out, err := c.Translate(context.Background(), "A mouse.", "en", "id")
	require.NoError(t, err)
	assert.Equal(t, "Seekor tikus.", out)
}

func TestClient_SameLanguageSkipsNetwork(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c := translate.NewClient(srv.URL, "", time.Second, nil, nil)
	out, err := c.Translate(context.Background(), "Halo", "id", "id")
	require.NoError(t, err)
	assert.Equal(t, "Halo", out)
	assert.Zero(t, hits.Load())
}

func TestClient_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server_error", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) }},
		{"malformed", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`<html>`)) }},
		{"empty", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"translatedText": ""}`)) }},
		{"api_error", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"error": "quota"}`)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := translate.NewClient(srv.URL, "", time.Second, nil, nil)
			_, err := c.Translate(context.Background(), "text", "en", "id")
			assert.ErrorIs(t, err, translate.ErrUnavailable)
		})
	}
}

func TestClient_CachesTranslations(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"translatedText": "Api"}`))
	}))
	defer srv.Close()

	store := cache.New(true)
	defer store.Close()
	c := translate.NewClient(srv.URL, "", time.Second, store, nil)
	for range 2 {
		out, err := c.Translate(context.Background(), "Fire", "en", "id")
		require.NoError(t, err)
		assert.Equal(t, "Api", out)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestDisabled(t *testing.T) {
	_, err := translate.Disabled{}.Translate(context.Background(), "x", "en", "id")
	assert.ErrorIs(t, err, translate.ErrUnavailable)
	assert.ErrorIs(t, err, translate.ErrDisabled)
}
