// Package translate provides a client for LibreTranslate-compatible
// machine translation endpoints.
//
// The service is treated as unreliable: callers get an error for every
// failure mode and decide how to degrade.
package translate

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/albapepper/pokeview/internal/cache"
)

// DefaultURL is the public LibreTranslate instance.
const DefaultURL = "https://libretranslate.de/translate"

const defaultTimeout = 5 * time.Second

// ErrUnavailable is returned for any failed translation attempt.
var ErrUnavailable = errors.New("translation unavailable")

// ErrDisabled is returned by Disabled. It wraps ErrUnavailable but, unlike a
// failed request, will not change on retry.
var ErrDisabled = fmt.Errorf("%w: disabled", ErrUnavailable)

// Translator translates plain text between two languages.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Client talks to a LibreTranslate /translate endpoint.
type Client struct {
	endpoint   string
	apiKey     string // empty = anonymous
	httpClient *http.Client
	cache      *cache.Cache
	logger     *slog.Logger
}

// NewClient creates a translation client. apiKey and c may be empty/nil.
func NewClient(endpoint, apiKey string, timeout time.Duration, c *cache.Cache, logger *slog.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		cache:      c,
		logger:     logger,
	}
}

type request struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type response struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error"`
}

// Translate sends one plain-text translation request.
func (c *Client) Translate(ctx context.Context, text, source, target string) (string, error) {
	if source == target || strings.TrimSpace(text) == "" {
		return text, nil
	}

	cacheKey := translationKey(text, source, target)
	if data, _, ok := c.cache.Get(cacheKey); ok {
		return string(data), nil
	}

	body, err := json.Marshal(request{Q: text, Source: source, Target: target, Format: "text", APIKey: c.apiKey})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: create request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: HTTP %d", ErrUnavailable, resp.StatusCode)
	}

	var out response
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("%w: %s", ErrUnavailable, out.Error)
	}
	if strings.TrimSpace(out.TranslatedText) == "" {
		return "", fmt.Errorf("%w: empty translation", ErrUnavailable)
	}

	c.cache.Set(cacheKey, []byte(out.TranslatedText), cache.TTLTranslation)
	c.logger.Debug("translated text", "source", source, "target", target, "chars", len(text))
	return out.TranslatedText, nil
}

func translationKey(text, source, target string) string {
	sum := sha1.Sum([]byte(text))
	return "translate:" + source + ":" + target + ":" + hex.EncodeToString(sum[:])
}

// Disabled is a Translator that always reports the service as unavailable.
type Disabled struct{}

func (Disabled) Translate(_ context.Context, text, source, target string) (string, error) {
	if source == target {
		return text, nil
	}
	return "", ErrDisabled
}
