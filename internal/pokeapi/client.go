// Package pokeapi provides the HTTP client for the public PokéAPI.
//
// Every document is fetched with a rate-limited GET and decoded verbatim.
// Documents are immutable upstream, so raw bodies are kept in the shared
// TTL cache keyed by URL.
package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/albapepper/pokeview/internal/cache"
)

// DefaultBaseURL is the public API root.
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// ErrNotFound is returned when the upstream answers 404.
var ErrNotFound = errors.New("pokeapi: not found")

// NetworkError covers transport failures, unexpected statuses and bodies
// that do not decode.
type NetworkError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("pokeapi: %s returned %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("pokeapi: %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Client is the shared HTTP client for all PokéAPI endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	cache      *cache.Cache
	logger     *slog.Logger
}

// Options configures a Client. Zero values pick sensible defaults.
type Options struct {
	BaseURL           string
	RequestsPerMinute int
	Timeout           time.Duration
	Cache             *cache.Cache
	Logger            *slog.Logger
}

// NewClient creates a PokéAPI client with rate limiting and optional caching.
func NewClient(opts Options) *Client {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	limit := rate.Inf
	burst := 1
	if opts.RequestsPerMinute > 0 {
		limit = rate.Limit(float64(opts.RequestsPerMinute) / 60.0)
		burst = max(1, opts.RequestsPerMinute/60)
	}
	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		limiter:    rate.NewLimiter(limit, burst),
		cache:      opts.Cache,
		logger:     opts.Logger,
	}
}

// NormalizeKey trims and lower-cases a name-or-id key.
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// Pokemon fetches the entity record by name or numeric id.
func (c *Client) Pokemon(ctx context.Context, key string) (*Pokemon, error) {
	key = NormalizeKey(key)
	if key == "" {
		return nil, fmt.Errorf("pokemon %q: %w", key, ErrNotFound)
	}
	var p Pokemon
	if err := c.getJSON(ctx, c.baseURL+"/pokemon/"+url.PathEscape(key), &p); err != nil {
		return nil, fmt.Errorf("pokemon %q: %w", key, err)
	}
	return &p, nil
}

// Species fetches a species record from the URL carried by Pokemon.Species.
func (c *Client) Species(ctx context.Context, speciesURL string) (*Species, error) {
	var s Species
	if err := c.getJSON(ctx, speciesURL, &s); err != nil {
		return nil, fmt.Errorf("species: %w", err)
	}
	return &s, nil
}

// Type fetches a type record (damage relations) from its URL.
func (c *Client) Type(ctx context.Context, typeURL string) (*Type, error) {
	var t Type
	if err := c.getJSON(ctx, typeURL, &t); err != nil {
		return nil, fmt.Errorf("type: %w", err)
	}
	return &t, nil
}

// TypeByName fetches a type record by name.
func (c *Client) TypeByName(ctx context.Context, name string) (*Type, error) {
	return c.Type(ctx, c.baseURL+"/type/"+url.PathEscape(NormalizeKey(name)))
}

// EvolutionChain fetches an evolution chain document from its URL.
func (c *Client) EvolutionChain(ctx context.Context, chainURL string) (*EvolutionChain, error) {
	var ec EvolutionChain
	if err := c.getJSON(ctx, chainURL, &ec); err != nil {
		return nil, fmt.Errorf("evolution chain: %w", err)
	}
	return &ec, nil
}

// ListPokemon fetches one page of the entity list.
func (c *Client) ListPokemon(ctx context.Context, limit, offset int) (*NamedList, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	var l NamedList
	if err := c.getJSON(ctx, c.baseURL+"/pokemon?"+params.Encode(), &l); err != nil {
		return nil, fmt.Errorf("list pokemon: %w", err)
	}
	return &l, nil
}

// ListTypes fetches the category list.
func (c *Client) ListTypes(ctx context.Context) (*NamedList, error) {
	var l NamedList
	if err := c.getJSON(ctx, c.baseURL+"/type", &l); err != nil {
		return nil, fmt.Errorf("list types: %w", err)
	}
	return &l, nil
}

// getJSON performs a cached, rate-limited GET and decodes the body into v.
func (c *Client) getJSON(ctx context.Context, u string, v any) error {
	body, err := c.get(ctx, u)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &NetworkError{URL: u, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	cacheKey := "pokeapi:" + u
	if data, _, ok := c.cache.Get(cacheKey); ok {
		return data, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &NetworkError{URL: u, Err: fmt.Errorf("rate limit wait: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &NetworkError{URL: u, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: u, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response body: %w", err)}
	}
	c.logger.Debug("pokeapi request", "url", u, "status", resp.StatusCode, "duration", time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, &NetworkError{URL: u, StatusCode: resp.StatusCode, Err: errors.New(truncate(body, 200))}
	}

	if c.cache.Enabled() {
		c.cache.Set(cacheKey, body, cache.TTLUpstream)
	}
	return body, nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
