// Package catalog serves the browse views around the detail page: paginated
// entity cards and the summary counters.
package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/albapepper/pokeview/internal/i18n"
	"github.com/albapepper/pokeview/internal/pokeapi"
	"github.com/albapepper/pokeview/internal/settle"
)

// Paging defaults.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Upstream is the subset of the PokéAPI client the catalog needs.
type Upstream interface {
	ListPokemon(ctx context.Context, limit, offset int) (*pokeapi.NamedList, error)
	ListTypes(ctx context.Context) (*pokeapi.NamedList, error)
	Pokemon(ctx context.Context, key string) (*pokeapi.Pokemon, error)
}

// Card is one list entry. ID is nil and Sprite empty when the entity record
// could not be fetched; the card is still listed.
type Card struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	ID          *int   `json:"id"`
	Sprite      string `json:"sprite"`
}

// Page is one page of cards. Partial is set when a card record could not be
// fetched or the request was cancelled mid-page.
type Page struct {
	Items      []Card `json:"items"`
	Partial    bool   `json:"-"`
	Count      int    `json:"count"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
	PageNumber int    `json:"page"`
	PageCount  int    `json:"page_count"`
	HasPrev    bool   `json:"has_prev"`
	HasNext    bool   `json:"has_next"`
}

// Info renders the "page / pages" indicator.
func (p Page) Info() string {
	return fmt.Sprintf("%d / %d", p.PageNumber, p.PageCount)
}

// Summary holds the dashboard counters; either may be absent.
type Summary struct {
	TotalPokemon *int `json:"total_pokemon"`
	TypeCount    *int `json:"type_count"`
}

// TypeEntry is a type name with its localized label.
type TypeEntry struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// Service builds catalog views.
type Service struct {
	upstream Upstream
	fanout   int
	logger   *slog.Logger
}

// NewService creates a Service. fanout bounds the per-card fetches.
func NewService(upstream Upstream, fanout int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{upstream: upstream, fanout: fanout, logger: logger}
}

// ClampPaging normalizes user-provided paging values.
func ClampPaging(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// List fetches one page. Failing to fetch the page itself is an error; a
// failing card fetch only blanks that card.
func (s *Service) List(ctx context.Context, limit, offset int) (*Page, error) {
	limit, offset = ClampPaging(limit, offset)

	list, err := s.upstream.ListPokemon(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list page: %w", err)
	}

	names := make([]string, 0, len(list.Results))
	for _, r := range list.Results {
		names = append(names, r.Name)
	}
	records := settle.All(ctx, s.fanout, names, s.upstream.Pokemon)

	partial := false
	items := make([]Card, 0, len(names))
	for i, name := range names {
		card := Card{Name: name, DisplayName: i18n.Capitalize(name)}
		if p, ok := records[i].Get(); ok {
			id := p.ID
			card.ID = &id
			card.Sprite = p.Sprites.FrontDefault
		} else {
			s.logger.Debug("card record unavailable", "name", name)
			partial = true
		}
		items = append(items, card)
	}

	page := &Page{
		Items:      items,
		Partial:    partial || ctx.Err() != nil,
		Count:      list.Count,
		Limit:      limit,
		Offset:     offset,
		PageNumber: offset/limit + 1,
		PageCount:  (list.Count + limit - 1) / limit,
		HasPrev:    offset >= limit,
		HasNext:    offset+limit < list.Count,
	}
	return page, nil
}

// Summary fetches the total entity count and the type count concurrently.
// Each failure leaves its counter nil.
func (s *Service) Summary(ctx context.Context) Summary {
	var sum Summary
	done := make(chan struct{})
	go func() {
		defer close(done)
		l, err := s.upstream.ListPokemon(ctx, 1, 0)
		if m := settle.From(s.logger, "pokemon count", l, err); m.Present() {
			n := l.Count
			sum.TotalPokemon = &n
		}
	}()

	t, err := s.upstream.ListTypes(ctx)
	if settle.From(s.logger, "type count", t, err).Present() {
		n := t.Count
		if n == 0 {
			n = len(t.Results)
		}
		sum.TypeCount = &n
	}
	<-done
	return sum
}

// Types lists the type names with labels in lang.
func (s *Service) Types(ctx context.Context, lang string) ([]TypeEntry, error) {
	t, err := s.upstream.ListTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list types: %w", err)
	}
	out := make([]TypeEntry, 0, len(t.Results))
	for _, r := range t.Results {
		out = append(out, TypeEntry{Name: r.Name, Label: i18n.TypeLabel(lang, r.Name)})
	}
	return out, nil
}
