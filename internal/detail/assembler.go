// Package detail assembles the detail view: it merges the entity record,
// its species record, the damage relations of each of its types and its
// evolution line into one localized Payload.
//
// Every optional sub-fetch degrades to absence; only a failed entity fetch
// produces a failed payload.
package detail

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/albapepper/pokeview/internal/i18n"
	"github.com/albapepper/pokeview/internal/pokeapi"
	"github.com/albapepper/pokeview/internal/settle"
)

// Upstream is the subset of the PokéAPI client the assembler needs.
type Upstream interface {
	Pokemon(ctx context.Context, key string) (*pokeapi.Pokemon, error)
	Species(ctx context.Context, url string) (*pokeapi.Species, error)
	Type(ctx context.Context, url string) (*pokeapi.Type, error)
	EvolutionChain(ctx context.Context, url string) (*pokeapi.EvolutionChain, error)
}

// Assembler builds payloads. It holds no per-render state and is safe for
// concurrent use.
type Assembler struct {
	upstream  Upstream
	localizer *Localizer
	fanout    int
	logger    *slog.Logger
}

// NewAssembler creates an Assembler. fanout bounds each concurrent batch
// (<= 0 means unbounded).
func NewAssembler(upstream Upstream, localizer *Localizer, fanout int, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	if localizer == nil {
		localizer = NewLocalizer(nil, 0, logger)
	}
	return &Assembler{upstream: upstream, localizer: localizer, fanout: fanout, logger: logger}
}

// Assemble runs one full render for key in lang.
func (a *Assembler) Assemble(ctx context.Context, key, lang string) Payload {
	lang = i18n.Resolve(lang)
	key = pokeapi.NormalizeKey(key)

	p, err := a.upstream.Pokemon(ctx, key)
	if err != nil {
		a.logger.Warn("failed to load entity", "key", key, "error", err)
		return Failed(key, lang, err)
	}

	var (
		wg      sync.WaitGroup
		weak    []string
		species settle.Maybe[*pokeapi.Species]
		lineage []settle.Maybe[*pokeapi.Pokemon]
		desc    Description

		weakDone, lineageDone, speciesDone, descDone = true, true, true, true
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		weak, weakDone = a.weaknesses(ctx, p.Types)
	}()

	if p.Species.URL != "" {
		s, err := a.upstream.Species(ctx, p.Species.URL)
		species = settle.From(a.logger, "species", s, err)
		speciesDone = err == nil || errors.Is(err, pokeapi.ErrNotFound)
	}

	if s, ok := species.Get(); ok {
		if s.EvolutionChain != nil && s.EvolutionChain.URL != "" {
			wg.Add(1)
			go func() {
				defer wg.Done()
				lineage, lineageDone = a.lineage(ctx, s.EvolutionChain.URL)
			}()
		}
		desc, descDone = a.localizer.describe(ctx, lang, FlavorVariants(s))
	}
	wg.Wait()

	degraded := !(weakDone && lineageDone && speciesDone && descDone) || ctx.Err() != nil
	if degraded {
		a.logger.Debug("detail degraded", "key", key, "lang", lang,
			"types", weakDone, "species", speciesDone, "evolution", lineageDone, "description", descDone)
	}

	return Payload{
		State:    StateLoaded,
		Key:      key,
		Language: lang,
		Degraded: degraded,
		Labels:   i18n.Table(lang),
		Detail:   buildDetail(lang, p, species, weak, lineage, desc),
	}
}

// Failed builds the terminal failed payload for err.
func Failed(key, lang string, err error) Payload {
	kind := FailureUnavailable
	msgKey := "failed_detail"
	if errors.Is(err, pokeapi.ErrNotFound) {
		kind = FailureNotFound
		msgKey = "not_found_alert"
	}
	return Payload{
		State:    StateFailed,
		Key:      key,
		Language: lang,
		Failure:  &Failure{Kind: kind, Message: i18n.Label(lang, msgKey)},
	}
}

// Loading builds the placeholder shown while a render is in flight.
func Loading(key, lang string) Payload {
	return Payload{
		State:    StateLoading,
		Key:      key,
		Language: lang,
		Labels:   map[string]string{"loading": i18n.Label(lang, "loading")},
	}
}

func buildDetail(
	lang string,
	p *pokeapi.Pokemon,
	species settle.Maybe[*pokeapi.Species],
	weak []string,
	lineage []settle.Maybe[*pokeapi.Pokemon],
	desc Description,
) *Detail {
	d := &Detail{
		ID:          p.ID,
		Name:        p.Name,
		DisplayName: i18n.Capitalize(p.Name),
		Number:      FormatNumber(p.ID),
		Image:       p.Sprites.Artwork(),
		Types:       tags(lang, p.TypeNames()),
		Weaknesses:  tags(lang, weak),
		Height:      FormatHeight(p.Height),
		Weight:      FormatWeight(p.Weight),
		Description: desc,
		MoveCount:   len(p.Moves),
	}

	for _, s := range p.Stats {
		d.Stats = append(d.Stats, StatBar{
			Name:    s.Stat.Name,
			Label:   i18n.StatLabel(lang, s.Stat.Name),
			Value:   s.BaseStat,
			Percent: BarPercent(float64(s.BaseStat)),
		})
	}

	hidden := i18n.Label(lang, "hidden")
	for _, ab := range p.Abilities {
		label := i18n.Capitalize(ab.Ability.Name)
		display := label
		if ab.IsHidden {
			display += " " + hidden
		}
		d.Abilities = append(d.Abilities, Ability{
			Name:    ab.Ability.Name,
			Label:   label,
			Hidden:  ab.IsHidden,
			Display: display,
		})
	}

	d.Moves = make([]string, 0, len(p.Moves))
	for _, m := range p.Moves {
		d.Moves = append(d.Moves, m.Move.Name)
	}

	s, known := species.Get()
	rate := genderRateUnknown
	if known {
		rate = s.GenderRate
		d.Genus = Select(lang, GenusVariants(s)).Text
	}
	d.Gender = GenderFor(lang, rate, known)

	for _, m := range lineage {
		member, ok := m.Get()
		if !ok {
			continue
		}
		d.Evolution = append(d.Evolution, EvolutionStage{
			ID:          member.ID,
			Name:        member.Name,
			DisplayName: i18n.Capitalize(member.Name),
			Number:      FormatNumber(member.ID),
			Image:       member.Sprites.Artwork(),
			Types:       tags(lang, member.TypeNames()),
		})
	}
	return d
}

func tags(lang string, names []string) []Tag {
	out := make([]Tag, 0, len(names))
	for _, n := range names {
		out = append(out, Tag{Name: n, Label: i18n.TypeLabel(lang, n)})
	}
	return out
}
