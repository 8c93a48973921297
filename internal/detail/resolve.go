package detail

import (
	"context"
	"sort"

	"github.com/albapepper/pokeview/internal/pokeapi"
	"github.com/albapepper/pokeview/internal/settle"
)

// maxChainDepth bounds the evolution walk against malformed documents.
const maxChainDepth = 16

// weaknesses unions the double-damage-from types of every type the entity
// has. A failed type fetch contributes nothing; the result is never an error.
// complete is false when any type was left out.
func (a *Assembler) weaknesses(ctx context.Context, types []pokeapi.PokemonType) (names []string, complete bool) {
	urls := make([]string, 0, len(types))
	for _, t := range types {
		if t.Type.URL != "" {
			urls = append(urls, t.Type.URL)
		}
	}

	relations := settle.All(ctx, a.fanout, urls, a.upstream.Type)

	complete = true
	set := make(map[string]struct{})
	for i, r := range relations {
		t, ok := r.Get()
		if !ok {
			a.logger.Debug("type relations unavailable", "url", urls[i])
			complete = false
			continue
		}
		for _, d := range t.DamageRelations.DoubleDamageFrom {
			set[d.Name] = struct{}{}
		}
	}

	names = make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, complete
}

// WalkChain flattens an evolution chain by following the first branch at
// every node, base form first.
func WalkChain(chain pokeapi.ChainLink) []string {
	var names []string
	node := &chain
	for depth := 0; node != nil && depth < maxChainDepth; depth++ {
		if node.Species.Name != "" {
			names = append(names, node.Species.Name)
		}
		if len(node.EvolvesTo) == 0 {
			break
		}
		node = &node.EvolvesTo[0]
	}
	return names
}

// lineage resolves the evolution line behind chainURL. A failed chain fetch
// yields nil; a failed member resolution yields None at that position.
// complete is false in either case.
func (a *Assembler) lineage(ctx context.Context, chainURL string) (members []settle.Maybe[*pokeapi.Pokemon], complete bool) {
	if chainURL == "" {
		return nil, true
	}
	chain, err := a.upstream.EvolutionChain(ctx, chainURL)
	if err != nil {
		a.logger.Debug("evolution chain unavailable", "url", chainURL, "error", err)
		return nil, false
	}
	members = settle.All(ctx, a.fanout, WalkChain(chain.Chain), a.upstream.Pokemon)
	for _, m := range members {
		if !m.Present() {
			return members, false
		}
	}
	return members, true
}
