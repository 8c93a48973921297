package detail_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/albapepper/pokeview/internal/pokeapi"
)

var errUpstream = errors.New("upstream unavailable")

// fakeUpstream serves records from maps. Missing pokemon are ErrNotFound,
// missing secondary documents are errUpstream.
type fakeUpstream struct {
	mu      sync.Mutex
	pokemon map[string]*pokeapi.Pokemon
	species map[string]*pokeapi.Species
	types   map[string]*pokeapi.Type
	chains  map[string]*pokeapi.EvolutionChain

	// gates block Pokemon(key) until the channel is closed, ignoring ctx.
	gates map[string]chan struct{}

	typeCalls  atomic.Int32
	chainCalls atomic.Int32
}

func newFakeUpstream() *fakeUpstream {
	return &fakeUpstream{
		pokemon: map[string]*pokeapi.Pokemon{},
		species: map[string]*pokeapi.Species{},
		types:   map[string]*pokeapi.Type{},
		chains:  map[string]*pokeapi.EvolutionChain{},
		gates:   map[string]chan struct{}{},
	}
}

func (f *fakeUpstream) gate(key string) chan struct{} {
	ch := make(chan struct{})
	f.mu.Lock()
	f.gates[key] = ch
	f.mu.Unlock()
	return ch
}

func (f *fakeUpstream) Pokemon(_ context.Context, key string) (*pokeapi.Pokemon, error) {
	f.mu.Lock()
	gate := f.gates[key]
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pokemon[key]
	if !ok {
		return nil, pokeapi.ErrNotFound
	}
	return p, nil
}

func (f *fakeUpstream) Species(_ context.Context, url string) (*pokeapi.Species, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.species[url]
	if !ok {
		return nil, fmt.Errorf("species %s: %w", url, errUpstream)
	}
	return s, nil
}

func (f *fakeUpstream) Type(_ context.Context, url string) (*pokeapi.Type, error) {
	f.typeCalls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.types[url]
	if !ok {
		return nil, fmt.Errorf("type %s: %w", url, errUpstream)
	}
	return t, nil
}

func (f *fakeUpstream) EvolutionChain(_ context.Context, url string) (*pokeapi.EvolutionChain, error) {
	f.chainCalls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.chains[url]
	if !ok {
		return nil, fmt.Errorf("chain %s: %w", url, errUpstream)
	}
	return c, nil
}

func named(name, url string) pokeapi.NamedResource {
	return pokeapi.NamedResource{Name: name, URL: url}
}

func pokemon(id int, name string, types ...string) *pokeapi.Pokemon {
	p := &pokeapi.Pokemon{
		ID:      id,
		Name:    name,
		Height:  7,
		Weight:  69,
		Species: named(name, "/species/"+name),
	}
	for i, t := range types {
		p.Types = append(p.Types, pokeapi.PokemonType{Slot: i + 1, Type: named(t, "/type/"+t)})
	}
	p.Sprites.Other.OfficialArtwork.FrontDefault = name + ".png"
	return p
}

func damageType(name string, weakTo ...string) *pokeapi.Type {
	t := &pokeapi.Type{Name: name}
	for _, w := range weakTo {
		t.DamageRelations.DoubleDamageFrom = append(t.DamageRelations.DoubleDamageFrom, named(w, "/type/"+w))
	}
	return t
}

func link(name string, next ...pokeapi.ChainLink) pokeapi.ChainLink {
	return pokeapi.ChainLink{Species: named(name, "/species/"+name), EvolvesTo: next}
}

// bulbasaurLine seeds a complete grass/poison family.
func bulbasaurLine(f *fakeUpstream) {
	f.pokemon["bulbasaur"] = pokemon(1, "bulbasaur", "grass", "poison")
	f.pokemon["ivysaur"] = pokemon(2, "ivysaur", "grass", "poison")
	f.pokemon["venusaur"] = pokemon(3, "venusaur", "grass", "poison")

	b := f.pokemon["bulbasaur"]
	b.Stats = []pokeapi.PokemonStat{
		{BaseStat: 45, Stat: named("hp", "")},
		{BaseStat: 255, Stat: named("attack", "")},
	}
	b.Abilities = []pokeapi.AbilitySlot{
		{Ability: named("overgrow", ""), Slot: 1},
		{Ability: named("chlorophyll", ""), IsHidden: true, Slot: 3},
	}
	b.Moves = []pokeapi.MoveSlot{{Move: named("tackle", "")}, {Move: named("vine-whip", "")}}

	f.types["/type/grass"] = damageType("grass", "fire", "ice", "flying", "bug", "poison")
	f.types["/type/poison"] = damageType("poison", "ground", "psychic")

	s := &pokeapi.Species{
		ID:         1,
		Name:       "bulbasaur",
		GenderRate: 1,
		FlavorTextEntries: []pokeapi.FlavorTextEntry{
			{FlavorText: "A strange seed was\nplanted on its\fback at birth.", Language: named("en", "")},
		},
		Genera: []pokeapi.Genus{
			{Genus: "Seed Pokémon", Language: named("en", "")},
			{Genus: "たねポケモン", Language: named("ja", "")},
		},
		EvolutionChain: &pokeapi.Resource{URL: "/evolution-chain/1"},
	}
	f.species["/species/bulbasaur"] = s
	f.chains["/evolution-chain/1"] = &pokeapi.EvolutionChain{
		ID:    1,
		Chain: link("bulbasaur", link("ivysaur", link("venusaur"))),
	}
}
