package pokeapi

// NamedResource is the {name, url} reference PokéAPI uses for every link.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Resource is a bare {url} reference.
type Resource struct {
	URL string `json:"url"`
}

// Pokemon is the entity record served by /pokemon/{name-or-id}.
type Pokemon struct {
	ID        int           `json:"id"`
	Name      string        `json:"name"`
	Height    int           `json:"height"` // decimetres
	Weight    int           `json:"weight"` // hectograms
	Types     []PokemonType `json:"types"`
	Stats     []PokemonStat `json:"stats"`
	Abilities []AbilitySlot `json:"abilities"`
	Moves     []MoveSlot    `json:"moves"`
	Sprites   Sprites       `json:"sprites"`
	Species   NamedResource `json:"species"`
}

type PokemonType struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

type PokemonStat struct {
	BaseStat int           `json:"base_stat"`
	Stat     NamedResource `json:"stat"`
}

type AbilitySlot struct {
	Ability  NamedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
	Slot     int           `json:"slot"`
}

type MoveSlot struct {
	Move NamedResource `json:"move"`
}

// Sprites carries the two image references the views use.
type Sprites struct {
	FrontDefault string `json:"front_default"`
	Other        struct {
		OfficialArtwork struct {
			FrontDefault string `json:"front_default"`
		} `json:"official-artwork"`
	} `json:"other"`
}

// Artwork returns the official artwork, falling back to the default sprite.
func (s Sprites) Artwork() string {
	if s.Other.OfficialArtwork.FrontDefault != "" {
		return s.Other.OfficialArtwork.FrontDefault
	}
	return s.FrontDefault
}

// TypeNames returns the entity's type names in slot order.
func (p *Pokemon) TypeNames() []string {
	names := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		names = append(names, t.Type.Name)
	}
	return names
}

// Species is the secondary record holding flavor text, genus and gender data.
type Species struct {
	ID                int               `json:"id"`
	Name              string            `json:"name"`
	GenderRate        int               `json:"gender_rate"`
	FlavorTextEntries []FlavorTextEntry `json:"flavor_text_entries"`
	Genera            []Genus           `json:"genera"`
	EvolutionChain    *Resource         `json:"evolution_chain"`
}

type FlavorTextEntry struct {
	FlavorText string        `json:"flavor_text"`
	Language   NamedResource `json:"language"`
	Version    NamedResource `json:"version"`
}

type Genus struct {
	Genus    string        `json:"genus"`
	Language NamedResource `json:"language"`
}

// Type is the category record; only the damage relations are consumed.
type Type struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	DamageRelations DamageRelations `json:"damage_relations"`
}

type DamageRelations struct {
	DoubleDamageFrom []NamedResource `json:"double_damage_from"`
	DoubleDamageTo   []NamedResource `json:"double_damage_to"`
	HalfDamageFrom   []NamedResource `json:"half_damage_from"`
	HalfDamageTo     []NamedResource `json:"half_damage_to"`
	NoDamageFrom     []NamedResource `json:"no_damage_from"`
	NoDamageTo       []NamedResource `json:"no_damage_to"`
}

// EvolutionChain is the document behind species.evolution_chain.url.
type EvolutionChain struct {
	ID    int       `json:"id"`
	Chain ChainLink `json:"chain"`
}

// ChainLink is one node of the evolution tree.
type ChainLink struct {
	Species   NamedResource `json:"species"`
	EvolvesTo []ChainLink   `json:"evolves_to"`
	IsBaby    bool          `json:"is_baby"`
}

// NamedList is the paginated list shape used by /pokemon and /type.
type NamedList struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []NamedResource `json:"results"`
}
