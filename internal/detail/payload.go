package detail

// State is the lifecycle of one render invocation.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateFailed  State = "failed"
)

// Failure kinds reported in a failed payload.
const (
	FailureNotFound    = "not_found"
	FailureUnavailable = "unavailable"
)

// Payload is everything the presentation layer needs for one detail view.
// When State is failed only Failure (and the identifying fields) is set.
// Degraded marks a loaded payload in which some optional section fell back
// because of a failure that may not recur; it must not be reused.
type Payload struct {
	State      State             `json:"state"`
	Key        string            `json:"key"`
	Language   string            `json:"language"`
	Generation uint64            `json:"-"`
	Degraded   bool              `json:"-"`
	Labels     map[string]string `json:"labels,omitempty"`
	Failure    *Failure          `json:"failure,omitempty"`
	Detail     *Detail           `json:"detail,omitempty"`
}

// Failure is the single terminal "failed to load" signal.
type Failure struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Detail is the assembled view model of a loaded entity.
type Detail struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	DisplayName string           `json:"display_name"`
	Number      string           `json:"number"`
	Image       string           `json:"image"`
	Types       []Tag            `json:"types"`
	Weaknesses  []Tag            `json:"weaknesses"`
	Stats       []StatBar        `json:"stats"`
	Abilities   []Ability        `json:"abilities"`
	Height      string           `json:"height"`
	Weight      string           `json:"weight"`
	Genus       string           `json:"genus"`
	Gender      Gender           `json:"gender"`
	Description Description      `json:"description"`
	Moves       []string         `json:"moves"`
	MoveCount   int              `json:"move_count"`
	Evolution   []EvolutionStage `json:"evolution"`
}

// Tag is a type name with its localized label.
type Tag struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// StatBar is one stat row; Percent is the bar width in [0, 100].
type StatBar struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Value   int    `json:"value"`
	Percent int    `json:"percent"`
}

// Ability is one ability with its localized display string.
type Ability struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Hidden  bool   `json:"hidden"`
	Display string `json:"display"`
}

// Description is the localized flavor text.
type Description struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"source_language,omitempty"`
	Translated     bool   `json:"translated"`
}

// EvolutionStage is one resolved member of the evolution line.
type EvolutionStage struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Number      string `json:"number"`
	Image       string `json:"image"`
	Types       []Tag  `json:"types"`
}
