// Package tui renders detail payloads for the terminal and hosts the
// interactive browser. Colors follow the persisted light/dark theme.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/albapepper/pokeview/internal/prefs"
)

var (
	// Light mode
	LightForeground = lipgloss.Color("#1f2933")
	LightPrimary    = lipgloss.Color("#c0392b") // dex red
	LightAccent     = lipgloss.Color("#2d6cdf")
	LightMuted      = lipgloss.Color("#7b8794")
	LightBorder     = lipgloss.Color("#d9dee4")
	LightTrack      = lipgloss.Color("#e4e7eb")

	// Dark mode
	DarkForeground = lipgloss.Color("#f0f2f5")
	DarkPrimary    = lipgloss.Color("#ff6b5b")
	DarkAccent     = lipgloss.Color("#7fb2ff")
	DarkMuted      = lipgloss.Color("#9aa5b1")
	DarkBorder     = lipgloss.Color("#3e4c59")
	DarkTrack      = lipgloss.Color("#323f4b")

	Destructive = lipgloss.Color("#e53935")
)

// typeColors are the conventional badge colors per type.
var typeColors = map[string]lipgloss.Color{
	"normal":   "#a8a77a",
	"fire":     "#ee8130",
	"water":    "#6390f0",
	"electric": "#f7d02c",
	"grass":    "#7ac74c",
	"ice":      "#96d9d6",
	"fighting": "#c22e28",
	"poison":   "#a33ea1",
	"ground":   "#e2bf65",
	"flying":   "#a98ff3",
	"psychic":  "#f95587",
	"bug":      "#a6b91a",
	"rock":     "#b6a136",
	"ghost":    "#735797",
	"dragon":   "#6f35fc",
	"dark":     "#705746",
	"steel":    "#b7b7ce",
	"fairy":    "#d685ad",
}

// Theme holds the color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Track      lipgloss.Color
	IsDark     bool
}

func LightTheme() Theme {
	return Theme{
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
		Track:      LightTrack,
	}
}

func DarkTheme() Theme {
	return Theme{
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Track:      DarkTrack,
		IsDark:     true,
	}
}

// ThemeFor maps a preference theme name to a Theme.
func ThemeFor(name string) Theme {
	if name == prefs.ThemeDark {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles holds all the styled components.
type Styles struct {
	Theme Theme

	Header  lipgloss.Style
	Footer  lipgloss.Style
	Card    lipgloss.Style
	Title   lipgloss.Style
	Section lipgloss.Style
	Label   lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Bar     lipgloss.Style
	Track   lipgloss.Style
	Divider lipgloss.Style
	Spinner lipgloss.Style
	Prompt  lipgloss.Style
}

// NewStyles creates a Styles instance for theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Section: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			MarginTop(1),

		Label: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Bar: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Track: lipgloss.NewStyle().
			Foreground(theme.Track),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Primary),

		Prompt: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),
	}
}

// StylesFor returns the styles for a preference theme name.
func StylesFor(theme string) Styles {
	return NewStyles(ThemeFor(theme))
}

// Badge renders a type tag in its type color.
func (s Styles) Badge(typeName, label string) string {
	bg, ok := typeColors[typeName]
	if !ok {
		bg = s.Theme.Muted
	}
	return lipgloss.NewStyle().
		Background(bg).
		Foreground(lipgloss.Color("#ffffff")).
		Padding(0, 1).
		Bold(true).
		Render(label)
}

// RenderDivider returns a horizontal divider.
func (s Styles) RenderDivider(width int) string {
	return s.Divider.Render(strings.Repeat("─", width))
}
