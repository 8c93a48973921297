package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/albapepper/pokeview/internal/catalog"
	"github.com/albapepper/pokeview/internal/detail"
	"github.com/albapepper/pokeview/internal/i18n"
)

// MovePreview is how many moves the detail view lists before summarizing.
const MovePreview = 30

const (
	defaultWidth = 72
	statBarWidth = 24
	labelWidth   = 18
)

// Bar renders a stat bar of width cells, percent of them filled.
func Bar(s Styles, percent, width int) string {
	percent = max(0, min(100, percent))
	filled := percent * width / 100
	return s.Bar.Render(strings.Repeat("█", filled)) + s.Track.Render(strings.Repeat("░", width-filled))
}

func label(p detail.Payload, key string) string {
	if v, ok := p.Labels[key]; ok {
		return v
	}
	return i18n.Label(p.Language, key)
}

// RenderDetail renders one payload. width <= 0 picks a default.
func RenderDetail(p detail.Payload, s Styles, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	switch p.State {
	case detail.StateIdle:
		return s.Muted.Render(label(p, "no_selection"))
	case detail.StateLoading:
		return s.Muted.Render(label(p, "loading"))
	case detail.StateFailed:
		msg := label(p, "failed_detail")
		if p.Failure != nil && p.Failure.Message != "" {
			msg = p.Failure.Message
		}
		return s.Error.Render(msg)
	}
	if p.Detail == nil {
		return s.Error.Render(label(p, "failed_detail"))
	}
	d := p.Detail
	inner := width - 4

	var b strings.Builder
	b.WriteString(s.Title.Render(d.Number+"  "+d.DisplayName) + "\n")
	if d.Genus != "" {
		b.WriteString(s.Muted.Render(d.Genus) + "\n")
	}
	b.WriteString(badges(s, d.Types) + "\n")

	if d.Description.Text != "" {
		b.WriteString("\n" + s.Body.Width(inner).Render(d.Description.Text) + "\n")
	}

	b.WriteString(s.Section.Render(label(p, "stat_title")) + "\n")
	for _, st := range d.Stats {
		b.WriteString(fmt.Sprintf("%s %3d %s\n",
			s.Label.Width(labelWidth).Render(st.Label), st.Value, Bar(s, st.Percent, statBarWidth)))
	}

	b.WriteString("\n")
	b.WriteString(field(s, label(p, "height"), d.Height))
	b.WriteString(field(s, label(p, "weight"), d.Weight))
	if d.Genus != "" {
		b.WriteString(field(s, label(p, "category"), d.Genus))
	}
	b.WriteString(field(s, label(p, "gender"), d.Gender.Label))

	abilities := make([]string, 0, len(d.Abilities))
	for _, a := range d.Abilities {
		abilities = append(abilities, a.Display)
	}
	b.WriteString(field(s, label(p, "abilities"), strings.Join(abilities, ", ")))

	if len(d.Weaknesses) > 0 {
		b.WriteString(s.Section.Render(label(p, "weaknesses")) + "\n")
		b.WriteString(badges(s, d.Weaknesses) + "\n")
	}

	if len(d.Evolution) > 0 {
		stages := make([]string, 0, len(d.Evolution))
		for _, e := range d.Evolution {
			name := e.DisplayName
			if e.Name == d.Name {
				name = s.Title.Render(name)
			}
			stages = append(stages, name)
		}
		b.WriteString(s.Section.Render(label(p, "evolution")) + "\n")
		b.WriteString(strings.Join(stages, s.Label.Render(" → ")) + "\n")
	}

	if d.MoveCount > 0 {
		b.WriteString(s.Section.Render(fmt.Sprintf("%s (%d)", label(p, "show_moves"), d.MoveCount)) + "\n")
		b.WriteString(s.Body.Width(inner).Render(movePreview(d.Moves)) + "\n")
	}

	return s.Card.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func field(s Styles, name, value string) string {
	if value == "" {
		value = "—"
	}
	return s.Label.Width(labelWidth).Render(name) + " " + s.Body.Render(value) + "\n"
}

func badges(s Styles, tags []detail.Tag) string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, s.Badge(t.Name, t.Label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, spaced(out)...)
}

func spaced(items []string) []string {
	out := make([]string, 0, 2*len(items))
	for i, it := range items {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, it)
	}
	return out
}

func movePreview(moves []string) string {
	shown := moves
	if len(shown) > MovePreview {
		shown = shown[:MovePreview]
	}
	names := make([]string, 0, len(shown))
	for _, m := range shown {
		names = append(names, i18n.Capitalize(m))
	}
	out := strings.Join(names, ", ")
	if rest := len(moves) - len(shown); rest > 0 {
		out += fmt.Sprintf(" … (+%d)", rest)
	}
	return out
}

// RenderPage renders one list page as a numbered table.
func RenderPage(page *catalog.Page, lang string, s Styles) string {
	var b strings.Builder
	b.WriteString(s.Title.Render(i18n.Label(lang, "list_title")) + "\n")
	for _, c := range page.Items {
		number := "  ?  "
		if c.ID != nil {
			number = detail.FormatNumber(*c.ID)
		}
		b.WriteString(s.Label.Render(number) + "  " + s.Body.Render(c.DisplayName) + "\n")
	}
	nav := page.Info()
	if page.HasPrev {
		nav = i18n.Label(lang, "prev") + "  " + nav
	}
	if page.HasNext {
		nav += "  " + i18n.Label(lang, "next")
	}
	b.WriteString(s.Muted.Render(nav))
	return b.String()
}

// RenderSummary renders the dashboard counters; missing counts show as "--".
func RenderSummary(sum catalog.Summary, lang string, s Styles) string {
	count := func(n *int) string {
		if n == nil {
			return "--"
		}
		return fmt.Sprint(*n)
	}
	return field(s, i18n.Label(lang, "label_total"), count(sum.TotalPokemon)) +
		strings.TrimRight(field(s, i18n.Label(lang, "label_types"), count(sum.TypeCount)), "\n")
}
