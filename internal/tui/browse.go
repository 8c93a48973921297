package tui

import (
	"context"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/albapepper/pokeview/internal/detail"
	"github.com/albapepper/pokeview/internal/i18n"
	"github.com/albapepper/pokeview/internal/prefs"
)

// PayloadMsg delivers a payload from the render session.
type PayloadMsg struct {
	Payload detail.Payload
}

// prefsErrMsg reports a preference update that could not be persisted.
type prefsErrMsg struct{ err error }

// Presenter forwards session payloads into a running program. Payloads
// presented before Attach are dropped.
type Presenter struct {
	mu      sync.Mutex
	program *tea.Program
}

// Attach binds the presenter to program.
func (p *Presenter) Attach(program *tea.Program) {
	p.mu.Lock()
	p.program = program
	p.mu.Unlock()
}

// Present implements detail.Presenter. Send blocks until the program reads
// the message, so it runs on its own goroutine.
func (p *Presenter) Present(payload detail.Payload) {
	p.mu.Lock()
	program := p.program
	p.mu.Unlock()
	if program != nil {
		go program.Send(PayloadMsg{Payload: payload})
	}
}

// Model is the interactive browser: a search box over one detail view.
type Model struct {
	ctx     context.Context
	session *detail.Session
	prefs   *prefs.Manager

	input   textinput.Model
	spinner spinner.Model
	styles  Styles
	payload detail.Payload
	notice  string
	width   int
	height  int
}

// NewModel creates the browser. The session must present into a Presenter
// attached to the program running this model.
func NewModel(ctx context.Context, session *detail.Session, manager *prefs.Manager) Model {
	current := manager.Current()

	in := textinput.New()
	in.Placeholder = i18n.Label(current.Language, "search_placeholder")
	in.CharLimit = 40
	in.Width = 40
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	styles := StylesFor(current.Theme)
	in.PromptStyle = styles.Prompt
	sp.Style = styles.Spinner

	return Model{
		ctx:     ctx,
		session: session,
		prefs:   manager,
		input:   in,
		spinner: sp,
		styles:  styles,
		payload: detail.Payload{State: detail.StateIdle, Language: current.Language},
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// supersedes reports whether incoming should replace current. Payloads of one
// generation arrive on separate goroutines, so a loading payload may trail
// the result it precedes.
func supersedes(incoming, current detail.Payload) bool {
	if incoming.Generation != current.Generation {
		return incoming.Generation > current.Generation
	}
	return incoming.State != detail.StateLoading || current.State == detail.StateLoading
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case PayloadMsg:
		if supersedes(msg.Payload, m.payload) {
			m.payload = msg.Payload
			m.input.Placeholder = i18n.Label(m.payload.Language, "search_placeholder")
		}
		return m, nil

	case prefsErrMsg:
		m.notice = msg.err.Error()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			key := strings.TrimSpace(m.input.Value())
			if key != "" {
				m.notice = ""
				m.session.Show(key)
			}
			return m, nil
		case "ctrl+l":
			return m, m.toggleLanguage()
		case "ctrl+t":
			next := prefs.ToggleTheme(m.prefs.Current().Theme)
			err := m.prefs.SetTheme(m.ctx, next)
			m.styles = StylesFor(m.prefs.Current().Theme)
			m.input.PromptStyle = m.styles.Prompt
			m.spinner.Style = m.styles.Spinner
			if err != nil {
				m.notice = err.Error()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// toggleLanguage flips the UI language. The session re-renders on the
// resulting preference change.
func (m Model) toggleLanguage() tea.Cmd {
	ctx := m.ctx
	manager := m.prefs
	next := i18n.Toggle(manager.Current().Language)
	return func() tea.Msg {
		if err := manager.SetLanguage(ctx, next); err != nil {
			return prefsErrMsg{err: err}
		}
		return nil
	}
}

// View renders the model.
func (m Model) View() string {
	width := m.width
	if width <= 0 || width > defaultWidth+4 {
		width = defaultWidth
	}
	current := m.prefs.Current()
	lang := current.Language

	header := m.styles.Header.Render(i18n.Label(lang, "nav_home")) + " " +
		m.styles.Label.Render(strings.ToUpper(lang)+" · "+i18n.Label(lang, "theme_"+current.Theme))

	body := RenderDetail(m.payload, m.styles, width)
	if m.payload.State == detail.StateLoading {
		body = m.spinner.View() + " " + body
	}

	parts := []string{header, m.input.View(), m.styles.RenderDivider(width), body}
	if m.notice != "" {
		parts = append(parts, m.styles.Error.Render(m.notice))
	}
	parts = append(parts, m.styles.Footer.Render("enter "+i18n.Label(lang, "search_button")+
		" · ctrl+l "+i18n.Label(lang, "nav_language")+" · ctrl+t theme · esc quit"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
