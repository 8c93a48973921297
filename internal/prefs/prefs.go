// Package prefs owns the persisted user preferences (theme and UI language).
//
// A Store persists preferences per client id. A Manager holds the current
// snapshot for one client, applies updates through one explicit action and
// notifies subscribers after every change.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/albapepper/pokeview/internal/i18n"
)

// Themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ErrNotFound is returned by a Store that holds nothing for a client.
var ErrNotFound = errors.New("prefs: not found")

// Preferences is the persisted key-value pair set.
type Preferences struct {
	Theme    string `json:"theme" yaml:"theme"`
	Language string `json:"lang"  yaml:"lang"`
}

// Normalized coerces unknown values: the theme falls back to light, the
// language to fallbackLang (itself resolved to a supported language).
func (p Preferences) Normalized(fallbackLang string) Preferences {
	if p.Theme != ThemeDark {
		p.Theme = ThemeLight
	}
	p.Language = i18n.Resolve(p.Language, fallbackLang)
	return p
}

// ValidTheme reports whether theme is one of the known themes.
func ValidTheme(theme string) bool {
	return theme == ThemeLight || theme == ThemeDark
}

// ToggleTheme flips between light and dark.
func ToggleTheme(theme string) string {
	if theme == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Store persists preferences keyed by client id.
type Store interface {
	Load(ctx context.Context, clientID string) (Preferences, error)
	Save(ctx context.Context, clientID string, p Preferences) error
	Ping(ctx context.Context) error
	Close() error
}

// Manager holds the current preferences for one client.
type Manager struct {
	store    Store
	clientID string
	logger   *slog.Logger

	mu      sync.RWMutex
	current Preferences
	subs    map[int]func(old, updated Preferences)
	nextSub int
}

// NewManager loads the client's stored preferences. Missing or unreadable
// state falls back to defaults, which are normalized against defaultLang.
func NewManager(ctx context.Context, store Store, clientID, defaultLang string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	p, err := store.Load(ctx, clientID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		logger.Warn("preferences unreadable, using defaults", "client_id", clientID, "error", err)
	}
	return &Manager{
		store:    store,
		clientID: clientID,
		logger:   logger,
		current:  p.Normalized(defaultLang),
		subs:     make(map[int]func(old, updated Preferences)),
	}
}

// Current returns a snapshot of the preferences.
func (m *Manager) Current() Preferences {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Subscribe registers fn to run after every change. The returned function
// removes the subscription.
func (m *Manager) Subscribe(fn func(old, updated Preferences)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// Update applies fn to a copy of the current preferences, persists the result
// and notifies subscribers when something changed. The in-memory snapshot is
// updated even when persisting fails; the error is still returned.
func (m *Manager) Update(ctx context.Context, fn func(*Preferences)) error {
	m.mu.Lock()
	old := m.current
	next := old
	fn(&next)
	next = next.Normalized(old.Language)
	if next == old {
		m.mu.Unlock()
		return nil
	}
	m.current = next
	subs := make([]func(old, updated Preferences), 0, len(m.subs))
	for _, s := range m.subs {
		subs = append(subs, s)
	}
	m.mu.Unlock()

	var saveErr error
	if err := m.store.Save(ctx, m.clientID, next); err != nil {
		m.logger.Warn("failed to persist preferences", "client_id", m.clientID, "error", err)
		saveErr = fmt.Errorf("save preferences: %w", err)
	}

	for _, s := range subs {
		s(old, next)
	}
	return saveErr
}

// SetLanguage changes the UI language. Unsupported tags are rejected.
func (m *Manager) SetLanguage(ctx context.Context, lang string) error {
	normalized := i18n.Normalize(lang)
	if normalized == "" {
		return fmt.Errorf("unsupported language %q", lang)
	}
	return m.Update(ctx, func(p *Preferences) { p.Language = normalized })
}

// SetTheme changes the theme.
func (m *Manager) SetTheme(ctx context.Context, theme string) error {
	if !ValidTheme(theme) {
		return fmt.Errorf("unknown theme %q", theme)
	}
	return m.Update(ctx, func(p *Preferences) { p.Theme = theme })
}
