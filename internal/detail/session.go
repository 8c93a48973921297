package detail

import (
	"context"
	"log/slog"
	"sync"

	"github.com/albapepper/pokeview/internal/i18n"
	"github.com/albapepper/pokeview/internal/prefs"
)

// Presenter receives payloads. Present is called with the session lock held
// and must not call back into the Session.
type Presenter interface {
	Present(Payload)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(Payload)

func (f PresenterFunc) Present(p Payload) { f(p) }

// Session owns the detail view for one client: it is the only place renders
// are started and the only subscriber that reacts to preference changes.
//
// Every render gets a generation number. Starting a render cancels the one in
// flight, and a result is presented only if its generation is still current,
// so a slow earlier render can never overwrite a later one.
type Session struct {
	assembler *Assembler
	prefs     *prefs.Manager
	presenter Presenter
	logger    *slog.Logger

	mu          sync.Mutex
	base        context.Context
	stop        context.CancelFunc
	cancel      context.CancelFunc
	generation  uint64
	key         string
	closed      bool
	wg          sync.WaitGroup
	unsubscribe func()
}

// NewSession creates a Session bound to ctx. It subscribes to manager and
// re-renders the current entity whenever the language changes.
func NewSession(ctx context.Context, assembler *Assembler, manager *prefs.Manager, presenter Presenter, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	base, stop := context.WithCancel(ctx)
	s := &Session{
		assembler: assembler,
		prefs:     manager,
		presenter: presenter,
		logger:    logger,
		base:      base,
		stop:      stop,
	}
	s.unsubscribe = manager.Subscribe(s.preferencesChanged)
	return s
}

func (s *Session) preferencesChanged(old, updated prefs.Preferences) {
	if old.Language == updated.Language {
		return
	}
	s.logger.Debug("language changed, re-rendering", "from", old.Language, "to", updated.Language)
	s.Reload()
}

// Show starts a fresh render for key and returns its generation. An empty key
// presents the idle payload.
func (s *Session) Show(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.generation
	}
	s.key = key
	return s.startLocked()
}

// Reload re-renders the current key with the current preferences.
func (s *Session) Reload() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.generation
	}
	return s.startLocked()
}

// Generation returns the generation of the latest render.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Key returns the entity currently shown.
func (s *Session) Key() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key
}

func (s *Session) startLocked() uint64 {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generation++
	gen := s.generation
	key := s.key
	lang := s.prefs.Current().Language

	if key == "" {
		s.presenter.Present(Payload{
			State:      StateIdle,
			Language:   lang,
			Generation: gen,
			Labels:     map[string]string{"no_selection": i18n.Label(lang, "no_selection")},
		})
		return gen
	}

	loading := Loading(key, lang)
	loading.Generation = gen
	s.presenter.Present(loading)

	ctx, cancel := context.WithCancel(s.base)
	s.cancel = cancel
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		payload := s.assembler.Assemble(ctx, key, lang)
		payload.Generation = gen

		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.generation || s.closed {
			s.logger.Debug("discarding stale render", "key", key, "generation", gen, "current", s.generation)
			return
		}
		s.presenter.Present(payload)
	}()
	return gen
}

// Wait blocks until every started render has finished.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close cancels any render in flight, drops the preference subscription and
// waits for outstanding renders.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.stop()
	s.mu.Unlock()

	s.unsubscribe()
	s.wg.Wait()
}
