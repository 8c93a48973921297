package prefs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// MemoryStore keeps preferences in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]Preferences
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]Preferences)}
}

func (s *MemoryStore) Load(_ context.Context, clientID string) (Preferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.items[clientID]
	if !ok {
		return Preferences{}, ErrNotFound
	}
	return p, nil
}

func (s *MemoryStore) Save(_ context.Context, clientID string, p Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[clientID] = p
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }
func (s *MemoryStore) Close() error               { return nil }

// errCorrupt marks a preference file that exists but does not parse.
var errCorrupt = errors.New("corrupt preference file")

// FileStore keeps preferences in a YAML document mapping client id to
// preferences. It is the CLI's default store.
type FileStore struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// NewFileStore creates a store backed by path. The file is created on the
// first Save.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{path: path, logger: logger}
}

// BackupPath is where Save moves a corrupt preference file before
// starting a fresh document.
func (s *FileStore) BackupPath() string {
	return s.path + ".bak"
}

type fileDocument struct {
	Clients map[string]Preferences `yaml:"clients"`
}

func (s *FileStore) read() (fileDocument, error) {
	doc := fileDocument{Clients: map[string]Preferences{}}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("read %s: %w", s.path, err)
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("%w: parse %s: %v", errCorrupt, s.path, err)
	}
	if doc.Clients == nil {
		doc.Clients = map[string]Preferences{}
	}
	return doc, nil
}

func (s *FileStore) Load(_ context.Context, clientID string) (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return Preferences{}, err
	}
	p, ok := doc.Clients[clientID]
	if !ok {
		return Preferences{}, ErrNotFound
	}
	return p, nil
}

func (s *FileStore) Save(_ context.Context, clientID string, p Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	switch {
	case errors.Is(err, errCorrupt):
		if err := os.Rename(s.path, s.BackupPath()); err != nil {
			return fmt.Errorf("back up %s: %w", s.path, err)
		}
		s.logger.Warn("preference file unreadable, moved aside",
			"path", s.path, "backup", s.BackupPath(), "error", err)
		doc = fileDocument{Clients: map[string]Preferences{}}
	case err != nil:
		return err
	}
	doc.Clients[clientID] = p

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) Ping(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.read()
	return err
}

func (s *FileStore) Close() error { return nil }
