package config

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/knadh/koanf/v2"
)

// Manager owns the compiler's live Config, loaded once from a sequence
// of Providers and retrievable atomically from any goroutine.
type Manager struct {
	Service  *Service
	debounce time.Duration
	current  atomic.Pointer[Config]
}

// NewManager returns a Manager delegating to svc (a nil svc is replaced
// by NewService()).
func NewManager(svc *Service) *Manager {
	if svc == nil {
		svc = NewService()
	}
	return &Manager{Service: svc, debounce: defaultDebounce}
}

// SetDebounce overrides the manager's stored debounce duration. Load
// does not consult it, since the Manager does not watch files.
func (m *Manager) SetDebounce(d time.Duration) { m.debounce = d }

// Load applies providers in order onto a fresh koanf tree, unmarshals
// the result into a Config, stores it atomically, and returns it.
func (m *Manager) Load(_ context.Context, providers ...Provider) (*Config, error) {
	k := koanf.New(".")
	for _, p := range providers {
		if err := p.Apply(k); err != nil {
			return nil, err
		}
	}
	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	m.current.Store(cfg)
	return cfg, nil
}

// Get returns the most recently loaded Config, or nil if Load has never
// been called.
func (m *Manager) Get() *Config { return m.current.Load() }

// Close releases any resources the manager holds. The compiler's
// Manager does not watch files, so this is a no-op kept so callers can
// treat the manager as a closable lifecycle.
func (m *Manager) Close(_ context.Context) error { return nil }
