package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ayleenrq/urbane/internal/core/domain"
	"github.com/ayleenrq/urbane/internal/core/port"

	"github.com/google/uuid"
)

type entry struct {
	store    *Store
	lastSeen atomic.Int64 // unix nano
}

// Manager держит сессии просмотра по uuid и удаляет простаивающие.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*entry

	catalog  port.CatalogReaderPort
	defaults domain.FilterState
	idleTTL  time.Duration
	now      func() time.Time

	observer Observer
}

func NewManager(catalog port.CatalogReaderPort, defaults domain.FilterState, idleTTL time.Duration) (*Manager, error) {
	if catalog == nil {
		return nil, fmt.Errorf("session manager: catalog cannot be nil")
	}
	if idleTTL <= 0 {
		return nil, fmt.Errorf("session manager: idle ttl must be positive, got %s", idleTTL)
	}
	if err := defaults.Validate(); err != nil {
		return nil, fmt.Errorf("session manager: invalid defaults: %w", err)
	}
	return &Manager{
		sessions: make(map[uuid.UUID]*entry),
		catalog:  catalog,
		defaults: defaults.Clone(),
		idleTTL:  idleTTL,
		now:      time.Now,
	}, nil
}

// Defaults возвращает состояние по умолчанию для новых сессий.
func (m *Manager) Defaults() domain.FilterState {
	return m.defaults.Clone()
}

// OnChange подписывает fn на изменения всех сессий, созданных после вызова.
func (m *Manager) OnChange(fn Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observer = fn
}

// Create открывает сессию. Если initial == nil, сессия начинается со значений по умолчанию.
func (m *Manager) Create(initial *domain.FilterState) (uuid.UUID, *Store, error) {
	start := m.defaults
	if initial != nil {
		start = *initial
	}
	store, err := NewStore(m.catalog, m.defaults, start)
	if err != nil {
		return uuid.Nil, nil, err
	}

	id := uuid.New()
	e := &entry{store: store}
	e.lastSeen.Store(m.now().UnixNano())

	m.mu.Lock()
	if m.observer != nil {
		store.Subscribe(m.observer)
	}
	m.sessions[id] = e
	m.mu.Unlock()

	return id, store, nil
}

// Get возвращает хранилище сессии и продлевает её жизнь.
func (m *Manager) Get(id uuid.UUID) (*Store, time.Time, error) {
	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, time.Time{}, fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
	}

	now := m.now()
	e.lastSeen.Store(now.UnixNano())
	return e.store, now, nil
}

func (m *Manager) Delete(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
	}
	delete(m.sessions, id)
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep удаляет сессии, к которым не обращались дольше idleTTL. Возвращает число удаленных.
func (m *Manager) Sweep() int {
	deadline := m.now().Add(-m.idleTTL).UnixNano()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, e := range m.sessions {
		if e.lastSeen.Load() < deadline {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Run периодически вызывает Sweep, пока не отменен ctx.
func (m *Manager) Run(ctx context.Context, interval time.Duration, logger port.LoggerPort) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Session janitor stopped", nil)
			return
		case <-ticker.C:
			if removed := m.Sweep(); removed > 0 {
				logger.Debug("Expired browsing sessions removed", port.Fields{
					"removed": removed,
					"active":  m.Len(),
				})
			}
		}
	}
}
