// Package store provides the in-memory Store implementation.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/warp/deposit-engine/deposit"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	positions map[string]deposit.Position
	order     []string // insertion order for stable List
}

func NewMemory() *Memory {
	return &Memory{positions: make(map[string]deposit.Position)}
}

func (m *Memory) Save(_ context.Context, p deposit.Position) (deposit.Position, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	if p.ID == "" {
		p.ID = uuid.NewString()
		p.CreatedAt = now
	}
	if _, exists := m.positions[p.ID]; !exists {
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		m.order = append(m.order, p.ID)
	}
	p.UpdatedAt = now
	m.positions[p.ID] = p
	return p, nil
}

func (m *Memory) Get(_ context.Context, id string) (deposit.Position, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.positions[id]
	if !ok {
		return deposit.Position{}, deposit.ErrPositionNotFound
	}
	return p, nil
}

func (m *Memory) List(_ context.Context) ([]deposit.Position, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]deposit.Position, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, m.positions[id])
	}
	return result, nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.positions[id]; !ok {
		return deposit.ErrPositionNotFound
	}
	delete(m.positions, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) Replace(_ context.Context, positions []deposit.Position) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	m.positions = make(map[string]deposit.Position, len(positions))
	m.order = m.order[:0]
	for _, p := range positions {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		p.UpdatedAt = now
		m.positions[p.ID] = p
		m.order = append(m.order, p.ID)
	}
	return nil
}

func (m *Memory) Close() error { return nil }
