package bridge

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Memory is the default single-process intent store.
type Memory struct {
	mu    sync.Mutex
	slots map[uuid.UUID]Intent
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{slots: make(map[uuid.UUID]Intent)}
}

// Save overwrites the session's slot.
func (m *Memory) Save(_ context.Context, sessionID uuid.UUID, intent Intent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[sessionID] = intent
	return nil
}

// Consume returns and clears the session's slot, nil when empty.
func (m *Memory) Consume(_ context.Context, sessionID uuid.UUID) (*Intent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	intent, ok := m.slots[sessionID]
	if !ok {
		return nil, nil
	}
	delete(m.slots, sessionID)
	return &intent, nil
}
