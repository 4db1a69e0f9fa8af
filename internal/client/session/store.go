// Package session persists the single session token slot.
//
// A Store holds at most one token under TokenKey. Every implementation has
// last-write-wins semantics: Save overwrites, Clear erases, Load reads
// without caching.
package session

import (
	"context"
	"sync"
)

// TokenKey is the fixed key the token is stored under.
const TokenKey = "token"

// Store is the persistent token slot.
type Store interface {
	// Load returns the stored token. ok is false when the slot is empty.
	Load(ctx context.Context) (token string, ok bool, err error)
	// Save overwrites the slot.
	Save(ctx context.Context, token string) error
	// Clear empties the slot. Clearing an empty slot is not an error.
	Clear(ctx context.Context) error
}

// MemoryStore keeps the token in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	set   bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(context.Context) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, m.set, nil
}

func (m *MemoryStore) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.set = token, true
	return nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.set = "", false
	return nil
}
