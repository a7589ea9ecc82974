package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Raymond9734/customer-dashboard-backend/internal/models"
)

// Store defines the interface for per-session query state
type Store interface {
	// Create saves state under a new session ID and returns the ID
	Create(ctx context.Context, state models.QueryState) (string, error)

	// Get loads the state of a session, refreshing its expiry
	Get(ctx context.Context, id string) (models.QueryState, error)

	// Save replaces the state of an existing session
	Save(ctx context.Context, id string, state models.QueryState) error

	// Delete drops a session. Unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Health checks if the backing store is reachable
	Health(ctx context.Context) error

	// Close releases the backing store
	Close() error
}

type memoryEntry struct {
	state     models.QueryState
	expiresAt time.Time
}

// memoryStore keeps sessions in process memory with a sliding TTL
type memoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore creates an in-process session store
func NewMemoryStore(ttl time.Duration) Store {
	return newMemoryStore(ttl, time.Now)
}

func newMemoryStore(ttl time.Duration, now func() time.Time) *memoryStore {
	return &memoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      now,
	}
}

func (s *memoryStore) Create(ctx context.Context, state models.QueryState) (string, error) {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictExpired()
	s.sessions[id] = memoryEntry{state: detach(state), expiresAt: s.now().Add(s.ttl)}
	return id, nil
}

func (s *memoryStore) Get(ctx context.Context, id string) (models.QueryState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok || !s.now().Before(entry.expiresAt) {
		delete(s.sessions, id)
		return models.QueryState{}, notFound(id)
	}

	entry.expiresAt = s.now().Add(s.ttl)
	s.sessions[id] = entry
	return detach(entry.state), nil
}

func (s *memoryStore) Save(ctx context.Context, id string, state models.QueryState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok || !s.now().Before(entry.expiresAt) {
		delete(s.sessions, id)
		return notFound(id)
	}

	s.sessions[id] = memoryEntry{state: detach(state), expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

func (s *memoryStore) Health(ctx context.Context) error {
	return nil
}

func (s *memoryStore) Close() error {
	return nil
}

func (s *memoryStore) evictExpired() {
	now := s.now()
	for id, entry := range s.sessions {
		if !now.Before(entry.expiresAt) {
			delete(s.sessions, id)
		}
	}
}

func notFound(id string) error {
	return models.ErrNotFoundWithMsg(fmt.Sprintf("session %s not found", id))
}

// detach copies the filter so callers never share it with the store
func detach(state models.QueryState) models.QueryState {
	state.FilterOptions = state.FilterOptions.Clone()
	return state
}
