package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/AchintyaNigam/my-rail/internal/flow"
)

var (
	ErrSessionNotFound = errors.New("booking session not found")
	ErrSessionBusy     = errors.New("booking session is busy")
)

// SessionRepository stores booking sessions between requests.
type SessionRepository interface {
	Save(ctx context.Context, s *flow.Session) error
	FindByID(ctx context.Context, id string) (*flow.Session, error)
	// Lock marks a session as having a payment in flight. A second Lock on the
	// same id fails with ErrSessionBusy until unlock is called.
	Lock(ctx context.Context, id string) (unlock func(), err error)
}

type memorySessionRepository struct {
	mu       sync.Mutex
	sessions map[string][]byte
	locks    map[string]bool
}

// NewMemorySessionRepository keeps sessions in process memory. Sessions are
// stored as JSON so callers never share state with the store.
func NewMemorySessionRepository() SessionRepository {
	return &memorySessionRepository{
		sessions: make(map[string][]byte),
		locks:    make(map[string]bool),
	}
}

func (r *memorySessionRepository) Save(ctx context.Context, s *flow.Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = b
	return nil
}

func (r *memorySessionRepository) FindByID(ctx context.Context, id string) (*flow.Session, error) {
	r.mu.Lock()
	b, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	var s flow.Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

func (r *memorySessionRepository) Lock(ctx context.Context, id string) (func(), error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.locks[id] {
		return nil, ErrSessionBusy
	}
	r.locks[id] = true

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.locks, id)
			r.mu.Unlock()
		})
	}, nil
}
