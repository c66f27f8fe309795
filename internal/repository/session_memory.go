package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/futig/question-generator/internal/entity"
	gocache "github.com/patrickmn/go-cache"
)

// SessionRepository defines the interface for session state storage
type SessionRepository interface {
	CreateSession(ctx context.Context, session entity.Session) (*entity.Session, error)
	GetSessionByID(ctx context.Context, id string) (*entity.Session, error)
	// UpdateSession applies fn to a copy of the session under the session lock.
	// The stored session is replaced only when fn returns nil.
	UpdateSession(ctx context.Context, id string, fn func(*entity.Session) error) (*entity.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

var _ SessionRepository = &SessionMemory{}

type sessionEntry struct {
	mu      sync.Mutex
	session *entity.Session
}

// SessionMemory keeps sessions in process memory with a sliding TTL
type SessionMemory struct {
	cache *gocache.Cache
	ttl   time.Duration
}

func NewSessionMemory(ttl, cleanupInterval time.Duration) *SessionMemory {
	return &SessionMemory{
		cache: gocache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

// CreateSession stores a new session
func (r *SessionMemory) CreateSession(_ context.Context, session entity.Session) (*entity.Session, error) {
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now

	entry := &sessionEntry{session: session.Clone()}
	if err := r.cache.Add(session.ID, entry, r.ttl); err != nil {
		return nil, fmt.Errorf("store session %s: %w", session.ID, err)
	}

	return session.Clone(), nil
}

// GetSessionByID returns a copy of the stored session
func (r *SessionMemory) GetSessionByID(_ context.Context, id string) (*entity.Session, error) {
	entry, err := r.entry(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	r.touch(id, entry)
	return entry.session.Clone(), nil
}

// UpdateSession implements SessionRepository
func (r *SessionMemory) UpdateSession(_ context.Context, id string, fn func(*entity.Session) error) (*entity.Session, error) {
	entry, err := r.entry(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	working := entry.session.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	working.UpdatedAt = time.Now().UTC()

	entry.session = working
	r.touch(id, entry)

	return working.Clone(), nil
}

// DeleteSession removes a session
func (r *SessionMemory) DeleteSession(_ context.Context, id string) error {
	if _, err := r.entry(id); err != nil {
		return err
	}
	r.cache.Delete(id)
	return nil
}

func (r *SessionMemory) entry(id string) (*sessionEntry, error) {
	value, ok := r.cache.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrSessionNotFound, id)
	}
	return value.(*sessionEntry), nil
}

// touch re-arms the expiration of an active session
func (r *SessionMemory) touch(id string, entry *sessionEntry) {
	r.cache.Set(id, entry, r.ttl)
}
