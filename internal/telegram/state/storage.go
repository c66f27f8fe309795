package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ErrNoTelegramSession is returned when a user has no stored UI state
var ErrNoTelegramSession = errors.New("telegram session not found")

// View is the screen a user is currently looking at
type View string

const (
	ViewDomains       View = "domains"
	ViewTimeline      View = "timeline"
	ViewStakeholders  View = "stakeholders"
	ViewMetrics       View = "metrics"
	ViewQuestionTypes View = "question_types"
	ViewResults       View = "results"
)

// Views lists the screens in waterfall order
var Views = []View{
	ViewDomains,
	ViewTimeline,
	ViewStakeholders,
	ViewMetrics,
	ViewQuestionTypes,
	ViewResults,
}

// TelegramSession represents telegram user -> session mapping with UI state
type TelegramSession struct {
	UserID    int64     `json:"user_id"`
	SessionID string    `json:"session_id,omitempty"`
	StateData StateData `json:"state_data"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StateData contains telegram-specific UI state
type StateData struct {
	View View `json:"view,omitempty"`

	// EditMode routes the next text message to the row override
	EditMode bool `json:"edit_mode,omitempty"`

	// Message carrying the current step keyboard (for editing)
	LastMessageID int `json:"last_message_id,omitempty"`

	// Confirmation for destructive actions
	PendingConfirmation string `json:"pending_confirmation,omitempty"` // "cancel"
}

// Storage defines the interface for telegram session persistence
type Storage interface {
	Get(ctx context.Context, userID int64) (*TelegramSession, error)
	Set(ctx context.Context, session *TelegramSession) error
	Delete(ctx context.Context, userID int64) error
}

var _ Storage = &MemoryStorage{}

// MemoryStorage keeps telegram sessions in process memory and forgets users
// that stay idle longer than the TTL
type MemoryStorage struct {
	cache *gocache.Cache
}

func NewMemoryStorage(ttl time.Duration) *MemoryStorage {
	return &MemoryStorage{cache: gocache.New(ttl, ttl/4+time.Minute)}
}

func (s *MemoryStorage) Get(_ context.Context, userID int64) (*TelegramSession, error) {
	value, ok := s.cache.Get(storageKey(userID))
	if !ok {
		return nil, fmt.Errorf("%w: user %d", ErrNoTelegramSession, userID)
	}
	session := *value.(*TelegramSession)
	return &session, nil
}

func (s *MemoryStorage) Set(_ context.Context, session *TelegramSession) error {
	stored := *session
	s.cache.SetDefault(storageKey(session.UserID), &stored)
	return nil
}

func (s *MemoryStorage) Delete(_ context.Context, userID int64) error {
	s.cache.Delete(storageKey(userID))
	return nil
}

func storageKey(userID int64) string {
	return fmt.Sprintf("tg:%d", userID)
}
