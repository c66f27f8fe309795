package state

import (
	"context"
	"fmt"
	"time"
)

// Manager manages telegram sessions
type Manager struct {
	storage Storage
}

// NewManager creates a new state manager
func NewManager(storage Storage) *Manager {
	return &Manager{
		storage: storage,
	}
}

// GetSession retrieves telegram session from storage
func (m *Manager) GetSession(ctx context.Context, userID int64) (*TelegramSession, error) {
	session, err := m.storage.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get telegram session from storage: %w", err)
	}

	return session, nil
}

// SetSession saves telegram session to storage
func (m *Manager) SetSession(ctx context.Context, session *TelegramSession) error {
	session.UpdatedAt = time.Now()

	if err := m.storage.Set(ctx, session); err != nil {
		return fmt.Errorf("save telegram session to storage: %w", err)
	}

	return nil
}

// DeleteSession removes telegram session from storage
func (m *Manager) DeleteSession(ctx context.Context, userID int64) error {
	if err := m.storage.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete telegram session from storage: %w", err)
	}

	return nil
}

// UpdateStateData applies fn to the user's UI state and stores the result
func (m *Manager) UpdateStateData(ctx context.Context, userID int64, fn func(*StateData)) (*TelegramSession, error) {
	session, err := m.GetSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	fn(&session.StateData)

	if err := m.SetSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// StartSession binds a fresh generation session to the user, replacing any
// previous one, and returns the replaced session id
func (m *Manager) StartSession(ctx context.Context, userID int64, sessionID string) (string, error) {
	var previous string
	if old, err := m.GetSession(ctx, userID); err == nil {
		previous = old.SessionID
	}

	now := time.Now()
	session := &TelegramSession{
		UserID:    userID,
		SessionID: sessionID,
		StateData: StateData{View: ViewDomains},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := m.SetSession(ctx, session); err != nil {
		return "", err
	}
	return previous, nil
}
