package state

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage(time.Hour)

	_, err := s.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrNoTelegramSession)

	session := &TelegramSession{UserID: 1, SessionID: "abc", StateData: StateData{View: ViewMetrics}}
	require.NoError(t, s.Set(ctx, session))

	// Stored values are copies.
	session.SessionID = "changed"
	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "abc", got.SessionID)
	got.StateData.View = ViewResults

	again, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, ViewMetrics, again.StateData.View)

	require.NoError(t, s.Delete(ctx, 1))
	_, err = s.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrNoTelegramSession)
}

func TestMemoryStorage_Expires(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage(20 * time.Millisecond)

	require.NoError(t, s.Set(ctx, &TelegramSession{UserID: 7}))
	time.Sleep(40 * time.Millisecond)

	_, err := s.Get(ctx, 7)
	assert.ErrorIs(t, err, ErrNoTelegramSession)
}

func TestManager_StartSessionReplacesPrevious(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStorage(time.Hour))

	previous, err := m.StartSession(ctx, 5, "first")
	require.NoError(t, err)
	assert.Empty(t, previous)

	_, err = m.UpdateStateData(ctx, 5, func(d *StateData) {
		d.View = ViewResults
		d.EditMode = true
		d.LastMessageID = 42
	})
	require.NoError(t, err)

	previous, err = m.StartSession(ctx, 5, "second")
	require.NoError(t, err)
	assert.Equal(t, "first", previous)

	got, err := m.GetSession(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "second", got.SessionID)
	assert.Equal(t, StateData{View: ViewDomains}, got.StateData)
}

func TestManager_UpdateStateData(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStorage(time.Hour))

	_, err := m.UpdateStateData(ctx, 9, func(d *StateData) {})
	assert.ErrorIs(t, err, ErrNoTelegramSession)

	_, err = m.StartSession(ctx, 9, "s")
	require.NoError(t, err)
	before, err := m.GetSession(ctx, 9)
	require.NoError(t, err)

	updated, err := m.UpdateStateData(ctx, 9, func(d *StateData) { d.PendingConfirmation = "cancel" })
	require.NoError(t, err)
	assert.Equal(t, "cancel", updated.StateData.PendingConfirmation)
	assert.False(t, updated.UpdatedAt.Before(before.UpdatedAt))

	require.NoError(t, m.DeleteSession(ctx, 9))
	_, err = m.GetSession(ctx, 9)
	assert.ErrorIs(t, err, ErrNoTelegramSession)
}
