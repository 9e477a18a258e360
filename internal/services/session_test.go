package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewSessionStore(client), mr
}

func TestSessionLifecycle(t *testing.T) {
	s, mr := newSessionStore(t)
	ctx := context.Background()
	userID := uuid.New()

	token, err := s.CreateSession(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, SessionDuration, mr.TTL(sessionKeyPrefix+token))

	got, ok, err := s.ValidateSession(ctx, token)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, userID, got)

	require.NoError(t, s.InvalidateSession(ctx, token))
	_, ok, err = s.ValidateSession(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, mr.Exists(userSessionKeyPrefix+userID.String()))
}

func TestSessionSignInAgainReplacesOldToken(t *testing.T) {
	s, _ := newSessionStore(t)
	ctx := context.Background()
	userID := uuid.New()

	first, err := s.CreateSession(ctx, userID)
	require.NoError(t, err)
	second, err := s.CreateSession(ctx, userID)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	_, ok, err := s.ValidateSession(ctx, first)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = s.ValidateSession(ctx, second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSessionExpires(t *testing.T) {
	s, mr := newSessionStore(t)
	ctx := context.Background()

	token, err := s.CreateSession(ctx, uuid.New())
	require.NoError(t, err)
	mr.FastForward(SessionDuration + time.Second)

	_, ok, err := s.ValidateSession(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionUnknownAndEmptyTokens(t *testing.T) {
	s, _ := newSessionStore(t)
	ctx := context.Background()

	_, ok, err := s.ValidateSession(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = s.ValidateSession(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, s.InvalidateSession(ctx, ""))
	assert.NoError(t, s.InvalidateSession(ctx, "nope"))
}
