package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// SessionDuration is how long a sign-in stays valid. Signing in again restarts it.
	SessionDuration = 7 * 24 * time.Hour

	sessionKeyPrefix     = "session:"
	userSessionKeyPrefix = "user_session:"
)

// SessionStore keeps opaque bearer tokens in Redis, one live session per user.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client, ttl: SessionDuration}
}

// CreateSession replaces any session the user already has and returns the new token.
func (s *SessionStore) CreateSession(ctx context.Context, userID uuid.UUID) (string, error) {
	if err := s.InvalidateUserSessions(ctx, userID); err != nil {
		return "", err
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, sessionKeyPrefix+token, userID.String(), s.ttl)
	pipe.Set(ctx, userSessionKeyPrefix+userID.String(), token, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", err
	}
	return token, nil
}

// ValidateSession resolves a token to its user. An unknown or expired token is not an error.
func (s *SessionStore) ValidateSession(ctx context.Context, token string) (uuid.UUID, bool, error) {
	if token == "" {
		return uuid.Nil, false, nil
	}

	raw, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false, err
	}
	return userID, true, nil
}

// InvalidateSession signs the token out.
func (s *SessionStore) InvalidateSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	sessionKey := sessionKeyPrefix + token

	userID, err := s.client.Get(ctx, sessionKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if userID != "" {
		if err := s.client.Del(ctx, userSessionKeyPrefix+userID).Err(); err != nil {
			return err
		}
	}
	return s.client.Del(ctx, sessionKey).Err()
}

// InvalidateUserSessions signs the user out everywhere.
func (s *SessionStore) InvalidateUserSessions(ctx context.Context, userID uuid.UUID) error {
	userKey := userSessionKeyPrefix + userID.String()

	token, err := s.client.Get(ctx, userKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if token != "" {
		if err := s.client.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
			return err
		}
	}
	return s.client.Del(ctx, userKey).Err()
}
