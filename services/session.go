package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"taja-backend/models"
)

const sessionKeyPrefix = "session:"

// SessionTTL bounds how long an idle conversation survives in Redis. The
// chatbot refreshes it on every message.
const SessionTTL = 24 * time.Hour

// UserFinder is the slice of the user store the session manager needs to
// rebuild registration state.
type UserFinder interface {
	FindByPhone(ctx context.Context, phoneNumber string) (*models.User, error)
}

// SessionManager stores per-phone-number chat sessions in Redis. The chatbot
// owns session content; the backend only flips the needsAccount flag after
// signup and forces a refresh from the user store.
type SessionManager struct {
	rdb   *redis.Client
	users UserFinder
}

// NewSessionManager creates a SessionManager
func NewSessionManager(rdb *redis.Client, users UserFinder) *SessionManager {
	return &SessionManager{rdb: rdb, users: users}
}

func sessionKey(phoneNumber string) string {
	return sessionKeyPrefix + phoneNumber
}

// GetSession returns the session for a phone number, or nil when none exists.
func (m *SessionManager) GetSession(ctx context.Context, phoneNumber string) (*models.Session, error) {
	raw, err := m.rdb.Get(ctx, sessionKey(phoneNumber)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

// UpdateSession writes the session back with a fresh TTL.
func (m *SessionManager) UpdateSession(ctx context.Context, phoneNumber string, session *models.Session) error {
	session.PhoneNumber = phoneNumber
	session.LastActivity = time.Now().UTC()

	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := m.rdb.Set(ctx, sessionKey(phoneNumber), raw, SessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// DeleteSession removes the session outright.
func (m *SessionManager) DeleteSession(ctx context.Context, phoneNumber string) error {
	if err := m.rdb.Del(ctx, sessionKey(phoneNumber)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// RefreshSessionFromDB rebuilds the session's registration state from the
// user store, preserving chatbot-owned conversational fields. Called after
// account creation so the bot immediately sees the new account.
func (m *SessionManager) RefreshSessionFromDB(ctx context.Context, phoneNumber string) error {
	session, err := m.GetSession(ctx, phoneNumber)
	if err != nil {
		return err
	}
	if session == nil {
		session = &models.Session{PhoneNumber: phoneNumber}
	}

	user, err := m.users.FindByPhone(ctx, phoneNumber)
	if err != nil {
		return fmt.Errorf("failed to load user for session refresh: %w", err)
	}

	if user != nil {
		session.IsRegistered = true
		session.UserType = user.UserType
		session.NeedsAccount = false
	} else {
		session.IsRegistered = false
		session.UserType = ""
	}

	return m.UpdateSession(ctx, phoneNumber, session)
}
