package services

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taja-backend/models"
)

type fakeUserFinder struct {
	users map[string]*models.User
}

func (f *fakeUserFinder) FindByPhone(ctx context.Context, phoneNumber string) (*models.User, error) {
	return f.users[phoneNumber], nil
}

func newTestSessionManager(t *testing.T, users map[string]*models.User) (*SessionManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewSessionManager(rdb, &fakeUserFinder{users: users}), mr
}

func TestSessionRoundTrip(t *testing.T) {
	m, mr := newTestSessionManager(t, nil)
	ctx := context.Background()

	got, err := m.GetSession(ctx, "2348012345678")
	require.NoError(t, err)
	assert.Nil(t, got)

	err = m.UpdateSession(ctx, "2348012345678", &models.Session{NeedsAccount: true, Stage: "signup"})
	require.NoError(t, err)

	got, err = m.GetSession(ctx, "2348012345678")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.NeedsAccount)
	assert.Equal(t, "signup", got.Stage)
	assert.Equal(t, "2348012345678", got.PhoneNumber)
	assert.False(t, got.LastActivity.IsZero())

	// Sessions expire; the chatbot refreshes the TTL on activity
	ttl := mr.TTL("session:2348012345678")
	assert.Greater(t, ttl.Seconds(), 0.0)
	assert.LessOrEqual(t, ttl, SessionTTL)
}

func TestDeleteSession(t *testing.T) {
	m, _ := newTestSessionManager(t, nil)
	ctx := context.Background()

	require.NoError(t, m.UpdateSession(ctx, "234", &models.Session{}))
	require.NoError(t, m.DeleteSession(ctx, "234"))

	got, err := m.GetSession(ctx, "234")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRefreshSessionFromDBRegisteredUser(t *testing.T) {
	m, _ := newTestSessionManager(t, map[string]*models.User{
		"2348012345678": {PhoneNumber: "2348012345678", Name: "Ada", UserType: models.UserTypeCustomer},
	})
	ctx := context.Background()

	// Pre-existing session with the flag set and a conversational stage
	require.NoError(t, m.UpdateSession(ctx, "2348012345678", &models.Session{
		NeedsAccount: true,
		Stage:        "browsing",
	}))

	require.NoError(t, m.RefreshSessionFromDB(ctx, "2348012345678"))

	got, err := m.GetSession(ctx, "2348012345678")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsRegistered)
	assert.False(t, got.NeedsAccount)
	assert.Equal(t, models.UserTypeCustomer, got.UserType)
	// Chatbot-owned state is preserved
	assert.Equal(t, "browsing", got.Stage)
}

func TestRefreshSessionFromDBUnknownUser(t *testing.T) {
	m, _ := newTestSessionManager(t, nil)
	ctx := context.Background()

	// No session and no user record: refresh creates an unregistered session
	require.NoError(t, m.RefreshSessionFromDB(ctx, "2349990000000"))

	got, err := m.GetSession(ctx, "2349990000000")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.IsRegistered)
	assert.Empty(t, got.UserType)
}
