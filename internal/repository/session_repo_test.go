package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/quizgen_go_server/internal/model"
	"github.com/qs3c/quizgen_go_server/internal/testutil"
)

func TestSessionRepository_CreateAndGet(t *testing.T) {
	s := testutil.SetupTestStore(t)
	repo := NewSessionRepository(s)

	session := &model.Session{
		SessionToken: "token-abc",
		UserID:       "user-1",
		Expires:      time.Now().UTC().Add(24 * time.Hour),
	}
	require.NoError(t, repo.Create(session))
	assert.NotEmpty(t, session.ID)

	found, err := repo.GetByToken("token-abc")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "user-1", found.UserID)
}

func TestSessionRepository_Create_DuplicateToken(t *testing.T) {
	s := testutil.SetupTestStore(t)
	repo := NewSessionRepository(s)

	require.NoError(t, repo.Create(&model.Session{
		SessionToken: "same-token",
		UserID:       "user-1",
		Expires:      time.Now().UTC().Add(time.Hour),
	}))

	err := repo.Create(&model.Session{
		SessionToken: "same-token",
		UserID:       "user-2",
		Expires:      time.Now().UTC().Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrSessionTokenExists)
}

func TestSessionRepository_DeleteByToken(t *testing.T) {
	s := testutil.SetupTestStore(t)
	repo := NewSessionRepository(s)

	require.NoError(t, repo.Create(&model.Session{
		SessionToken: "to-delete",
		UserID:       "user-1",
		Expires:      time.Now().UTC().Add(time.Hour),
	}))

	require.NoError(t, repo.DeleteByToken("to-delete"))

	found, err := repo.GetByToken("to-delete")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	s := testutil.SetupTestStore(t)
	repo := NewSessionRepository(s)

	now := time.Now().UTC()

	require.NoError(t, repo.Create(&model.Session{
		SessionToken: "expired",
		UserID:       "user-1",
		Expires:      now.Add(-time.Hour),
	}))
	require.NoError(t, repo.Create(&model.Session{
		SessionToken: "valid",
		UserID:       "user-1",
		Expires:      now.Add(time.Hour),
	}))

	count, err := repo.DeleteExpired(now)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	found, err := repo.GetByToken("valid")
	require.NoError(t, err)
	assert.NotNil(t, found)

	gone, err := repo.GetByToken("expired")
	require.NoError(t, err)
	assert.Nil(t, gone)
}
