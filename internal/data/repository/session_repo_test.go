package repository

import (
	"context"
	"testing"
	"time"

	"yamdb/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_FindValidSession(t *testing.T) {
	mock := newMock(t)
	repo := NewSessionRepository(mock, nopLogger())

	id, userID, token := uuid.New(), uuid.New(), uuid.New()
	expires := fixedTime.Add(24 * time.Hour)

	mock.ExpectQuery("FROM sessions s").
		WithArgs(token).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "token", "user_agent", "ip_address",
			"expires_at", "revoked_at", "created_at", "role",
		}).AddRow(id, userID, token, strPtr("curl/8"), nil, expires, nil, fixedTime, entity.RoleModerator))

	got, err := repo.FindValidSession(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, entity.RoleModerator, got.Role)
	assert.Equal(t, "curl/8", *got.UserAgent)
	assert.Nil(t, got.IPAddress)
	assert.Nil(t, got.RevokedAt)
}

func TestSessionRepository_FindValidSession_Unknown(t *testing.T) {
	mock := newMock(t)
	repo := NewSessionRepository(mock, nopLogger())
	token := uuid.New()

	mock.ExpectQuery("FROM sessions s").
		WithArgs(token).
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.FindValidSession(context.Background(), token)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionRepository_Revoke(t *testing.T) {
	mock := newMock(t)
	repo := NewSessionRepository(mock, nopLogger())
	token := uuid.New()

	mock.ExpectExec("UPDATE sessions").
		WithArgs(token).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE sessions").
		WithArgs(token).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	revoked, err := repo.Revoke(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = repo.Revoke(context.Background(), token)
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestSessionRepository_CleanExpiredSessions(t *testing.T) {
	mock := newMock(t)
	repo := NewSessionRepository(mock, nopLogger())

	mock.ExpectExec("DELETE FROM sessions").
		WillReturnResult(pgxmock.NewResult("DELETE", 4))

	n, err := repo.CleanExpiredSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}
